package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "notes_page_info",
			Description: "Load a scanned note page and return its dimensions, format and color depth.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the page image",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "notes_classify_shapes",
			Description: "Trace every ink shape on a note page and classify it as diagram, connector, handwriting or uncertain. Returns per-shape labels, confidences and bounding boxes plus the diagram clusters that extraction would produce.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the page image",
					},
					"label": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"diagram", "connector", "handwriting", "uncertain"},
						"description": "Only return shapes with this label",
					},
					"include_properties": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the full feature record of each shape. Default false",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "notes_extract_diagrams",
			Description: "Extract every diagram on a PNG note page into its own transparent PNG and write manifest.json to the output directory. Handwriting is left behind.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the PNG page",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for the diagram files and manifest.json",
					},
					"debug": map[string]interface{}{
						"type":        "boolean",
						"description": "Also write debug_binary.png, debug_shapes.png and debug_clusters.png. Default false",
						"default":     false,
					},
					"config": map[string]interface{}{
						"type":        "object",
						"description": "Configuration overrides, e.g. {\"cluster\": {\"padding\": 20}}",
					},
				},
				"required": []string{"path", "output_dir"},
			},
		},
		{
			Name:        "notes_preview_clusters",
			Description: "Draw the detected diagram clusters (or every classified shape) over the page and return it as base64-encoded PNG without writing files.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the page image",
					},
					"layer": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"clusters", "shapes"},
						"description": "What to draw. Default clusters",
						"default":     "clusters",
					},
					"grid_spacing": map[string]interface{}{
						"type":        "integer",
						"description": "Optional coordinate grid spacing in pixels. Default 0 (no grid)",
						"default":     0,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
