package server

import (
	"context"
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/notesplit/internal/classifier"
	"github.com/ironsheep/notesplit/internal/cluster"
	"github.com/ironsheep/notesplit/internal/descriptor"
	"github.com/ironsheep/notesplit/internal/geometry"
	"github.com/ironsheep/notesplit/internal/imaging"
	"github.com/ironsheep/notesplit/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "notes_extract_diagrams").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "notes_page_info":
		return s.handlePageInfo(args)
	case "notes_classify_shapes":
		return s.handleClassifyShapes(args)
	case "notes_extract_diagrams":
		return s.handleExtractDiagrams(args)
	case "notes_preview_clusters":
		return s.handlePreviewClusters(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type pathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handlePageInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadPageInfo(s.cache, a.Path)
}

// === Classification ===

type classifyArgs struct {
	Path              string `json:"path"`
	Label             string `json:"label"`
	IncludeProperties bool   `json:"include_properties"`
}

// ShapeSummary is one classified shape in a notes_classify_shapes result.
type ShapeSummary struct {
	ID         int                    `json:"id"`
	Label      classifier.Label       `json:"label"`
	Confidence float64                `json:"confidence"`
	BBox       geometry.Box           `json:"bbox"`
	Area       float64                `json:"area"`
	Properties *descriptor.Properties `json:"properties,omitempty"`
}

// ClassifyResult is the notes_classify_shapes result.
type ClassifyResult struct {
	Width    int               `json:"width"`
	Height   int               `json:"height"`
	Traced   int               `json:"traced_count"`
	Labels   map[string]int    `json:"labels"`
	Shapes   []ShapeSummary    `json:"shapes"`
	Clusters []cluster.Cluster `json:"clusters"`
}

func (s *Server) handleClassifyShapes(args json.RawMessage) (interface{}, error) {
	var a classifyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var filter *classifier.Label
	if a.Label != "" {
		l, err := classifier.ParseLabel(a.Label)
		if err != nil {
			return nil, err
		}
		filter = &l
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	analysis, err := s.pipeline.Analyze(context.Background(), img)
	if err != nil {
		return nil, err
	}

	result := &ClassifyResult{
		Width:    analysis.Size.Width,
		Height:   analysis.Size.Height,
		Traced:   analysis.Traced,
		Labels:   make(map[string]int),
		Shapes:   []ShapeSummary{},
		Clusters: analysis.Clusters,
	}
	for l, n := range analysis.Partition.Counts() {
		result.Labels[l.String()] = n
	}
	for _, sh := range analysis.Shapes {
		if filter != nil && sh.Label != *filter {
			continue
		}
		summary := ShapeSummary{
			ID:         sh.ID,
			Label:      sh.Label,
			Confidence: sh.Confidence,
			BBox:       sh.Properties.BBox,
			Area:       sh.Properties.Area,
		}
		if a.IncludeProperties {
			props := sh.Properties
			summary.Properties = &props
		}
		result.Shapes = append(result.Shapes, summary)
	}
	return result, nil
}

// === Extraction ===

type extractArgs struct {
	Path      string          `json:"path"`
	OutputDir string          `json:"output_dir"`
	Debug     bool            `json:"debug"`
	Config    json.RawMessage `json:"config"`
}

// ExtractResult is the notes_extract_diagrams result.
type ExtractResult struct {
	OutputDir string             `json:"output_dir"`
	Manifest  *pipeline.Manifest `json:"manifest"`
}

func (s *Server) handleExtractDiagrams(args json.RawMessage) (interface{}, error) {
	var a extractArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		return nil, fmt.Errorf("output_dir is required")
	}

	p := s.pipeline
	if len(a.Config) > 0 && string(a.Config) != "null" {
		cfg, err := s.cfg.WithOverrides(a.Config)
		if err != nil {
			return nil, err
		}
		p = pipeline.New(cfg, s.cache, s.logger.With("component", "pipeline"))
	}

	m, err := p.Run(context.Background(), a.Path, a.OutputDir, pipeline.RunOptions{Debug: a.Debug})
	if err != nil {
		return nil, err
	}
	return &ExtractResult{OutputDir: a.OutputDir, Manifest: m}, nil
}

// === Preview ===

type previewArgs struct {
	Path        string `json:"path"`
	Layer       string `json:"layer"`
	GridSpacing int    `json:"grid_spacing"`
}

// PreviewResult is the notes_preview_clusters result.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Layer       string `json:"layer"`
	Boxes       int    `json:"box_count"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handlePreviewClusters(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Layer == "" {
		a.Layer = "clusters"
	}
	if a.GridSpacing < 0 {
		return nil, fmt.Errorf("grid_spacing must not be negative, got %d", a.GridSpacing)
	}

	p := s.pipeline
	if a.GridSpacing > 0 {
		cfg := *s.cfg
		cfg.Debug.GridSpacing = a.GridSpacing
		p = pipeline.New(&cfg, s.cache, s.logger.With("component", "pipeline"))
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	analysis, err := p.Analyze(context.Background(), img)
	if err != nil {
		return nil, err
	}

	result := &PreviewResult{
		Width:    analysis.Size.Width,
		Height:   analysis.Size.Height,
		Layer:    a.Layer,
		MimeType: "image/png",
	}

	var overlay *image.RGBA
	switch a.Layer {
	case "clusters":
		overlay, err = p.ClustersOverlay(img, analysis)
		result.Boxes = len(analysis.Clusters)
	case "shapes":
		overlay, err = p.ShapesOverlay(img, analysis)
		result.Boxes = len(analysis.Shapes)
	default:
		return nil, fmt.Errorf("unknown layer %q (want clusters or shapes)", a.Layer)
	}
	if err != nil {
		return nil, err
	}

	result.ImageBase64, err = imaging.EncodePNG(overlay)
	if err != nil {
		return nil, err
	}
	return result, nil
}
