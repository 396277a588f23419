package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		"notes_page_info",
		"notes_classify_shapes",
		"notes_extract_diagrams",
		"notes_preview_clusters",
	}, names)
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			assert.NotEmpty(t, tool.Description)
			assert.Equal(t, "object", tool.InputSchema["type"])

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			require.True(t, ok, "properties should be a map")

			required, ok := tool.InputSchema["required"].([]string)
			require.True(t, ok, "required should be a string slice")
			assert.Contains(t, required, "path")
			for _, name := range required {
				assert.Contains(t, props, name)
			}

			for name, p := range props {
				prop, ok := p.(map[string]interface{})
				require.True(t, ok, name)
				assert.NotEmpty(t, prop["type"], name)
				assert.NotEmpty(t, prop["description"], name)
			}
		})
	}
}
