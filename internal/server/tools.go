package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to a binary (P6) PPM file",
	}
}

func outputProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Optional output path. Defaults to overwriting the input file.",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "ppm_info",
			Description: "Read a PPM file header and report its dimensions, sizes and color summary.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "ppm_blur",
			Description: "Apply a box blur to a PPM file in parallel and write the result. Border pixels darken because the divisor is always the full window area.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"output": outputProperty(),
					"radius": map[string]interface{}{
						"type":        "integer",
						"description": "Blur radius; the window is (2r+1)x(2r+1). Defaults to the server configuration.",
						"minimum":     0,
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Number of parallel row bands. Defaults to the server configuration.",
						"minimum":     1,
					},
					"remainder": map[string]interface{}{
						"type":        "string",
						"description": "How rows left over after equal banding are handled",
						"enum":        []string{"last-band", "drop"},
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "ppm_invert",
			Description: "Replace every channel value v with 255-v and write the result.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty(),
					"output": outputProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "ppm_preview",
			Description: "Render a PPM file as a base64-encoded PNG, scaled down to at most max_width pixels wide.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"max_width": map[string]interface{}{
						"type":        "integer",
						"description": "Maximum width of the preview. 0 keeps full size. Defaults to the server configuration.",
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
