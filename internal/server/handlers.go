package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/ppm-editor/internal/imaging"
	"github.com/ironsheep/ppm-editor/internal/pipeline"
	"github.com/ironsheep/ppm-editor/internal/ppm"
	"github.com/ironsheep/ppm-editor/internal/scheduler"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "ppm_blur").
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
		s.log.WithError(err).WithField("tool", params.Name).Warn("Tool execution failed")
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
	case "ppm_info":
		return s.handlePPMInfo(args)
	case "ppm_blur":
		return s.handlePPMBlur(args)
	case "ppm_invert":
		return s.handlePPMInvert(args)
	case "ppm_preview":
		return s.handlePPMPreview(args)
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
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

type pathArgs struct {
	Path string `json:"path"`
}

func (a pathArgs) validate() error {
	if a.Path == "" {
		return fmt.Errorf("path is required")
	}
	return nil
}

// PPMInfoResult combines the header layout with a color summary. Summary is
// omitted when the payload is incomplete.
type PPMInfoResult struct {
	*ppm.Info
	Summary *imaging.Summary `json:"summary,omitempty"`
}

func (s *Server) handlePPMInfo(args json.RawMessage) (interface{}, error) {
	var a pathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := a.validate(); err != nil {
		return nil, err
	}

	info, err := ppm.ReadInfo(a.Path)
	if err != nil {
		return nil, err
	}
	res := &PPMInfoResult{Info: info}
	if !info.Complete {
		return res, nil
	}

	g, err := ppm.Decode(a.Path)
	if err != nil {
		return nil, err
	}
	summary := imaging.Summarize(g)
	res.Summary = &summary
	return res, nil
}

type ppmBlurArgs struct {
	Path      string `json:"path"`
	Output    string `json:"output"`
	Radius    *int   `json:"radius"`
	Workers   *int   `json:"workers"`
	Remainder string `json:"remainder"`
}

func (s *Server) handlePPMBlur(args json.RawMessage) (interface{}, error) {
	var a ppmBlurArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := (pathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}

	radius, workers := s.cfg.Radius, s.cfg.Workers
	if a.Radius != nil {
		radius = *a.Radius
	}
	if a.Workers != nil {
		workers = *a.Workers
	}
	remainder := a.Remainder
	if remainder == "" {
		remainder = s.cfg.Remainder
	}
	policy, err := scheduler.ParseRemainderPolicy(remainder)
	if err != nil {
		return nil, err
	}

	return s.editor.Edit(pipeline.Request{
		Input:     a.Path,
		Output:    a.Output,
		Operation: pipeline.OpBlur,
		Radius:    radius,
		Workers:   workers,
		Remainder: policy,
	})
}

type ppmInvertArgs struct {
	Path   string `json:"path"`
	Output string `json:"output"`
}

func (s *Server) handlePPMInvert(args json.RawMessage) (interface{}, error) {
	var a ppmInvertArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := (pathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}

	return s.editor.Edit(pipeline.Request{
		Input:     a.Path,
		Output:    a.Output,
		Operation: pipeline.OpInvert,
	})
}

type ppmPreviewArgs struct {
	Path     string `json:"path"`
	MaxWidth *int   `json:"max_width"`
}

func (s *Server) handlePPMPreview(args json.RawMessage) (interface{}, error) {
	var a ppmPreviewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := (pathArgs{Path: a.Path}).validate(); err != nil {
		return nil, err
	}

	maxWidth := s.cfg.PreviewWidth
	if a.MaxWidth != nil {
		maxWidth = *a.MaxWidth
	}

	g, err := ppm.Decode(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePreviewBase64(g, maxWidth)
}
