package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/bbox-tools-mcp/internal/bbox"
	"github.com/ironsheep/bbox-tools-mcp/internal/detection"
	"github.com/ironsheep/bbox-tools-mcp/internal/imaging"
	"github.com/ironsheep/bbox-tools-mcp/internal/ocr"
)

const (
	// defaultTargetSize is the width and height used when a resize call omits them.
	defaultTargetSize = 512

	// maxPadding is the largest padding bbox_padding accepts.
	maxPadding = 255
)

// ErrUnknownTool is returned by Call for a name that is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "bbox_create", "bbox_crop").
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
// Unknown tools and invalid arguments return -32602. Any other failure
// returns -32000 with the error text in data.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.debugf("tools/call name=%s", params.Name)

	result, err := s.Call(params.Name, params.Arguments)
	switch {
	case errors.Is(err, ErrUnknownTool):
		return s.errorResponse(req.ID, -32602, "Unknown tool", err.Error())
	case errors.Is(err, bbox.ErrInvalidArgument):
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	case err != nil:
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

// Call executes the named tool with JSON arguments and returns its result.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads images from cache as needed
//  4. Calls the appropriate bbox/imaging/detection/ocr function
//  5. Returns the result or error
func (s *Server) Call(name string, args json.RawMessage) (interface{}, error) {
	n, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return n.handler(s, args)
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	resp := &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
		},
	}
	if data != "" {
		resp.Error.Data = data
	}
	return resp
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as {}.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", bbox.ErrInvalidArgument, err)
	}
	return nil
}

func requirePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: path is required", bbox.ErrInvalidArgument)
	}
	return nil
}

// intOr returns *p, or def when the argument was omitted.
func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

// floatOr returns *p, or def when the argument was omitted.
func floatOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// forgetOutput drops a written output file from the image cache so a later
// call reading that path sees the new contents.
func (s *Server) forgetOutput(path string) {
	if path == "" {
		return
	}
	s.cache.Evict(path)
	s.debugf("cache evict path=%s cached=%d", path, s.cache.Len())
}

// boxResult reports a box in both corner and origin/extent form.
type boxResult struct {
	BBox []int     `json:"bbox"`
	Rect bbox.Rect `json:"rect"`
}

func newBoxResult(r bbox.Rect) boxResult {
	return boxResult{BBox: r.Slice(), Rect: r}
}

// === Geometry Handlers ===

type bboxCreateArgs struct {
	XMin   int `json:"x_min"`
	YMin   int `json:"y_min"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleBBoxCreate(args json.RawMessage) (interface{}, error) {
	var a bboxCreateArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	r, err := bbox.New(a.XMin, a.YMin, a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return newBoxResult(r), nil
}

type bboxPaddingArgs struct {
	BBox      []int  `json:"bbox"`
	Padding   int    `json:"padding"`
	MaxWidth  *int   `json:"max_width"`
	MaxHeight *int   `json:"max_height"`
	ImagePath string `json:"image_path"`
}

func (s *Server) handleBBoxPadding(args json.RawMessage) (interface{}, error) {
	var a bboxPaddingArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Padding > maxPadding {
		return nil, fmt.Errorf("%w: padding %d exceeds %d", bbox.ErrInvalidArgument, a.Padding, maxPadding)
	}
	r, err := bbox.FromSlice(a.BBox)
	if err != nil {
		return nil, err
	}

	var frameWidth, frameHeight int
	if a.ImagePath != "" {
		dims, err := s.cache.Dimensions(a.ImagePath)
		if err != nil {
			return nil, err
		}
		frameWidth, frameHeight = dims.Width, dims.Height
	}

	padded, err := bbox.Pad(r, a.Padding, intOr(a.MaxWidth, frameWidth), intOr(a.MaxHeight, frameHeight))
	if err != nil {
		return nil, err
	}
	return newBoxResult(padded), nil
}

type bboxResizeArgs struct {
	BBox      []int `json:"bbox"`
	Width     *int  `json:"width"`
	Height    *int  `json:"height"`
	KeepRatio *bool `json:"keep_ratio"`
}

type bboxResizeResult struct {
	boxResult
	NewWidth  int `json:"new_width"`
	NewHeight int `json:"new_height"`
}

func (s *Server) handleBBoxResize(args json.RawMessage) (interface{}, error) {
	var a bboxResizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	keepRatio := true
	if a.KeepRatio != nil {
		keepRatio = *a.KeepRatio
	}
	r, err := bbox.FromSlice(a.BBox)
	if err != nil {
		return nil, err
	}

	resized, w, h, err := bbox.Resize(r, intOr(a.Width, defaultTargetSize), intOr(a.Height, defaultTargetSize), keepRatio)
	if err != nil {
		return nil, err
	}
	return bboxResizeResult{boxResult: newBoxResult(resized), NewWidth: w, NewHeight: h}, nil
}

// === Image Handlers ===

type imageResizeArgs struct {
	Path       string `json:"path"`
	Width      *int   `json:"width"`
	Height     *int   `json:"height"`
	Letterbox  bool   `json:"letterbox"`
	FillColor  string `json:"fill_color"`
	Resampler  string `json:"resampler"`
	Filter     string `json:"filter"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageResizeKeepRatio(args json.RawMessage) (interface{}, error) {
	var a imageResizeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}

	r, err := s.resampler(a.Resampler, a.Filter)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	result, err := imaging.ResizeKeepRatio(img, intOr(a.Width, defaultTargetSize), intOr(a.Height, defaultTargetSize), imaging.ResizeOptions{
		Resampler:  r,
		Letterbox:  a.Letterbox,
		FillColor:  a.FillColor,
		OutputPath: a.OutputPath,
	})
	if err != nil {
		return nil, err
	}
	s.forgetOutput(a.OutputPath)
	return result, nil
}

// resampler resolves per-call backend and filter names against the server
// defaults.
func (s *Server) resampler(backend, filter string) (imaging.Resampler, error) {
	if backend == "" {
		backend = s.cfg.Resampler
	}
	if filter == "" {
		filter = s.cfg.Filter
	}
	r, err := imaging.NewResampler(backend, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", bbox.ErrInvalidArgument, err)
	}
	return r, nil
}

type bboxCropArgs struct {
	Path       string   `json:"path"`
	BBox       []int    `json:"bbox"`
	Scale      *float64 `json:"scale"`
	OutputPath string   `json:"output_path"`
}

func (s *Server) handleBBoxCrop(args json.RawMessage) (interface{}, error) {
	var a bboxCropArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	r, err := bbox.FromSlice(a.BBox)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	result, err := imaging.CropToBox(img, r, floatOr(a.Scale, 1.0), a.OutputPath)
	if err != nil {
		return nil, err
	}
	s.forgetOutput(a.OutputPath)
	return result, nil
}

type bboxDrawArgs struct {
	Path        string   `json:"path"`
	BBoxes      [][]int  `json:"bboxes"`
	Labels      []string `json:"labels"`
	ShowIndex   bool     `json:"show_index"`
	Color       string   `json:"color"`
	LineWidth   float64  `json:"line_width"`
	GridSpacing int      `json:"grid_spacing"`
	GridColor   string   `json:"grid_color"`
	GridLabels  bool     `json:"grid_labels"`
	OutputPath  string   `json:"output_path"`
}

func (s *Server) handleBBoxDraw(args json.RawMessage) (interface{}, error) {
	var a bboxDrawArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}

	boxes := make([]bbox.Rect, len(a.BBoxes))
	for i, v := range a.BBoxes {
		r, err := bbox.FromSlice(v)
		if err != nil {
			return nil, fmt.Errorf("bboxes[%d]: %w", i, err)
		}
		boxes[i] = r
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	result, err := imaging.DrawBoxes(img, boxes, imaging.DrawOptions{
		Color:       a.Color,
		LineWidth:   a.LineWidth,
		Labels:      a.Labels,
		ShowIndex:   a.ShowIndex,
		GridSpacing: a.GridSpacing,
		GridColor:   a.GridColor,
		GridLabels:  a.GridLabels,
		OutputPath:  a.OutputPath,
	})
	if err != nil {
		return nil, err
	}
	s.forgetOutput(a.OutputPath)
	return result, nil
}

// === Box Source Handlers ===

type bboxDetectArgs struct {
	Path          string   `json:"path"`
	MinArea       *int     `json:"min_area"`
	Tolerance     *float64 `json:"tolerance"`
	EdgeThreshold *int     `json:"edge_threshold"`
}

type detectedBox struct {
	boxResult
	Confidence float64 `json:"confidence"`
	Area       int     `json:"area"`
}

type bboxDetectResult struct {
	Boxes []detectedBox `json:"boxes"`
	Count int           `json:"count"`
}

func (s *Server) handleBBoxDetect(args json.RawMessage) (interface{}, error) {
	var a bboxDetectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	opts := detection.DefaultOptions()
	opts.MinArea = intOr(a.MinArea, opts.MinArea)
	opts.Tolerance = floatOr(a.Tolerance, opts.Tolerance)
	threshold := intOr(a.EdgeThreshold, int(opts.EdgeThreshold))
	if threshold < 1 || threshold > 255 {
		return nil, fmt.Errorf("%w: edge threshold %d must be within [1,255]", bbox.ErrInvalidArgument, threshold)
	}
	opts.EdgeThreshold = uint8(threshold)

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	found, err := detection.DetectBoxes(img, opts)
	if err != nil {
		return nil, err
	}

	result := bboxDetectResult{Boxes: make([]detectedBox, len(found)), Count: len(found)}
	for i, d := range found {
		result.Boxes[i] = detectedBox{boxResult: newBoxResult(d.Box), Confidence: d.Confidence, Area: d.Area}
	}
	return result, nil
}

type bboxFromTextArgs struct {
	Path          string  `json:"path"`
	BBox          []int   `json:"bbox"`
	Language      string  `json:"language"`
	MinConfidence float64 `json:"min_confidence"`
	Level         string  `json:"level"`
}

type textBox struct {
	boxResult
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type bboxFromTextResult struct {
	Boxes []textBox `json:"boxes"`
	Count int       `json:"count"`
}

func (s *Server) handleBBoxFromText(args json.RawMessage) (interface{}, error) {
	var a bboxFromTextArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}

	var region *bbox.Rect
	if a.BBox != nil {
		r, err := bbox.FromSlice(a.BBox)
		if err != nil {
			return nil, err
		}
		region = &r
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	found, err := ocr.TextBoxes(img, region, ocr.Options{
		Language:      a.Language,
		MinConfidence: a.MinConfidence,
		Level:         a.Level,
	})
	if err != nil {
		return nil, err
	}

	result := bboxFromTextResult{Boxes: make([]textBox, len(found)), Count: len(found)}
	for i, tb := range found {
		result.Boxes[i] = textBox{boxResult: newBoxResult(tb.Box), Text: tb.Text, Confidence: tb.Confidence}
	}
	return result, nil
}
