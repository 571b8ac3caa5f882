package server

import (
	"encoding/json"
	"sort"
)

// Category groups every node this server exposes.
const Category = "MET SUITE"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Title       string                 `json:"title,omitempty"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// NodeInfo describes a registered node for listings outside MCP.
type NodeInfo struct {
	Name        string
	DisplayName string
	Category    string
	Description string
}

type toolHandler func(s *Server, args json.RawMessage) (interface{}, error)

type node struct {
	tool        Tool
	displayName string
	category    string
	handler     toolHandler
}

// registry maps tool names to nodes. It is fixed at build time.
var registry = map[string]node{
	"bbox_create": {
		displayName: "BBOX Create",
		category:    Category,
		handler:     (*Server).handleBBoxCreate,
		tool: Tool{
			Name:        "bbox_create",
			Description: "Construct a bounding box from its top-left corner and size. Returns it as [x_min, y_min, x_max, y_max] and as x/y/width/height.",
			InputSchema: objectSchema(map[string]interface{}{
				"x_min":  intProperty("Left edge (>= 0)", nil),
				"y_min":  intProperty("Top edge (>= 0)", nil),
				"width":  intProperty("Width in pixels (>= 1)", nil),
				"height": intProperty("Height in pixels (>= 1)", nil),
			}, "x_min", "y_min", "width", "height"),
		},
	},
	"bbox_padding": {
		displayName: "BBOX Padding",
		category:    Category,
		handler:     (*Server).handleBBoxPadding,
		tool: Tool{
			Name:        "bbox_padding",
			Description: "Grow a bounding box by the same number of pixels on every side, clamped to the frame origin and optionally to a maximum width and height.",
			InputSchema: objectSchema(map[string]interface{}{
				"bbox": bboxProperty("Box to pad"),
				"padding": map[string]interface{}{
					"type":        "integer",
					"description": "Pixels added on each side",
					"default":     0,
					"minimum":     0,
					"maximum":     maxPadding,
				},
				"max_width":  intProperty("Frame width bound, 0 for unbounded", 0),
				"max_height": intProperty("Frame height bound, 0 for unbounded", 0),
				"image_path": stringProperty("Optional image whose size supplies max_width and max_height when they are not given"),
			}, "bbox"),
		},
	},
	"bbox_resize": {
		displayName: "BBOX Resize",
		category:    Category,
		handler:     (*Server).handleBBoxResize,
		tool: Tool{
			Name:        "bbox_resize",
			Description: "Resize a bounding box. With keep_ratio the box is fitted inside width x height keeping its aspect ratio and its origin is scaled by the same factor; without it the box takes exactly width x height at its original origin.",
			InputSchema: objectSchema(map[string]interface{}{
				"bbox":   bboxProperty("Box to resize"),
				"width":  intProperty("Target width, 0 keeps the source width", defaultTargetSize),
				"height": intProperty("Target height, 0 keeps the source height", defaultTargetSize),
				"keep_ratio": map[string]interface{}{
					"type":        "boolean",
					"description": "Preserve the box aspect ratio",
					"default":     true,
				},
			}, "bbox"),
		},
	},
	"image_resize_keep_ratio": {
		displayName: "Resize Image Keep Ratio",
		category:    Category,
		handler:     (*Server).handleImageResizeKeepRatio,
		tool: Tool{
			Name:        "image_resize_keep_ratio",
			Description: "Resize an image to fit inside width x height keeping its aspect ratio. Optionally letterbox it onto a canvas of the full size. Returns base64 image data or writes output_path.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":   stringProperty("Absolute path to the image file"),
				"width":  intProperty("Target width, 0 keeps the source width", defaultTargetSize),
				"height": intProperty("Target height, 0 keeps the source height", defaultTargetSize),
				"letterbox": map[string]interface{}{
					"type":        "boolean",
					"description": "Center the result on a width x height canvas",
					"default":     false,
				},
				"fill_color": stringProperty("CSS color of the letterbox canvas. Default black"),
				"resampler": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"imaging", "bild"},
					"description": "Resampling backend. Defaults to the server configuration",
				},
				"filter":      stringProperty("Resampling filter, e.g. catmullrom, lanczos, linear, nearest"),
				"output_path": stringProperty("Write the image here instead of returning base64"),
			}, "path"),
		},
	},
	"bbox_crop": {
		displayName: "BBOX Crop",
		category:    Category,
		handler:     (*Server).handleBBoxCrop,
		tool: Tool{
			Name:        "bbox_crop",
			Description: "Crop the region covered by a bounding box from an image.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProperty("Absolute path to the image file"),
				"bbox": bboxProperty("Region to crop"),
				"scale": map[string]interface{}{
					"type":        "number",
					"description": "Scale factor applied to the crop, must be positive. Default 1.0",
					"default":     1.0,
				},
				"output_path": stringProperty("Write the crop here instead of returning base64"),
			}, "path", "bbox"),
		},
	},
	"bbox_draw": {
		displayName: "BBOX Draw",
		category:    Category,
		handler:     (*Server).handleBBoxDraw,
		tool: Tool{
			Name:        "bbox_draw",
			Description: "Draw bounding boxes onto a copy of an image, optionally labeled and over a coordinate grid.",
			InputSchema: objectSchema(map[string]interface{}{
				"path": stringProperty("Absolute path to the image file"),
				"bboxes": map[string]interface{}{
					"type":        "array",
					"items":       bboxProperty("Box to draw"),
					"description": "Boxes as [x_min, y_min, x_max, y_max]",
				},
				"labels": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "One label per box",
				},
				"show_index": map[string]interface{}{
					"type":        "boolean",
					"description": "Label unlabeled boxes with their index",
					"default":     false,
				},
				"color": stringProperty("CSS color for every box. Default is one distinct color per box"),
				"line_width": map[string]interface{}{
					"type":        "number",
					"description": "Stroke width in pixels. Default 2",
					"default":     2,
				},
				"grid_spacing": intProperty("Rule a coordinate grid every N pixels under the boxes. 0 for none", 0),
				"grid_color":   stringProperty("CSS color of the grid. Default semi-transparent red"),
				"grid_labels": map[string]interface{}{
					"type":        "boolean",
					"description": "Label grid intersections with their x,y coordinates",
					"default":     false,
				},
				"output_path": stringProperty("Write the image here instead of returning base64"),
			}, "path", "bboxes"),
		},
	},
	"bbox_detect": {
		displayName: "BBOX Detect",
		category:    Category,
		handler:     (*Server).handleBBoxDetect,
		tool: Tool{
			Name:        "bbox_detect",
			Description: "Find rectangular outlines in an image and return their bounding boxes, largest first.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":     stringProperty("Absolute path to the image file"),
				"min_area": intProperty("Minimum box area in square pixels. Default 100", 100),
				"tolerance": map[string]interface{}{
					"type":        "number",
					"description": "Minimum rectangularity (0.0-1.0). Default 0.9",
					"default":     0.9,
				},
				"edge_threshold": map[string]interface{}{
					"type":        "integer",
					"description": "Edge response (1-255) that counts as an edge. Default 128",
					"default":     128,
					"minimum":     1,
					"maximum":     255,
				},
			}, "path"),
		},
	},
	"bbox_from_text": {
		displayName: "BBOX From Text",
		category:    Category,
		handler:     (*Server).handleBBoxFromText,
		tool: Tool{
			Name:        "bbox_from_text",
			Description: "Run OCR on an image, or on one bounding box of it, and return a bounding box for each recognized piece of text.",
			InputSchema: objectSchema(map[string]interface{}{
				"path":     stringProperty("Absolute path to the image file"),
				"bbox":     bboxProperty("Optional region to read"),
				"language": stringProperty("Tesseract language code. Default eng"),
				"min_confidence": map[string]interface{}{
					"type":        "number",
					"description": "Drop text below this confidence (0.0-1.0)",
					"default":     0,
				},
				"level": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"word", "line", "paragraph", "block"},
					"description": "Granularity of the returned boxes. Default word",
				},
			}, "path"),
		},
	},
}

// GetToolDefinitions returns all available tools, sorted by name.
func GetToolDefinitions() []Tool {
	tools := make([]Tool, 0, len(registry))
	for _, n := range registry {
		t := n.tool
		t.Title = n.displayName
		tools = append(tools, t)
	}
	sort.Slice(tools, func(i, j int) bool {
		return tools[i].Name < tools[j].Name
	})
	return tools
}

// Nodes returns the registered nodes, sorted by name.
func Nodes() []NodeInfo {
	nodes := make([]NodeInfo, 0, len(registry))
	for name, n := range registry {
		nodes = append(nodes, NodeInfo{
			Name:        name,
			DisplayName: n.displayName,
			Category:    n.category,
			Description: n.tool.Description,
		})
	}
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Name < nodes[j].Name
	})
	return nodes
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

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func bboxProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "integer"},
		"minItems":    4,
		"maxItems":    4,
		"description": description + " as [x_min, y_min, x_max, y_max]",
	}
}

func intProperty(description string, def interface{}) map[string]interface{} {
	p := map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
	if def != nil {
		p["default"] = def
	}
	return p
}

func stringProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}
