// Package server implements the MCP (Model Context Protocol) server for the
// bounding box tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools, sorted by name
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Nodes
//
// Every tool is a node in a static registry. A node pairs the MCP tool
// definition with a display name, the category "MET SUITE" and a handler.
//
// Geometry:
//   - bbox_create: Construct a box from origin and size
//   - bbox_padding: Grow a box on every side, clamped to the frame
//   - bbox_resize: Resize a box, optionally keeping its aspect ratio
//
// Images:
//   - image_resize_keep_ratio: Aspect-fit an image, optionally letterboxed
//   - bbox_crop: Extract the region under a box
//   - bbox_draw: Outline boxes on an image
//
// Box sources:
//   - bbox_detect: Find rectangular outlines
//   - bbox_from_text: Boxes around OCR text
//
// Boxes are passed as [x_min, y_min, x_max, y_max] arrays. Results carry the
// same array under "bbox" and the origin/extent form under "rect".
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses:
//   - -32602: unknown tool or invalid arguments
//   - -32601: unknown method
//   - -32000: the tool failed (unreadable image, OCR failure)
//
// The data field carries the Go error string.
//
// # Configuration
//
// BBOX_MCP_RESAMPLER and BBOX_MCP_FILTER select the default resampler for
// image_resize_keep_ratio; the resampler and filter arguments override them.
// BBOX_MCP_LOG_LEVEL=debug logs every request on stderr.
package server
