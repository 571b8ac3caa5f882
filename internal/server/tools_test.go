package server

import (
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expected := map[string]string{
		"bbox_create":             "BBOX Create",
		"bbox_padding":            "BBOX Padding",
		"bbox_resize":             "BBOX Resize",
		"image_resize_keep_ratio": "Resize Image Keep Ratio",
		"bbox_crop":               "BBOX Crop",
		"bbox_draw":               "BBOX Draw",
		"bbox_detect":             "BBOX Detect",
		"bbox_from_text":          "BBOX From Text",
	}

	if len(tools) != len(expected) {
		t.Errorf("got %d tools, want %d", len(tools), len(expected))
	}

	for _, tool := range tools {
		title, ok := expected[tool.Name]
		if !ok {
			t.Errorf("unexpected tool %s", tool.Name)
			continue
		}
		if tool.Title != title {
			t.Errorf("%s title: got %q, want %q", tool.Name, tool.Title, title)
		}
	}
}

func TestGetToolDefinitions_Sorted(t *testing.T) {
	tools := GetToolDefinitions()
	for i := 1; i < len(tools); i++ {
		if tools[i-1].Name >= tools[i].Name {
			t.Errorf("tools not sorted: %s before %s", tools[i-1].Name, tools[i].Name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok || len(props) == 0 {
				t.Fatal("InputSchema has no properties")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %q is not a property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_BBoxArguments(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		props := tool.InputSchema["properties"].(map[string]interface{})
		prop, ok := props["bbox"].(map[string]interface{})
		if !ok {
			continue
		}

		t.Run(tool.Name, func(t *testing.T) {
			if prop["type"] != "array" {
				t.Errorf("bbox type: got %v, want array", prop["type"])
			}
			if prop["minItems"] != 4 || prop["maxItems"] != 4 {
				t.Errorf("bbox should have exactly 4 items, got min=%v max=%v", prop["minItems"], prop["maxItems"])
			}
		})
	}
}

func TestToolDefinitions_Defaults(t *testing.T) {
	tools := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		tools[tool.Name] = tool
	}

	tests := []struct {
		tool, property string
		want           interface{}
	}{
		{"bbox_padding", "padding", 0},
		{"bbox_resize", "width", defaultTargetSize},
		{"bbox_resize", "height", defaultTargetSize},
		{"bbox_resize", "keep_ratio", true},
		{"image_resize_keep_ratio", "width", defaultTargetSize},
		{"image_resize_keep_ratio", "height", defaultTargetSize},
	}

	for _, tt := range tests {
		t.Run(tt.tool+"/"+tt.property, func(t *testing.T) {
			props := tools[tt.tool].InputSchema["properties"].(map[string]interface{})
			prop := props[tt.property].(map[string]interface{})
			if prop["default"] != tt.want {
				t.Errorf("default: got %v, want %v", prop["default"], tt.want)
			}
		})
	}
}

func TestNodes(t *testing.T) {
	nodes := Nodes()
	if len(nodes) != len(registry) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(registry))
	}
	for _, n := range nodes {
		if n.Category != Category {
			t.Errorf("%s category: got %q, want %q", n.Name, n.Category, Category)
		}
		if n.DisplayName == "" {
			t.Errorf("%s has no display name", n.Name)
		}
	}
}
