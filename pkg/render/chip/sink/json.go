package sink

import "github.com/matzehuels/qchip/pkg/layout"

// RenderJSON exports the layout as pretty-printed JSON. The output reads back
// with [layout.UnmarshalLayout] and re-renders identically.
func RenderJSON(l layout.Layout) ([]byte, error) {
	return layout.MarshalLayout(l)
}
