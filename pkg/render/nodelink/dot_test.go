package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/layout"
)

func pair() layout.Layout {
	return layout.Layout{
		Rows: 1, Cols: 2, Pattern: layout.PatternCheckerboard,
		Qubits: []layout.Qubit{
			{Label: "D0", Position: geom.V2(0, 0)},
			{Label: "D1", Col: 1, Position: geom.V2(714, 0)},
		},
		Couplers: []layout.Coupler{
			{Label: "C0", From: [2]int{0, 0}, To: [2]int{0, 1}, Direction: layout.Horizontal, Mirror: true},
		},
	}
}

func TestToDOT(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{
			name: "default",
			want: []string{
				`graph G {`,
				`"D0" [label="D0", pos="0.0,0.0!"];`,
				`"D1" [label="D1", pos="71.4,0.0!"];`,
				`"D0" -- "D1" [label="C0", color="#D95F5F"];`,
			},
		},
		{
			name: "detailed and scaled",
			opts: Options{Detailed: true, Scale: 1},
			want: []string{
				`"D1" [label="D1\n(0,1)", pos="714.0,0.0!"];`,
				`label="C0 horizontal"`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(pair(), tt.opts)
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("DOT missing %q:\n%s", w, dot)
				}
			}
		})
	}
}

func TestToDOTPlainEdge(t *testing.T) {
	l := pair()
	l.Couplers[0].Mirror = false
	if dot := ToDOT(l, Options{}); !strings.Contains(dot, PlainColor) {
		t.Errorf("unmirrored coupler should use %s", PlainColor)
	}
}

func TestToDOTSkipsDanglingCoupler(t *testing.T) {
	l := pair()
	l.Couplers = append(l.Couplers, layout.Coupler{Label: "C9", From: [2]int{5, 5}, To: [2]int{5, 6}})
	if dot := ToDOT(l, Options{}); strings.Contains(dot, "C9") {
		t.Error("coupler without endpoints should be skipped")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s, want %s", out, want)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("no viewBox should pass through, got %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(pair(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, `viewBox="0 0 `) || !strings.Contains(s, "D1") {
		t.Errorf("unexpected SVG output:\n%s", s)
	}
}
