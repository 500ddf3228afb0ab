package primitives

import (
	"math"
	"slices"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/geom"
)

// BridgeWidthFraction is the bridge width relative to the island width.
const BridgeWidthFraction = 0.85

// JJChain is a row of superconducting islands joined by overlapping bridges,
// running along +x from the local origin.
type JJChain struct {
	dims    dims.JJChainDims
	islands []geom.Rect
	bridges []geom.Rect
	total   float64
}

// NewJJChain builds the chain. The number of cells is the number of whole
// island+gap periods that fit in Length; there is always one more island
// than bridges.
func NewJJChain(d dims.JJChainDims) (*JJChain, error) {
	if err := d.Validate("jj_chain"); err != nil {
		return nil, err
	}
	unit := d.IslandLen + d.Gap
	cells := int(math.Floor(d.Length / unit))
	bw := BridgeWidthFraction * d.Width

	c := &JJChain{dims: d, total: float64(cells)*unit + d.IslandLen}
	for i := 0; i <= cells; i++ {
		x := float64(i) * unit
		c.islands = append(c.islands, geom.RectXYWH(x, -d.Width/2, d.IslandLen, d.Width))
		if i < cells {
			bx := x + d.IslandLen - d.Overlap
			c.bridges = append(c.bridges, geom.RectXYWH(bx, -bw/2, d.Gap+2*d.Overlap, bw))
		}
	}
	return c, nil
}

func (c *JJChain) Dims() dims.JJChainDims { return c.dims }
func (c *JJChain) Islands() int           { return len(c.islands) }
func (c *JJChain) Bridges() int           { return len(c.bridges) }

// TotalLength is the distance from the start of the first island to the end
// of the last.
func (c *JJChain) TotalLength() float64 { return c.total }

// IslandRects returns the local island rectangles.
func (c *JJChain) IslandRects() []geom.Rect { return slices.Clone(c.islands) }

// BridgeRects returns the local bridge rectangles.
func (c *JJChain) BridgeRects() []geom.Rect { return slices.Clone(c.bridges) }

// Shapes returns the local shapes, islands and bridges interleaved.
func (c *JJChain) Shapes() []geom.Shape {
	out := make([]geom.Shape, 0, len(c.islands)+len(c.bridges))
	for i, r := range c.islands {
		out = append(out, geom.NewRect(dims.RoleChainIsland, r))
		if i < len(c.bridges) {
			b := geom.NewRect(dims.RoleChainBridge, c.bridges[i])
			b.Alpha = 0.9
			out = append(out, b)
		}
	}
	return out
}

// Place returns the chain shapes transformed by p.
func (c *JJChain) Place(p geom.Placement) []geom.Shape { return geom.PlaceAll(c.Shapes(), p) }
