package geom

import "math"

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min Vec2 `json:"min" bson:"min"`
	Max Vec2 `json:"max" bson:"max"`
}

// EmptyBBox returns a box containing no points. Including any point yields
// the degenerate box at that point.
func EmptyBBox() BBox {
	inf := math.Inf(1)
	return BBox{Min: Vec2{inf, inf}, Max: Vec2{-inf, -inf}}
}

// BoundsOf returns the bounding box of pts.
func BoundsOf(pts ...Vec2) BBox {
	b := EmptyBBox()
	for _, p := range pts {
		b = b.Include(p)
	}
	return b
}

// Empty reports whether the box contains no points.
func (b BBox) Empty() bool { return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y }

// Include grows the box to contain p.
func (b BBox) Include(p Vec2) BBox {
	return BBox{
		Min: Vec2{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y)},
		Max: Vec2{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y)},
	}
}

// Union returns the smallest box containing b and o.
func (b BBox) Union(o BBox) BBox {
	if o.Empty() {
		return b
	}
	return b.Include(o.Min).Include(o.Max)
}

// Expand grows the box by margin on every side.
func (b BBox) Expand(margin float64) BBox {
	m := Vec2{margin, margin}
	return BBox{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

func (b BBox) Width() float64  { return b.Max.X - b.Min.X }
func (b BBox) Height() float64 { return b.Max.Y - b.Min.Y }
func (b BBox) Center() Vec2    { return b.Min.Mid(b.Max) }

// NewBBoxAround returns the square box of half-size r centered on c.
func NewBBoxAround(c Vec2, r float64) BBox {
	return BBox{Min: c.Sub(Vec2{r, r}), Max: c.Add(Vec2{r, r})}
}
