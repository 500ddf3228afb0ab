package sink

import (
	"bytes"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/geom"
	"github.com/matzehuels/qchip/pkg/layout"
)

// DefaultPNGScale maps chip units (um) to pixels.
const DefaultPNGScale = 0.5

// MaxPNGSide bounds either image dimension.
const MaxPNGSide = 16384

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	palette dims.Palette
	scale   float64
}

// WithScale sets pixels per chip unit (default [DefaultPNGScale]).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGPalette overrides the colours stored in the layout's config.
func WithPNGPalette(p dims.Palette) PNGOption {
	return func(r *pngRenderer) { r.palette = p }
}

// RenderPNG rasterizes the layout's shapes with gg. Labels are not drawn;
// use RenderSVG with render.ToPNG when text is needed.
func RenderPNG(l layout.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: DefaultPNGScale}
	for _, opt := range opts {
		opt(&r)
	}
	if err := errors.Positive("png.scale", r.scale); err != nil {
		return nil, err
	}
	palette := resolvePalette(l, r.palette)

	bounds := canvasBounds(l)
	w := int(math.Ceil(bounds.Width() * r.scale))
	h := int(math.Ceil(bounds.Height() * r.scale))
	if w < 1 || h < 1 || w > MaxPNGSide || h > MaxPNGSide {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"png size %dx%d out of range (1..%d); adjust the scale (got %g)", w, h, MaxPNGSide, r.scale)
	}

	dc := gg.NewContext(w, h)
	defer dc.Close()
	dc.ClearWithColor(gg.Hex(palette.Color(dims.RoleBackground)))

	view := geom.ViewTransform(bounds, r.scale)
	for _, s := range drawOrder(l.Shapes) {
		if err := fillShape(dc, s, view, palette); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "rasterize %s", s.Role)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func fillShape(dc *gg.Context, s geom.Shape, view geom.Affine, p dims.Palette) error {
	outline := s.Outline()
	if len(outline) < 3 {
		return nil
	}
	c := gg.Hex(p.Color(s.Role))
	dc.SetRGBA(c.R, c.G, c.B, opacity(s))
	for i, v := range outline {
		q := view.Apply(v)
		if i == 0 {
			dc.MoveTo(q.X, q.Y)
		} else {
			dc.LineTo(q.X, q.Y)
		}
	}
	dc.ClosePath()
	return dc.Fill()
}
