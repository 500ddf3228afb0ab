package pipeline

import (
	"github.com/matzehuels/qchip/pkg/dims"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/layout"
	"github.com/matzehuels/qchip/pkg/render/chip/sink"
	"github.com/matzehuels/qchip/pkg/render/nodelink"
)

// Render generates 2D artifacts in the requested formats. Scene formats in
// opts.Formats are ignored here; see [GenerateScene].
func Render(l layout.Layout, opts Options) (map[string][]byte, error) {
	flat, _ := SplitFormats(opts.Formats)
	if opts.IsGraph() {
		return renderGraph(l, flat, opts)
	}
	return renderChip(l, flat, opts)
}

// renderChip draws the full chip geometry.
func renderChip(l layout.Layout, formats []string, opts Options) (map[string][]byte, error) {
	var palette dims.Palette
	if opts.Palette != "" {
		p, err := dims.LookupPalette(opts.Palette)
		if err != nil {
			return nil, err
		}
		palette = p
	}
	svgOpts := []sink.SVGOption{sink.WithPalette(palette)}
	if opts.NoLabels {
		svgOpts = append(svgOpts, sink.WithoutLabels())
	}

	artifacts := make(map[string][]byte)
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(l, svgOpts...)
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithPNGPalette(palette)}
			if opts.Scale > 0 {
				pngOpts = append(pngOpts, sink.WithScale(opts.Scale))
			}
			data, err = sink.RenderPNG(l, pngOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(l, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		case FormatDOT:
			data = []byte(nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed}))
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported chip format: %s", format)
		}

		if err != nil {
			return nil, stageErr(err, "render "+format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderGraph draws the lattice connectivity through Graphviz.
func renderGraph(l layout.Layout, formats []string, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultGraphScale
	}

	artifacts := make(map[string][]byte)
	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		case FormatDOT:
			data = []byte(dot)
		case FormatJSON:
			data, err = sink.RenderJSON(l)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported graph format: %s", format)
		}

		if err != nil {
			return nil, stageErr(err, "render "+format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// stageErr keeps coded errors intact so their user message survives, and
// wraps anything else as internal.
func stageErr(err error, stage string) error {
	if errors.GetCode(err) != "" {
		return err
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "%s", stage)
}
