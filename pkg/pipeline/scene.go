package pipeline

import (
	"bytes"

	"github.com/matzehuels/qchip/pkg/chip3d"
	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/lattice"
	"github.com/matzehuels/qchip/pkg/layout"
)

// GenerateScene builds the 3D scene for the chip described by opts. Each call
// uses its own material cache.
func GenerateScene(opts Options) (*chip3d.Scene, error) {
	lat, err := lattice.FromConfig(opts.ChipConfig())
	if err != nil {
		return nil, err
	}

	r3 := []chip3d.Option{chip3d.WithScale(opts.SceneScale)}
	if opts.NoSubstrate {
		r3 = append(r3, chip3d.WithoutSubstrate())
	}
	if opts.NoMirror || opts.Pattern == layout.PatternNone {
		r3 = append(r3, chip3d.WithoutMirroring())
	}

	mats := chip3d.NewMaterialCache()
	defer mats.Clear()

	r, err := chip3d.NewRenderer(lat, mats, r3...)
	if err != nil {
		return nil, err
	}
	return r.Render(opts.CellType())
}

// MTLName is the material library file an OBJ artifact references.
func MTLName(name string) string { return name + ".mtl" }

// RenderScene serializes a scene in the requested 3D formats. 2D formats in
// the list are ignored.
func RenderScene(s *chip3d.Scene, formats []string, name string) (map[string][]byte, error) {
	_, scene := SplitFormats(formats)
	artifacts := make(map[string][]byte)

	for _, format := range scene {
		var buf bytes.Buffer
		var err error

		switch format {
		case FormatOBJ:
			err = s.WriteOBJ(&buf, MTLName(name))
		case FormatMTL:
			err = s.WriteMTL(&buf)
		case FormatSTL:
			err = s.WriteSTL(&buf)
		case FormatScene:
			var data []byte
			data, err = chip3d.MarshalScene(s)
			buf.Write(data)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scene format: %s", format)
		}

		if err != nil {
			return nil, stageErr(err, "write "+format)
		}
		artifacts[format] = buf.Bytes()
	}
	return artifacts, nil
}
