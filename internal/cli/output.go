package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/qchip/pkg/errors"
	"github.com/matzehuels/qchip/pkg/pipeline"
)

const layoutSuffix = ".layout.json"

// basePath derives the artifact path prefix. An explicit output loses any
// known format extension; otherwise the input file name (minus its layout
// suffix) or fallback is used.
func basePath(output, input, fallback string) string {
	if output != "" {
		return stripFormatExt(output)
	}
	if input != "" {
		if strings.HasSuffix(input, layoutSuffix) {
			return strings.TrimSuffix(input, layoutSuffix)
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	return fallback
}

func stripFormatExt(path string) string {
	if strings.HasSuffix(path, ".scene.json") {
		return strings.TrimSuffix(path, ".scene.json")
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if pipeline.ValidFormats[ext] || pipeline.ValidSceneFormats[ext] {
		return strings.TrimSuffix(path, "."+ext)
	}
	return path
}

// writeArtifacts writes one file per requested format and returns the paths
// in request order.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			return paths, errors.New(errors.ErrCodeInternal, "no %s output was produced", format)
		}
		path := base + "." + pipeline.FormatExt(format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
