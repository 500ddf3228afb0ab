package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/qchip/pkg/errors"
)

func TestConfigInitShowValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chip.toml")

	if _, err := runCLI(t, "config", "init", path); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := runCLI(t, "config", "init", path); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second init err = %v, want INVALID_PATH", err)
	}
	if _, err := runCLI(t, "config", "init", "--force", path); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out, err := runCLI(t, "config", "show", path)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{"[lattice]", "rows = 3", "fluxonium", "coupler"} {
		if !strings.Contains(out, want) {
			t.Errorf("show output missing %q", want)
		}
	}

	out, err = runCLI(t, "config", "validate", path)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out, "is valid") || !strings.Contains(out, "(auto)") {
		t.Errorf("validate output = %q", out)
	}
}

func TestConfigValidateRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[lattice]\nrows = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := runCLI(t, "config", "validate", path)
	if !errors.Is(err, errors.ErrCodeInvalidLattice) {
		t.Errorf("err = %v, want INVALID_LATTICE", err)
	}
}

func TestConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "chip.toml")
	if err := os.WriteFile(cfg, []byte("[lattice]\nrows = 4\ncols = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := runCLI(t, "render", "--config", cfg, "--cols", "2", "-f", "json", "-o", filepath.Join(dir, "chip"))
	if err != nil {
		t.Fatal(err)
	}
	// 4x2: 8 sites, 4*1 + 3*2 = 10 couplers
	if !strings.Contains(out, "8 qubits") || !strings.Contains(out, "10 couplers") {
		t.Errorf("output = %q", out)
	}
}
