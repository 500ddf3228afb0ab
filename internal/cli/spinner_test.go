package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func quietSpinner(ctx context.Context, msg string) (*Spinner, *bytes.Buffer) {
	s := newSpinner(ctx, msg)
	var buf bytes.Buffer
	s.w = &buf
	return s, &buf
}

func TestSpinnerDraws(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "Placing lattice...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Placing lattice...") {
		t.Errorf("spinner output %q missing message", buf.String())
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerCancelled(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) { return context.WithCancel(context.Background()) }},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			s, _ := quietSpinner(ctx, "Building meshes...")
			s.Start()
			cancel()
			time.Sleep(50 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("spinner should report cancellation")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := quietSpinner(context.Background(), "Rendering...")
	s.Start()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopBeforeStart(t *testing.T) {
	s, buf := quietSpinner(context.Background(), "never shown")
	s.Stop()
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestSpinnerStopWithMessages(t *testing.T) {
	var out bytes.Buffer
	old := stdout
	stdout = &out
	defer func() { stdout = old }()

	s, _ := quietSpinner(context.Background(), "Rendering...")
	s.Start()
	s.SetMessage("Rendering png...")
	s.StopWithSuccess("Rendered 2 files")

	e, _ := quietSpinner(context.Background(), "Meshing...")
	e.Start()
	e.StopWithError("Mesh export failed")

	got := out.String()
	for _, want := range []string{"Rendered 2 files", "Mesh export failed"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}
