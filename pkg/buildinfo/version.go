// Package buildinfo carries version information stamped in at link time:
//
//	go build -ldflags "-X github.com/matzehuels/qchip/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/qchip/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/qchip/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the JSON shape reported by the API health endpoint.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the stamped values.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String renders the values for `qchip version` style output.
func String() string {
	return fmt.Sprintf("qchip %s (commit %s, built %s)", Version, Commit, Date)
}

// Template is the cobra version template.
func Template() string {
	return "{{.Name}} " + Version + " (commit " + Commit + ", built " + Date + ")\n"
}
