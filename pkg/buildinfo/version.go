// Package buildinfo exposes the version stamped into a panelview binary.
//
// Release builds set the variables with the linker:
//
//	go build -ldflags "\
//	  -X github.com/matzehuels/panelview/pkg/buildinfo.Version=v0.3.0 \
//	  -X github.com/matzehuels/panelview/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/matzehuels/panelview/pkg/buildinfo.Date=$(date -u +%FT%TZ)" \
//	  ./cmd/panelview
package buildinfo

import "fmt"

// Linker-stamped values. Development builds keep the placeholders.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is what GET /version returns.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get snapshots the stamped values.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// Template is the cobra version template for --version.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", i.Version, i.Commit, i.Date)
}
