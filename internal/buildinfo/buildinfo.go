// Package buildinfo carries the version stamp injected at build time.
package buildinfo

import (
	"fmt"
	"io"
)

// Set via -ldflags "-X github.com/passdoo/desktop-cli/internal/buildinfo.buildVersion=..."
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
	buildCommit  = "N/A"
)

// Version returns the client version reported to the portal.
func Version() string {
	return buildVersion
}

// PrintBuildData writes the build stamp to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", buildVersion)
	fmt.Fprintf(w, "Build date: %s\n", buildDate)
	fmt.Fprintf(w, "Build commit: %s\n", buildCommit)
}
