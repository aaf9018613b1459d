package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the exinc banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	s1 := out.String("                  _            ").Foreground(out.Color("#818cf8"))
	s2 := out.String("   _____  _(_)_ __   ___      ").Foreground(out.Color("#a78bfa"))
	s3 := out.String("  / _ \\ \\/ / | '_ \\ / __|   ").Foreground(out.Color("#c084fc"))
	s4 := out.String(" |  __/>  <| | | | | (__      ").Foreground(out.Color("#e879f9"))
	s5 := out.String("  \\___/_/\\_\\_|_| |_|\\___|  ").Foreground(out.Color("#f472b6"))

	fmt.Fprintln(w)
	fmt.Fprintln(w, s1)
	fmt.Fprintln(w, s2)
	fmt.Fprintln(w, s3)
	fmt.Fprintln(w, s4)
	fmt.Fprintln(w, s5)
	fmt.Fprintf(w, "  %s\n\n", out.String("v"+strings.TrimSpace(version)).Faint())
}
