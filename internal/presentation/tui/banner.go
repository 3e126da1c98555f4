package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner with the library version.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Green-to-teal gradient, one color per line
	lines := []struct {
		text  string
		color string
	}{
		{"                       _ _            ", "#34d399"},
		{"   ___  ___ _ __  __ _| (_) ___ _ __  ", "#2dd4bf"},
		{"  / _ \\/ __| '_ \\/ _` | | |/ _ \\ '__| ", "#22d3ee"},
		{" |  __/\\__ \\ |_) | (_| | | |  __/ |   ", "#38bdf8"},
		{"  \\___||___/ .__/\\__,_|_|_|\\___|_|    ", "#60a5fa"},
		{"           |_|                        ", "#818cf8"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Printf("  v%s\n\n", strings.TrimSpace(version))
}
