//go:build ignore

// gen-icon writes the tray status icons as .ico files, one per icon state.
// Usage: go run build/gen-icon/main.go [output-dir]
//
// The all-green icon doubles as the Windows executable icon.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/controlboard/internal/status"
	"github.com/user/controlboard/internal/ui"
)

func main() {
	dir := "build/icons"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(1)
	}

	for _, s := range status.States() {
		output := filepath.Join(dir, s.String()+".ico")
		ico := ui.GenerateStatusIcon(s)
		if err := os.WriteFile(output, ico, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "write %s: %v\n", output, err)
			os.Exit(1)
		}
		fmt.Printf("Generated %s (%d bytes)\n", output, len(ico))
	}
}
