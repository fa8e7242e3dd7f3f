//go:build !windows

package main

import (
	"fmt"
	"runtime"
)

// runOverlay needs the Win32 tray and WebView2; other platforms only get
// the command line.
func runOverlay(cfg Config) error {
	return fmt.Errorf("gamepad-overlay is not supported on %s", runtime.GOOS)
}
