//go:build windows

package main

import (
	"os"

	"golang.org/x/sys/windows"
)

// terminationSignals are the signals that end an interactive run.
func terminationSignals() []os.Signal {
	return []os.Signal{os.Interrupt, windows.SIGTERM}
}

// terminalWidth returns the visible column count of the console behind f.
func terminalWidth(f *os.File) (int, bool) {
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(f.Fd()), &info); err != nil {
		return 0, false
	}
	return int(info.Window.Right-info.Window.Left) + 1, true
}
