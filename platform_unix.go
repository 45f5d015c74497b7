//go:build unix

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// terminationSignals are the signals that end an interactive run.
func terminationSignals() []os.Signal {
	return []os.Signal{os.Interrupt, unix.SIGTERM, unix.SIGHUP}
}

// terminalWidth returns the column count of the terminal behind f.
func terminalWidth(f *os.File) (int, bool) {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 {
		return 0, false
	}
	return int(ws.Col), true
}
