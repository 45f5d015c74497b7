//go:build !unix && !windows

package main

import "os"

func terminationSignals() []os.Signal { return []os.Signal{os.Interrupt} }

func terminalWidth(*os.File) (int, bool) { return 0, false }
