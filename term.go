package main

import (
	"os"

	"golang.org/x/sys/unix"

	"gitlab.com/tinyland/lab/dashgrid/display/grid"
)

// terminalSize queries the terminal dimensions with a winsize ioctl,
// falling back to the engine's environment-based detection when the ioctl
// fails (pipes, tests).
func terminalSize() (width, height int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col > 0 && ws.Row > 0 {
		return int(ws.Col), int(ws.Row)
	}
	return grid.DetectTerminalSize()
}
