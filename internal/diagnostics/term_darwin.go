//go:build darwin
// +build darwin

package diagnostics

import (
	"os"

	"golang.org/x/sys/unix"
)

const SupportsColorEscapes = true

// GetTerminalInfo is adapted from the teacher's
// internal/logger/logger_darwin.go: ioctl-probe the file descriptor for
// TIOCGETA (is it a tty?) and TIOCGWINSZ (how wide is it?) so the CLI
// driver can decide whether to color diagnostics. Width and Height are
// reported but not used: Diagnostic.Format never wraps the source-line
// snippet.
func GetTerminalInfo(file *os.File) (info TerminalInfo) {
	fd := file.Fd()

	if _, err := unix.IoctlGetTermios(int(fd), unix.TIOCGETA); err == nil {
		info.IsTTY = true
		info.UseColorEscapes = os.Getenv("NO_COLOR") == ""

		if w, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ); err == nil {
			info.Width = int(w.Col)
			info.Height = int(w.Row)
		}
	}

	return
}
