package wrap

import (
	"os"

	"golang.org/x/term"
)

const (
	// DefaultWidth 终端宽度探测失败时的回退值。
	DefaultWidth = 100
	// DefaultWidthCap keeps lines readable on very wide terminals.
	DefaultWidthCap = 100
)

// DetectWidth measures the terminal attached to fd, falling back to
// DefaultWidth when fd is not a terminal or measurement fails, and clamping
// to limit when limit is positive. Width is read once per streamed response
// and held constant; mid-stream resizes are not honored.
func DetectWidth(fd int, limit int) int {
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = DefaultWidth
	}
	if limit > 0 && width > limit {
		width = limit
	}
	return width
}

// StdoutWidth is DetectWidth over stdout.
func StdoutWidth(limit int) int {
	return DetectWidth(int(os.Stdout.Fd()), limit)
}
