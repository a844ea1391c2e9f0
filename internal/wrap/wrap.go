package wrap

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Writer 以流式方式做词级换行：每次 Feed 一个分片，列位置跨分片保持。
// 分片边界没有语义；任意切分的输出与一次性喂入完整文本逐字节一致。
type Writer struct {
	sink  io.Writer
	width int

	col      int
	word     strings.Builder
	hadSpace bool
}

// NewWriter builds a Writer over sink with a fixed target width for the
// lifetime of one streamed response. Non-positive widths fall back to
// DefaultWidth.
func NewWriter(sink io.Writer, width int) *Writer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Writer{sink: sink, width: width}
}

// Width returns the fixed target width.
func (w *Writer) Width() int {
	return w.width
}

// Feed renders one chunk. The current word is held until terminated by a
// space, a newline or Flush, so break decisions never depend on where chunk
// boundaries fall; two fragments split mid-word join with nothing between
// them.
func (w *Writer) Feed(chunk string) error {
	for _, r := range chunk {
		switch r {
		case '\n':
			if err := w.place(); err != nil {
				return err
			}
			if err := w.newline(); err != nil {
				return err
			}
			w.hadSpace = false
		case ' ':
			if err := w.place(); err != nil {
				return err
			}
			w.hadSpace = true
		default:
			w.word.WriteRune(r)
		}
	}
	return nil
}

// Flush places the trailing unterminated word. Call it once the stream ends.
func (w *Writer) Flush() error {
	return w.place()
}

// place 按当前列位置落下缓冲中的词；换不下时先换行，前导空格被吞掉。
func (w *Writer) place() error {
	word := w.word.String()
	w.word.Reset()
	hadSpace := w.hadSpace
	w.hadSpace = false

	wlen := runewidth.StringWidth(word)
	if hadSpace {
		if w.col+1+wlen > w.width {
			if err := w.newline(); err != nil {
				return err
			}
		} else {
			if err := w.emit(" "); err != nil {
				return err
			}
			w.col++
		}
	}
	// An oversized word is forced onto a fresh line only when the current
	// line already has content; on an empty line it overflows unbroken.
	if wlen+w.col > w.width && w.col != 0 {
		if err := w.newline(); err != nil {
			return err
		}
	}
	if word == "" {
		return nil
	}
	if err := w.emit(word); err != nil {
		return err
	}
	w.col += wlen
	return nil
}

func (w *Writer) newline() error {
	if err := w.emit("\n"); err != nil {
		return err
	}
	w.col = 0
	return nil
}

func (w *Writer) emit(s string) error {
	_, err := io.WriteString(w.sink, s)
	return err
}
