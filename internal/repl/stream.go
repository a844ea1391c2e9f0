package repl

import (
	"bufio"
	"context"
	"io"
	"strings"

	"a0-cli/internal/agent"
	"a0-cli/internal/wrap"
)

// Renderer 把流式回复边到边写到终端：逐块喂给换行器并立即刷出。
// WidthFn 在每次 Stream 开始时调用一次，终端在两次回复之间变宽变窄都会生效。
// 返回值始终是未经换行的原始拼接，供会话记录与剪贴板使用。
type Renderer struct {
	Sink    io.Writer
	WidthFn func() int
	Prefix  string // SGR written before the stream
	Suffix  string // SGR written after the stream
}

func (r Renderer) width() int {
	if r.WidthFn != nil {
		return r.WidthFn()
	}
	return wrap.DefaultWidth
}

func (r Renderer) Stream(ctx context.Context, client agent.ModelClient, msgs []agent.Message, model string) (string, error) {
	bw := bufio.NewWriter(r.Sink)
	ww := wrap.NewWriter(bw, r.width())

	if r.Prefix != "" {
		bw.WriteString(r.Prefix)
	}

	var verbatim strings.Builder
	var feedErr error
	streamErr := client.Stream(ctx, msgs, model, func(delta string) {
		verbatim.WriteString(delta)
		if err := ww.Feed(delta); err != nil && feedErr == nil {
			feedErr = err
		}
		bw.Flush()
	})

	if err := ww.Flush(); err != nil && feedErr == nil {
		feedErr = err
	}
	if r.Suffix != "" {
		bw.WriteString(r.Suffix)
	}
	bw.WriteString("\n")
	if err := bw.Flush(); err != nil && feedErr == nil {
		feedErr = err
	}
	if feedErr != nil {
		return verbatim.String(), feedErr
	}
	return verbatim.String(), streamErr
}
