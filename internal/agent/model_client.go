package agent

import (
	"context"
	"errors"
)

// ModelClient 定义模型客户端接口。Stream 以推送方式逐片回调 onDelta，
// 调用方在回调返回前完成渲染，分片之间不重叠。
type ModelClient interface {
	Complete(ctx context.Context, messages []Message, model string) (string, error)
	Stream(ctx context.Context, messages []Message, model string, onDelta func(string)) error
}

// Embedder turns text into a vector for the document store. Clients that
// have no embeddings endpoint simply do not implement it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// EchoClient is a fallback when no API key is available.
type EchoClient struct {
	Prefix string
}

var _ ModelClient = EchoClient{}

func (c EchoClient) Complete(_ context.Context, messages []Message, _ string) (string, error) {
	if len(messages) == 0 {
		return "", errors.New("no messages to echo")
	}
	last := messages[len(messages)-1]
	return c.Prefix + last.Content, nil
}

func (c EchoClient) Stream(ctx context.Context, messages []Message, model string, onDelta func(string)) error {
	text, err := c.Complete(ctx, messages, model)
	if err != nil {
		return err
	}
	onDelta(text)
	return nil
}
