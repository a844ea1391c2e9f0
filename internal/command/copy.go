package command

import (
	"context"

	"a0-cli/internal/session"

	"github.com/atotto/clipboard"
)

// Copy 把上一条助手回复放进系统剪贴板。
type Copy struct{}

func (Copy) Trigger() string {
	return "-c"
}

func (Copy) Describe() string {
	return "copy the last response to the clipboard"
}

func (Copy) Execute(_ context.Context, _ string, sess *session.Session) (Result, error) {
	resp, ok := sess.LastResponse()
	if !ok {
		return Result{Handled: true, Message: "No response to copy yet."}, nil
	}
	if err := clipboard.WriteAll(resp); err != nil {
		return Result{Handled: true}, err
	}
	return Result{Handled: true, Message: "Last response copied to clipboard."}, nil
}
