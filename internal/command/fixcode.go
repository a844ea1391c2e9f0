package command

import (
	"context"
	"strings"

	"a0-cli/internal/session"
)

const fixCodeInstruction = "!!! ONLY respond with a code fix, no explanation text. " +
	"The goal is to be able to copy it right into source code. " +
	"Do NOT wrap it in markdown!!!"

// FixCode 改写提示词，让模型只回代码。触发词本身不进入提示。
type FixCode struct{}

func (FixCode) Trigger() string {
	return "-f"
}

func (FixCode) Describe() string {
	return "ask for a bare code fix, no prose"
}

func (FixCode) Execute(_ context.Context, input string, _ *session.Session) (Result, error) {
	body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "-f"))
	if body == "" {
		return Result{Handled: true, Message: "Usage: -f <code or question>"}, nil
	}
	return Result{Rewritten: body + " " + fixCodeInstruction}, nil
}
