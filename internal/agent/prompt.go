package agent

import "strings"

// SystemPrompt 默认系统提示词，与原始工具一致。
const SystemPrompt = "You are a helpful assistant."

// BuildMessages assembles the request: system prompt, transcript replay,
// then the new user prompt.
func BuildMessages(system string, history []Message, prompt string) []Message {
	msgs := make([]Message, 0, len(history)+2)
	if strings.TrimSpace(system) != "" {
		msgs = append(msgs, Message{Role: RoleSystem, Content: system})
	}
	msgs = append(msgs, history...)
	msgs = append(msgs, Message{Role: RoleUser, Content: prompt})
	return msgs
}
