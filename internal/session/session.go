package session

import (
	"a0-cli/internal/agent"

	"github.com/google/uuid"
)

// Exchange 一轮完整问答；Response 为未换行的逐字拼接原文。
type Exchange struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// Session owns the transcript and the model client handle for one run.
// It is constructed once and passed explicitly; there is no package-level
// conversation state.
type Session struct {
	ID        string
	Model     string
	Client    agent.ModelClient
	Exchanges []Exchange
}

func New(client agent.ModelClient, model string) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Model:  model,
		Client: client,
	}
}

// Append records one completed exchange.
func (s *Session) Append(prompt, response string) {
	s.Exchanges = append(s.Exchanges, Exchange{Prompt: prompt, Response: response})
}

// LastResponse returns the most recent assistant response, if any.
func (s *Session) LastResponse() (string, bool) {
	if len(s.Exchanges) == 0 {
		return "", false
	}
	return s.Exchanges[len(s.Exchanges)-1].Response, true
}

// Messages 将历史轮次展开成 user/assistant 对，供请求重放。
func (s *Session) Messages() []agent.Message {
	msgs := make([]agent.Message, 0, len(s.Exchanges)*2)
	for _, ex := range s.Exchanges {
		msgs = append(msgs, agent.Message{Role: agent.RoleUser, Content: ex.Prompt})
		msgs = append(msgs, agent.Message{Role: agent.RoleAssistant, Content: ex.Response})
	}
	return msgs
}
