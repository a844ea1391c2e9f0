package command

import (
	"context"
	"fmt"
	"strings"

	"a0-cli/internal/session"

	"github.com/sahilm/fuzzy"
)

// Result 命令执行结果：Rewritten 非空则继续正常聊天流程，
// Handled 为 true 则本轮不再请求模型，Message 直接展示给用户。
type Result struct {
	Rewritten string
	Handled   bool
	Message   string
}

// Handler is one dash-prefixed command. The set is fixed at start-up by
// explicit registration; there is no directory scanning or reflection.
type Handler interface {
	Trigger() string
	Describe() string
	Execute(ctx context.Context, input string, sess *session.Session) (Result, error)
}

// Registry maps a trigger token to its handler.
type Registry struct {
	handlers map[string]Handler
	order    []string
}

func NewRegistry(handlers ...Handler) (*Registry, error) {
	r := &Registry{handlers: map[string]Handler{}}
	for _, h := range handlers {
		if err := r.Register(h); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Register(h Handler) error {
	trigger := strings.TrimSpace(h.Trigger())
	if trigger == "" {
		return fmt.Errorf("handler %T has an empty trigger", h)
	}
	if _, exists := r.handlers[trigger]; exists {
		return fmt.Errorf("duplicate trigger %q", trigger)
	}
	r.handlers[trigger] = h
	r.order = append(r.order, trigger)
	return nil
}

// Handlers returns handlers in registration order.
func (r *Registry) Handlers() []Handler {
	out := make([]Handler, 0, len(r.order))
	for _, trigger := range r.order {
		out = append(out, r.handlers[trigger])
	}
	return out
}

// Dispatch routes input by its first whitespace-separated token. Input that
// matches no trigger flows through unchanged (matched=false), including
// unknown dash tokens; the caller may ask Suggest for a hint.
func (r *Registry) Dispatch(ctx context.Context, input string, sess *session.Session) (Result, bool, error) {
	first := firstToken(input)
	h, ok := r.handlers[first]
	if !ok {
		return Result{Rewritten: input}, false, nil
	}
	res, err := h.Execute(ctx, input, sess)
	return res, true, err
}

// Suggest 对未知的 '-' 令牌做模糊匹配，返回最接近的触发词。
func (r *Registry) Suggest(token string) string {
	token = strings.TrimPrefix(strings.TrimSpace(token), "-")
	if token == "" {
		return ""
	}
	keys := make([]string, 0, len(r.order))
	for _, trigger := range r.order {
		keys = append(keys, strings.TrimPrefix(trigger, "-"))
	}
	matches := fuzzy.Find(strings.ToLower(token), keys)
	if len(matches) == 0 {
		return ""
	}
	return r.order[matches[0].Index]
}

func firstToken(input string) string {
	input = strings.TrimSpace(input)
	if idx := strings.IndexByte(input, ' '); idx >= 0 {
		return input[:idx]
	}
	return input
}
