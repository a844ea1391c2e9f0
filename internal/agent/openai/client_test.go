package openai

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"a0-cli/internal/agent"
)

func TestNormalizeBaseURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"https://api.openai.com", "https://api.openai.com/v1"},
		{"https://api.openai.com/v1", "https://api.openai.com/v1"},
		{"https://api.openai.com/v1/", "https://api.openai.com/v1"},
		{"https://proxy.test/v1/chat/completions", "https://proxy.test/v1"},
		{"https://proxy.test/v1/embeddings", "https://proxy.test/v1"},
		{"http://127.0.0.1:1234", "http://127.0.0.1:1234/v1"},
	}
	for _, tc := range cases {
		if got := normalizeBaseURL(tc.in); got != tc.want {
			t.Fatalf("normalizeBaseURL(%q)=%q want %q", tc.in, got, tc.want)
		}
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}

func TestStreamDeliversDeltasInOrder(t *testing.T) {
	t.Parallel()

	body := strings.Join([]string{
		`data: {"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"hello wor"}}]}`,
		"",
		`data: {"id":"c1","object":"chat.completion.chunk","choices":[{"index":0,"delta":{"content":"ld"}}]}`,
		"",
		`data: [DONE]`,
		"",
		"",
	}, "\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	client, err := New(Options{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var got []string
	err = client.Stream(t.Context(), []agent.Message{{Role: agent.RoleUser, Content: "hi"}}, "", func(delta string) {
		got = append(got, delta)
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}
	want := []string{"hello wor", "ld"}
	if len(got) != len(want) {
		t.Fatalf("deltas=%q want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delta[%d]=%q want %q", i, got[i], want[i])
		}
	}
}

func TestCompleteReturnsFirstChoice(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "c1",
			"object": "chat.completion",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "pong"}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	client, err := New(Options{APIKey: "sk-test", BaseURL: srv.URL, Model: "gpt-4o"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := client.Complete(t.Context(), []agent.Message{{Role: agent.RoleUser, Content: "ping"}}, "")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "pong" {
		t.Fatalf("Complete=%q want %q", got, "pong")
	}
}

func TestEmbedConvertsVector(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/embeddings") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object": "list",
			"data": [{"object": "embedding", "index": 0, "embedding": [0.25, -0.5, 1.0]}],
			"model": "text-embedding-3-small"
		}`))
	}))
	defer srv.Close()

	client, err := New(Options{APIKey: "sk-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	vec, err := client.Embed(t.Context(), "doc")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	want := []float32{0.25, -0.5, 1.0}
	if len(vec) != len(want) {
		t.Fatalf("vec=%v want %v", vec, want)
	}
	for i := range want {
		if vec[i] != want[i] {
			t.Fatalf("vec[%d]=%v want %v", i, vec[i], want[i])
		}
	}
}
