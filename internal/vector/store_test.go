package vector

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"
)

// stubEmbedder 返回预置向量，避免测试触网。
type stubEmbedder struct {
	vecs map[string][]float32
}

func (s stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec, ok := s.vecs[text]
	if !ok {
		return nil, errors.New("unexpected text: " + text)
	}
	return vec, nil
}

func openTestStore(t *testing.T, embedder stubEmbedder) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "docs.db"), embedder)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreAddQueryNearest(t *testing.T) {
	t.Parallel()

	embedder := stubEmbedder{vecs: map[string][]float32{
		"go is a language":    {1, 0, 0},
		"cats are animals":    {0, 1, 0},
		"what language is go": {0.9, 0.1, 0},
	}}
	store := openTestStore(t, embedder)
	ctx := t.Context()

	if _, err := store.QueryNearest(ctx, "what language is go"); !errors.Is(err, ErrEmpty) {
		t.Fatalf("QueryNearest on empty store: err=%v want ErrEmpty", err)
	}

	goID, err := store.Add(ctx, "go is a language", "manual")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := store.Add(ctx, "cats are animals", "manual"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	if n, err := store.Count(ctx); err != nil || n != 2 {
		t.Fatalf("Count=%d err=%v", n, err)
	}

	doc, err := store.QueryNearest(ctx, "what language is go")
	if err != nil {
		t.Fatalf("QueryNearest: %v", err)
	}
	if doc.ID != goID || doc.Content != "go is a language" {
		t.Fatalf("QueryNearest picked %+v", doc)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n, err := store.Count(ctx); err != nil || n != 0 {
		t.Fatalf("Count after Clear=%d err=%v", n, err)
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	embedder := stubEmbedder{vecs: map[string][]float32{
		"remember me": {1, 1},
		"query":       {1, 1},
	}}
	path := filepath.Join(t.TempDir(), "docs.db")

	store, err := Open(path, embedder)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Add(t.Context(), "remember me", "manual"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path, embedder)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	doc, err := reopened.QueryNearest(t.Context(), "query")
	if err != nil {
		t.Fatalf("QueryNearest after reopen: %v", err)
	}
	if doc.Content != "remember me" {
		t.Fatalf("doc=%+v", doc)
	}
}

func TestVectorCodecRoundTrip(t *testing.T) {
	t.Parallel()

	want := []float32{0.25, -1.5, 3.75, 0}
	got := decodeVector(encodeVector(want))
	if len(got) != len(want) {
		t.Fatalf("len=%d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d]=%v want %v", i, got[i], want[i])
		}
	}
}

func TestCosine(t *testing.T) {
	t.Parallel()

	if got := cosine([]float32{1, 0}, []float32{1, 0}); math.Abs(got-1) > 1e-9 {
		t.Fatalf("cosine parallel=%v want 1", got)
	}
	if got := cosine([]float32{1, 0}, []float32{0, 1}); math.Abs(got) > 1e-9 {
		t.Fatalf("cosine orthogonal=%v want 0", got)
	}
	if got := cosine([]float32{0, 0}, []float32{1, 0}); got != 0 {
		t.Fatalf("cosine zero vector=%v want 0", got)
	}
}
