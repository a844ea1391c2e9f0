package session

import (
	"testing"
	"time"

	"a0-cli/internal/agent"
)

func TestSessionTranscript(t *testing.T) {
	t.Parallel()

	s := New(agent.EchoClient{}, "gpt-4o")
	if s.ID == "" {
		t.Fatalf("expected generated session id")
	}
	if _, ok := s.LastResponse(); ok {
		t.Fatalf("LastResponse on empty transcript should report none")
	}

	s.Append("q1", "a1")
	s.Append("q2", "a2")

	last, ok := s.LastResponse()
	if !ok || last != "a2" {
		t.Fatalf("LastResponse=%q ok=%v", last, ok)
	}

	msgs := s.Messages()
	if len(msgs) != 4 {
		t.Fatalf("len(Messages())=%d want 4", len(msgs))
	}
	if msgs[0].Role != agent.RoleUser || msgs[0].Content != "q1" {
		t.Fatalf("msgs[0]=%+v", msgs[0])
	}
	if msgs[3].Role != agent.RoleAssistant || msgs[3].Content != "a2" {
		t.Fatalf("msgs[3]=%+v", msgs[3])
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := New(agent.EchoClient{}, "gpt-4o")

	if _, err := Save(dir, s); err == nil {
		t.Fatalf("expected error saving empty transcript")
	}

	s.Append("q", "a")
	id, err := Save(dir, s)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	rec, err := Load(dir, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if rec.ID != id || len(rec.Exchanges) != 1 || rec.Exchanges[0].Response != "a" {
		t.Fatalf("Load mismatch: %+v", rec)
	}

	ids, err := ListIDs(dir)
	if err != nil || len(ids) != 1 || ids[0] != id {
		t.Fatalf("ListIDs=%v err=%v", ids, err)
	}
}

func TestLastPicksNewest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first := New(agent.EchoClient{}, "")
	first.Append("old", "old")
	if _, err := Save(dir, first); err != nil {
		t.Fatalf("Save first: %v", err)
	}

	time.Sleep(10 * time.Millisecond)

	second := New(agent.EchoClient{}, "")
	second.Append("new", "new")
	if _, err := Save(dir, second); err != nil {
		t.Fatalf("Save second: %v", err)
	}

	rec, err := Last(dir)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if rec.ID != second.ID {
		t.Fatalf("Last picked %q want %q", rec.ID, second.ID)
	}
}

func TestListIDsMissingDir(t *testing.T) {
	t.Parallel()

	ids, err := ListIDs(t.TempDir() + "/missing")
	if err != nil || ids != nil {
		t.Fatalf("ListIDs=%v err=%v", ids, err)
	}
}
