package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunPingEchoFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_BASE_URL", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	// Missing config file and no key: the echo fallback answers the ping.
	root := rootArgs{cfgPath: filepath.Join(t.TempDir(), "config.toml")}
	var out bytes.Buffer
	if err := runPing(root, nil, &out); err != nil {
		t.Fatalf("runPing: %v", err)
	}
	if got := out.String(); got != "ok: ping\n" {
		t.Fatalf("output=%q", got)
	}
}

func TestRunPingBadFlag(t *testing.T) {
	t.Parallel()

	err := runPing(rootArgs{}, []string{"-nope"}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "nope") {
		t.Fatalf("err=%v", err)
	}
}

func TestBuildModelClientFallsBack(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(rootArgs{cfgPath: filepath.Join(t.TempDir(), "config.toml")})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	cfg.APIKey = ""
	client, embedder := buildModelClient(cfg)
	if client == nil {
		t.Fatalf("expected fallback client")
	}
	if embedder != nil {
		t.Fatalf("echo fallback has no embedder")
	}
}
