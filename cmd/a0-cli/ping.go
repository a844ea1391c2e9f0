package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"a0-cli/internal/agent"
)

func pingMain(root rootArgs, args []string) {
	if err := runPing(root, args, os.Stdout); err != nil {
		log.Fatalf("ping failed: %v", err)
	}
}

// runPing 对配置的模型端点发一次最小请求，验证连通性。
func runPing(root rootArgs, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("ping", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var modelOverride string
	var timeoutSeconds int
	fs.StringVar(&modelOverride, "model", "", "Model name (default from config)")
	fs.IntVar(&timeoutSeconds, "timeout", 0, "Timeout seconds (default 30)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	if m := strings.TrimSpace(modelOverride); m != "" {
		cfg.Model = m
	}
	if timeoutSeconds <= 0 {
		timeoutSeconds = 30
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	client, _ := buildModelClient(cfg)
	msgs := []agent.Message{
		{Role: agent.RoleSystem, Content: "请严格只输出 pong（全小写），不要任何其他字符（不要标点、不要换行）。"},
		{Role: agent.RoleUser, Content: "ping"},
	}
	got, err := client.Complete(ctx, msgs, cfg.Model)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "ok: %s\n", got)
	return nil
}
