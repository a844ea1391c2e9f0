package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"a0-cli/internal/agent"
	anthropicmodel "a0-cli/internal/agent/anthropic"
	openaimodel "a0-cli/internal/agent/openai"
	"a0-cli/internal/command"
	"a0-cli/internal/config"
	"a0-cli/internal/history"
	"a0-cli/internal/logger"
	"a0-cli/internal/repl"
	"a0-cli/internal/session"
	"a0-cli/internal/vector"
)

func main() {
	logger.Configure()
	if logFile, _, err := logger.SetupFile(logger.DefaultLogPath); err != nil {
		log.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}

	root, rest, err := parseRootArgs(os.Args[1:])
	if err != nil {
		log.Fatalf("parse args: %v", err)
	}
	if len(rest) > 0 {
		switch rest[0] {
		case "ping":
			pingMain(root, rest[1:])
			return
		case "history":
			historyMain(root, rest[1:])
			return
		case "resume":
			resumeMain(root, rest[1:])
			return
		}
	}

	runInteractive(root, nil)
}

// runInteractive 装配全部依赖后进入交互循环；seed 非空表示续聊。
func runInteractive(root rootArgs, seed *session.Record) {
	cfg, err := loadConfig(root)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		log.Fatalf("resolve data dir: %v", err)
	}

	client, embedder := buildModelClient(cfg)

	var store *vector.Store
	if embedder != nil {
		store, err = vector.Open(filepath.Join(dataDir, "docs.db"), embedder)
		if err != nil {
			log.Warnf("document store unavailable: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	hist, err := history.NewDefault()
	if err != nil {
		log.Warnf("prompt history unavailable: %v", err)
		hist = nil
	}

	reg, err := command.NewRegistry(
		command.Copy{},
		command.FixCode{},
		command.StoreDoc{Store: store},
		command.QueryDoc{Store: store},
		command.ClearDocs{Store: store},
		command.EmbedFile{Store: store},
	)
	if err != nil {
		log.Fatalf("register commands: %v", err)
	}

	sess := session.New(client, cfg.Model)
	if seed != nil {
		sess.ID = seed.ID
		sess.Exchanges = append(sess.Exchanges, seed.Exchanges...)
	}

	conversationLog, closer, _, err := logger.SetupComponentFile("conversation", logger.DefaultConversationLogPath)
	if err != nil {
		log.Warnf("failed to initialize conversation log (%s): %v", logger.DefaultConversationLogPath, err)
		conversationLog = nil
	} else {
		defer closer.Close()
	}

	opts := repl.Options{
		Config:      &cfg,
		Session:     sess,
		Registry:    reg,
		History:     hist,
		Store:       store,
		SessionsDir: filepath.Join(dataDir, "sessions"),
		Log:         conversationLog,
	}
	if err := repl.Run(context.Background(), opts); err != nil {
		log.Fatalf("interactive session failed: %v", err)
	}
}

func loadConfig(root rootArgs) (config.Config, error) {
	cfg, err := config.Load(root.cfgPath)
	if err != nil {
		return cfg, err
	}
	return config.ApplyKVOverrides(cfg, root.overrides), nil
}

// buildModelClient 按 provider 选择客户端；没有可用凭据时退回本地回声客户端。
// 只有 openai 客户端兼任向量化入口。
func buildModelClient(cfg config.Config) (agent.ModelClient, agent.Embedder) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case config.ProviderAnthropic:
		client, err := anthropicmodel.New(anthropicmodel.Options{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
		if err != nil {
			log.Warnf("anthropic client unavailable (%v); echoing prompts locally", err)
			return agent.EchoClient{}, nil
		}
		return client, nil
	default:
		client, err := openaimodel.New(openaimodel.Options{
			APIKey:     cfg.APIKey,
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			EmbedModel: cfg.EmbedModel,
		})
		if err != nil {
			log.Warnf("openai client unavailable (%v); echoing prompts locally", err)
			return agent.EchoClient{}, nil
		}
		return client, client
	}
}

func sessionsDir(root rootArgs) (string, error) {
	cfg, err := loadConfig(root)
	if err != nil {
		return "", err
	}
	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "sessions"), nil
}

func printExchanges(rec session.Record) {
	fmt.Printf("session %s (%d exchanges)\n", rec.ID, len(rec.Exchanges))
	for _, ex := range rec.Exchanges {
		fmt.Printf("> %s\n%s\n\n", ex.Prompt, ex.Response)
	}
}
