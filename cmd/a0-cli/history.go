package main

import (
	"flag"
	"fmt"
	"io"

	"a0-cli/internal/history"
	"a0-cli/internal/session"
)

const defaultHistoryCount = 20

// historyMain 默认打印最近提交过的提示；-sessions 列出保存的会话，
// -last 或给定 id 打印完整对话。
func historyMain(root rootArgs, args []string) {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var count int
	var listSessions bool
	var showLast bool
	fs.IntVar(&count, "n", defaultHistoryCount, "Number of prompt entries to print")
	fs.BoolVar(&listSessions, "sessions", false, "List saved session ids")
	fs.BoolVar(&showLast, "last", false, "Print the most recent transcript")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse history args: %v", err)
	}

	if !listSessions && !showLast && fs.NArg() == 0 {
		printPromptHistory(count)
		return
	}

	dir, err := sessionsDir(root)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if showLast {
		rec, err := session.Last(dir)
		if err != nil {
			log.Fatalf("failed to load session: %v", err)
		}
		printExchanges(rec)
		return
	}
	if fs.NArg() > 0 {
		rec, err := session.Load(dir, fs.Arg(0))
		if err != nil {
			log.Fatalf("failed to load session %s: %v", fs.Arg(0), err)
		}
		printExchanges(rec)
		return
	}

	ids, err := session.ListIDs(dir)
	if err != nil {
		log.Fatalf("failed to list sessions: %v", err)
	}
	if len(ids) == 0 {
		fmt.Println("no saved sessions")
		return
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}

func printPromptHistory(count int) {
	store, err := history.NewDefault()
	if err != nil {
		log.Fatalf("prompt history unavailable: %v", err)
	}
	texts, err := store.Tail(count)
	if err != nil {
		log.Fatalf("failed to read prompt history: %v", err)
	}
	if len(texts) == 0 {
		fmt.Println("no prompt history yet")
		return
	}
	for _, t := range texts {
		fmt.Println(t)
	}
}
