package main

import (
	"flag"
	"io"

	"a0-cli/internal/session"
)

// resumeMain 载入保存过的会话并带着记录继续交互。
func resumeMain(root rootArgs, args []string) {
	fs := flag.NewFlagSet("resume", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var sessionID string
	var resumeLast bool
	fs.StringVar(&sessionID, "session", "", "Session id to resume")
	fs.BoolVar(&resumeLast, "last", false, "Resume most recent session")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("parse resume args: %v", err)
	}
	if sessionID == "" && fs.NArg() > 0 {
		sessionID = fs.Arg(0)
	}
	if sessionID == "" && !resumeLast {
		log.Fatalf("resume needs -last or a session id (see: a0-cli history -sessions)")
	}

	dir, err := sessionsDir(root)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var rec session.Record
	if resumeLast {
		rec, err = session.Last(dir)
	} else {
		rec, err = session.Load(dir, sessionID)
	}
	if err != nil {
		log.Fatalf("failed to load session: %v", err)
	}

	runInteractive(root, &rec)
}
