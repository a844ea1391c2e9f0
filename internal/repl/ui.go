package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/peterh/liner"

	"a0-cli/internal/agent"
	"a0-cli/internal/command"
	"a0-cli/internal/config"
	"a0-cli/internal/history"
	"a0-cli/internal/logger"
	"a0-cli/internal/session"
	"a0-cli/internal/vector"
	"a0-cli/internal/wrap"
)

// Options carries everything the interactive loop needs. All fields are
// wired by the caller; nil History, Store and Log degrade gracefully.
type Options struct {
	Config      *config.Config
	Session     *session.Session
	Registry    *command.Registry
	History     *history.Store
	Store       *vector.Store
	SessionsDir string
	Log         *logger.LogEntry
}

// promptEvent 对一次读行的结果分类：继续、丢弃本行重来、退出。
type promptEvent int

const (
	promptOK promptEvent = iota
	promptRetry
	promptExit
)

// classifyPromptErr 把行编辑器的错误归类。Ctrl-C 只作废当前行，
// Ctrl-D（EOF）才结束会话。
func classifyPromptErr(err error) (promptEvent, error) {
	switch {
	case err == nil:
		return promptOK, nil
	case errors.Is(err, liner.ErrPromptAborted):
		return promptRetry, nil
	case errors.Is(err, io.EOF):
		return promptExit, nil
	default:
		return promptExit, err
	}
}

// Run 主循环：读一行、派发命令、流式渲染回复、落盘。
// EOF 与 exit/quit 等价；退出路径统一走 saveSession。
func Run(ctx context.Context, opts Options) error {
	log := opts.Log
	if log == nil {
		log = logger.Named("conversation")
	}

	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer line.Close()

	seedHistory(line, opts.History)
	printBanner(opts)

	prefix, suffix := responseMarkers(termenv.ColorProfile())
	renderer := Renderer{
		Sink:    os.Stdout,
		WidthFn: func() int { return wrap.StdoutWidth(opts.Config.WidthCap) },
		Prefix:  prefix,
		Suffix:  suffix,
	}

	for {
		input, err := line.Prompt(promptStyle.Render("a0> "))
		switch event, err := classifyPromptErr(err); event {
		case promptRetry:
			fmt.Println()
			continue
		case promptExit:
			if err != nil {
				return err
			}
			fmt.Println()
			return saveSession(opts, log)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			return saveSession(opts, log)
		}

		line.AppendHistory(input)
		if opts.History != nil {
			if err := opts.History.Append(input); err != nil {
				log.WithError(err).Warn("append prompt history")
			}
		}

		res, matched, err := opts.Registry.Dispatch(ctx, input, opts.Session)
		if err != nil {
			fmt.Println(errorStyle.Render("[error]") + " " + err.Error())
			continue
		}
		if res.Message != "" {
			fmt.Println(noticeStyle.Render(res.Message))
		}
		if res.Handled {
			continue
		}
		if !matched {
			if hint := suggestFor(opts.Registry, input); hint != "" {
				fmt.Println(infoStyle.Render(hint))
			}
		}

		prompt := res.Rewritten
		msgs := agent.BuildMessages(agent.SystemPrompt, opts.Session.Messages(), prompt)

		fmt.Println()
		response, err := renderer.Stream(ctx, opts.Session.Client, msgs, opts.Session.Model)
		fmt.Println()
		if err != nil {
			log.WithError(err).Error("stream response")
			fmt.Println(errorStyle.Render("[error]") + " " + err.Error())
			continue
		}

		opts.Session.Append(prompt, response)
		log.WithField("prompt_len", len(prompt)).
			WithField("response_len", len(response)).
			Debug("exchange complete")

		storeExchange(ctx, opts, prompt, response, log)
	}
}

func seedHistory(line *liner.State, store *history.Store) {
	if store == nil {
		return
	}
	texts, err := store.Tail(history.MaxSeed)
	if err != nil {
		return
	}
	for _, t := range texts {
		line.AppendHistory(t)
	}
}

func printBanner(opts Options) {
	fmt.Println()
	fmt.Println(bannerStyle.Render("a0 interactive chat"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 30)))
	fmt.Printf("%s %s (%s)\n",
		infoStyle.Render("Model:"),
		opts.Session.Model,
		opts.Config.Provider)
	if opts.Store == nil {
		fmt.Println(infoStyle.Render("Docs:  unavailable (no embeddings)"))
	}
	fmt.Println()
	for _, h := range opts.Registry.Handlers() {
		fmt.Printf("  %s  %s\n",
			noticeStyle.Render(fmt.Sprintf("%-10s", h.Trigger())),
			infoStyle.Render(h.Describe()))
	}
	fmt.Println()
	fmt.Println(infoStyle.Render("Type a prompt, or exit/quit to leave."))
	fmt.Println()
}

// suggestFor 只对疑似打错的命令给提示，普通提问不打扰。
func suggestFor(reg *command.Registry, input string) string {
	token, _, _ := strings.Cut(input, " ")
	if !strings.HasPrefix(token, "-") {
		return ""
	}
	if s := reg.Suggest(token); s != "" {
		return fmt.Sprintf("Unknown command %q sent to the model as-is. Did you mean %s?", token, s)
	}
	return ""
}

func saveSession(opts Options, log *logger.LogEntry) error {
	if len(opts.Session.Exchanges) == 0 {
		fmt.Println(infoStyle.Render("Goodbye!"))
		return nil
	}
	if _, err := session.Save(opts.SessionsDir, opts.Session); err != nil {
		log.WithError(err).Error("save session")
		return err
	}
	fmt.Println(infoStyle.Render("Session saved: " + opts.Session.ID))
	return nil
}

func storeExchange(ctx context.Context, opts Options, prompt, response string, log *logger.LogEntry) {
	if !opts.Config.StoreExchanges || opts.Store == nil {
		return
	}
	doc := fmt.Sprintf("Q: %s\nA: %s", prompt, response)
	if _, err := opts.Store.Add(ctx, doc, "exchange"); err != nil {
		log.WithError(err).Warn("store exchange")
	}
}
