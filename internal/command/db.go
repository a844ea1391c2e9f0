package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"a0-cli/internal/session"
	"a0-cli/internal/vector"
)

// ErrStoreUnavailable 没有可用的向量化入口时，-db* 命令全部拒绝。
var ErrStoreUnavailable = errors.New("document store unavailable; configure an openai api key")

const (
	sourceManual    = "manual"
	sourceEmbedFile = "embed_file"

	// EmbedFileName is what -dbembed ingests from the working directory.
	EmbedFileName = "embed.txt"

	snippetLimit = 200
)

// StoreDoc -dbstore <text>：把文本存入文档库。
type StoreDoc struct {
	Store *vector.Store
}

func (StoreDoc) Trigger() string {
	return "-dbstore"
}

func (StoreDoc) Describe() string {
	return "store text in the document store"
}

func (h StoreDoc) Execute(ctx context.Context, input string, _ *session.Session) (Result, error) {
	if h.Store == nil {
		return Result{Handled: true}, ErrStoreUnavailable
	}
	text := argsAfterTrigger(input)
	if text == "" {
		return Result{Handled: true, Message: "Usage: -dbstore <text>"}, nil
	}
	id, err := h.Store.Add(ctx, text, sourceManual)
	if err != nil {
		return Result{Handled: true}, err
	}
	return Result{Handled: true, Message: fmt.Sprintf("Stored doc ID=%s", id)}, nil
}

// QueryDoc -dbquery <question>：取最相近文档并入提示，让模型带着材料作答。
type QueryDoc struct {
	Store *vector.Store
}

func (QueryDoc) Trigger() string {
	return "-dbquery"
}

func (QueryDoc) Describe() string {
	return "answer with the nearest stored document as context"
}

func (h QueryDoc) Execute(ctx context.Context, input string, _ *session.Session) (Result, error) {
	if h.Store == nil {
		return Result{Handled: true}, ErrStoreUnavailable
	}
	query := argsAfterTrigger(input)
	if query == "" {
		return Result{Handled: true, Message: "Usage: -dbquery <question>"}, nil
	}
	doc, err := h.Store.QueryNearest(ctx, query)
	if errors.Is(err, vector.ErrEmpty) {
		return Result{Handled: true, Message: "No documents found in the DB!"}, nil
	}
	if err != nil {
		return Result{Handled: true}, err
	}
	rewritten := fmt.Sprintf("%s\n\n-----\nRelevant doc:\n%s\n-----\n", query, doc.Content)
	message := fmt.Sprintf("Top doc ID=%s, snippet:\n%s...", doc.ID, snippet(doc.Content, snippetLimit))
	return Result{Rewritten: rewritten, Message: message}, nil
}

// ClearDocs -dbclear：清空整个文档库。
type ClearDocs struct {
	Store *vector.Store
}

func (ClearDocs) Trigger() string {
	return "-dbclear"
}

func (ClearDocs) Describe() string {
	return "delete every stored document"
}

func (h ClearDocs) Execute(ctx context.Context, _ string, _ *session.Session) (Result, error) {
	if h.Store == nil {
		return Result{Handled: true}, ErrStoreUnavailable
	}
	if err := h.Store.Clear(ctx); err != nil {
		return Result{Handled: true}, err
	}
	return Result{Handled: true, Message: "Document store cleared!"}, nil
}

// EmbedFile -dbembed：把工作目录下的 embed.txt 整体入库。
type EmbedFile struct {
	Store *vector.Store
}

func (EmbedFile) Trigger() string {
	return "-dbembed"
}

func (EmbedFile) Describe() string {
	return "ingest " + EmbedFileName + " as one document"
}

func (h EmbedFile) Execute(ctx context.Context, _ string, _ *session.Session) (Result, error) {
	if h.Store == nil {
		return Result{Handled: true}, ErrStoreUnavailable
	}
	data, err := os.ReadFile(EmbedFileName)
	if errors.Is(err, os.ErrNotExist) {
		return Result{Handled: true, Message: "No " + EmbedFileName + " found!"}, nil
	}
	if err != nil {
		return Result{Handled: true}, err
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return Result{Handled: true, Message: EmbedFileName + " is empty!"}, nil
	}
	id, err := h.Store.Add(ctx, content, sourceEmbedFile)
	if err != nil {
		return Result{Handled: true}, err
	}
	return Result{Handled: true, Message: fmt.Sprintf("Embedded content from %s => doc ID=%s", EmbedFileName, id)}, nil
}

func argsAfterTrigger(input string) string {
	input = strings.TrimSpace(input)
	if idx := strings.IndexByte(input, ' '); idx >= 0 {
		return strings.TrimSpace(input[idx+1:])
	}
	return ""
}

func snippet(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
