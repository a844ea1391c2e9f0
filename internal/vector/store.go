package vector

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"a0-cli/internal/agent"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure Go driver
)

// ErrEmpty 表示文档库为空，查询无从谈起。
var ErrEmpty = errors.New("no documents stored")

// Doc is one stored document.
type Doc struct {
	ID      string
	Content string
	Source  string
}

// Store 本地持久化文档库：SQLite 存正文与向量，余弦相似度在进程内排序。
// 向量化委托给 Embedder，索引与嵌入语义对调用方是黑盒。
type Store struct {
	db       *sql.DB
	embedder agent.Embedder
}

const schema = `
CREATE TABLE IF NOT EXISTS docs (
	id        TEXT PRIMARY KEY,
	content   TEXT NOT NULL,
	source    TEXT NOT NULL,
	embedding BLOB NOT NULL,
	created   TEXT NOT NULL
)`

// Open opens (or creates) the document store at path.
func Open(path string, embedder agent.Embedder) (*Store, error) {
	if embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}
	// SQLite 单写者；限制连接数避免 database is locked。
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db, embedder: embedder}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Add embeds content and stores it, returning the generated document id.
func (s *Store) Add(ctx context.Context, content, source string) (string, error) {
	vec, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return "", fmt.Errorf("embed document: %w", err)
	}
	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO docs (id, content, source, embedding, created) VALUES (?, ?, ?, ?, ?)`,
		id, content, source, encodeVector(vec), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("insert document: %w", err)
	}
	return id, nil
}

// QueryNearest embeds text and returns the single most similar document.
func (s *Store) QueryNearest(ctx context.Context, text string) (Doc, error) {
	query, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return Doc{}, fmt.Errorf("embed query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, content, source, embedding FROM docs`)
	if err != nil {
		return Doc{}, err
	}
	defer rows.Close()

	var best Doc
	bestScore := math.Inf(-1)
	found := false
	for rows.Next() {
		var doc Doc
		var blob []byte
		if err := rows.Scan(&doc.ID, &doc.Content, &doc.Source, &blob); err != nil {
			return Doc{}, err
		}
		score := cosine(query, decodeVector(blob))
		if !found || score > bestScore {
			best = doc
			bestScore = score
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return Doc{}, err
	}
	if !found {
		return Doc{}, ErrEmpty
	}
	return best, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM docs`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Clear drops every stored document.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM docs`)
	return err
}

// encodeVector 小端 float32 序列化，decode 与之对称。
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func decodeVector(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return vec
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
