package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Record is the persisted transcript schema under <data_dir>/sessions.
type Record struct {
	ID        string     `json:"id"`
	Exchanges []Exchange `json:"exchanges"`
	Updated   time.Time  `json:"updated"`
}

func Save(dir string, s *Session) (string, error) {
	if s == nil || len(s.Exchanges) == 0 {
		return "", errors.New("nothing to save")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	rec := Record{ID: s.ID, Exchanges: s.Exchanges, Updated: time.Now()}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return s.ID, nil
}

func Load(dir, id string) (Record, error) {
	var rec Record
	data, err := os.ReadFile(filepath.Join(dir, id+".json"))
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

func Last(dir string) (Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Record{}, err
	}
	if len(entries) == 0 {
		return Record{}, fmt.Errorf("no sessions found")
	}
	sort.Slice(entries, func(i, j int) bool {
		iInfo, _ := entries[i].Info()
		jInfo, _ := entries[j].Info()
		if iInfo == nil || jInfo == nil {
			return entries[i].Name() > entries[j].Name()
		}
		return iInfo.ModTime().After(jInfo.ModTime())
	})
	return Load(dir, trimExt(entries[0].Name()))
}

func ListIDs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		ids = append(ids, trimExt(e.Name()))
	}
	return ids, nil
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
