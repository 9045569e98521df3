
package ioformats

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ReadVerbs reads a plain list with one verb per line. Blank lines are skipped.
func ReadVerbs(path string) ([]string, error) {
	return readLines(path)
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Queue is a list of batch files: the index names one batch file per line,
// relative to the index's directory, and the first line is the next batch.
type Queue struct {
	IndexPath string
}

// Next returns the path and verbs of the next batch.
func (q Queue) Next() (string, []string, error) {
	names, err := readLines(q.IndexPath)
	if err != nil {
		return "", nil, fmt.Errorf("reading queue index: %w", err)
	}
	if len(names) == 0 {
		return "", nil, fmt.Errorf("queue index %s is empty", q.IndexPath)
	}
	batch := filepath.Join(filepath.Dir(q.IndexPath), names[0])
	verbs, err := ReadVerbs(batch)
	if err != nil {
		return "", nil, fmt.Errorf("reading batch %s: %w", names[0], err)
	}
	return batch, verbs, nil
}

// Pop removes the first batch from the index.
func (q Queue) Pop() error {
	names, err := readLines(q.IndexPath)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return nil
	}
	var b strings.Builder
	for _, n := range names[1:] {
		b.WriteString(n + "\n")
	}
	return os.WriteFile(q.IndexPath, []byte(b.String()), 0o644)
}

// Record is an append-only list of verbs, one per line.
type Record struct {
	Path string
}

// Load returns the verbs already recorded. A missing file is an empty record.
func (r Record) Load() (map[string]struct{}, error) {
	out := map[string]struct{}{}
	verbs, err := readLines(r.Path)
	if errors.Is(err, os.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	for _, v := range verbs {
		out[v] = struct{}{}
	}
	return out, nil
}

// Append adds verb to the record.
func (r Record) Append(verb string) error {
	if dir := filepath.Dir(r.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(r.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(verb + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteNDJSON writes any JSON-marshalable items as NDJSON to w.
func WriteNDJSON(w io.Writer, items ...any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}
