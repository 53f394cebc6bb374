
package ioformats

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Target is one batch search input. An empty Query means "use the default".
type Target struct {
	URL   string `json:"url"`
	Query string `json:"query,omitempty"`
}

// ReadTargets reads a CSV (header with "url", optional "query") or an NDJSON
// file. If the extension is unknown it tries CSV first, then NDJSON.
func ReadTargets(path string) ([]Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ParseCSV(f)
	case ".ndjson", ".jsonl":
		return ParseNDJSON(f)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if targets, err := ParseCSV(bytes.NewReader(data)); err == nil && len(targets) > 0 {
		return targets, nil
	}
	return ParseNDJSON(bytes.NewReader(data))
}

func ParseCSV(r io.Reader) ([]Target, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty csv")
	}
	urlCol, queryCol := -1, -1
	for i, h := range rows[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "url":
			if urlCol == -1 {
				urlCol = i
			}
		case "query":
			if queryCol == -1 {
				queryCol = i
			}
		}
	}
	if urlCol == -1 {
		return nil, errors.New("csv must contain a 'url' header column")
	}
	var out []Target
	for _, row := range rows[1:] {
		if urlCol >= len(row) {
			continue
		}
		t := Target{URL: strings.TrimSpace(row[urlCol])}
		if t.URL == "" {
			continue
		}
		if queryCol >= 0 && queryCol < len(row) {
			t.Query = strings.TrimSpace(row[queryCol])
		}
		out = append(out, t)
	}
	return out, nil
}

// ParseNDJSON accepts {"url": ..., "query": ...} objects or bare URLs, one per line.
func ParseNDJSON(r io.Reader) ([]Target, error) {
	var out []Target
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "{") {
			var t Target
			if err := json.Unmarshal([]byte(line), &t); err == nil && t.URL != "" {
				out = append(out, t)
				continue
			}
		}
		// fallback: treat whole line as url
		out = append(out, Target{URL: line})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("no urls found in ndjson")
	}
	return out, nil
}

// WriteNDJSON writes any JSON-marshalable items as NDJSON to w.
func WriteNDJSON(w io.Writer, items []any) error {
	enc := json.NewEncoder(w)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return err
		}
	}
	return nil
}
