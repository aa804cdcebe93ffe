// Package reviews reads review corpora from JSONL or HTML exports and
// generates mock corpora.
package reviews

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cognicore/revscope/pkg/revscope/ingest"
)

// Review is one store review as exported by the review fetcher.
type Review struct {
	ID           string    `json:"id"`
	UserName     string    `json:"user_name,omitempty"`
	Content      string    `json:"content"`
	Score        float64   `json:"score"`
	Version      string    `json:"version,omitempty"`
	At           time.Time `json:"at"`
	ReplyContent string    `json:"reply_content,omitempty"`
}

// Document converts the review into an engine document.
func (r Review) Document() ingest.Document {
	return ingest.Document{ID: r.ID, RawText: r.Content, Score: r.Score}
}

// Documents converts reviews in order.
func Documents(rs []Review) []ingest.Document {
	out := make([]ingest.Document, len(rs))
	for i, r := range rs {
		out[i] = r.Document()
	}
	return out
}

// LoadFromJSONL loads reviews from a JSONL file. Malformed lines and reviews
// that fail validation are skipped with a warning.
func LoadFromJSONL(path string) ([]Review, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var out []Review
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var r Review
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			slog.Warn("skipping malformed review",
				slog.String("path", path), slog.Int("line", i+1), slog.String("error", err.Error()))
			continue
		}
		doc := r.Document()
		if err := doc.Validate(); err != nil {
			slog.Warn("skipping invalid review",
				slog.String("path", path), slog.Int("line", i+1), slog.String("error", err.Error()))
			continue
		}
		out = append(out, r)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no valid reviews found in %s", path)
	}

	return out, nil
}

// WriteJSONL writes one review per line.
func WriteJSONL(path string, rs []Review) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	for _, r := range rs {
		if err := enc.Encode(r); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

// LoadFile picks the loader by extension: .html and .htm files are read with
// LoadFromHTML, anything else as JSONL.
func LoadFile(path string) ([]Review, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		rs, err := LoadFromHTML(f)
		if err != nil {
			return nil, err
		}
		if len(rs) == 0 {
			return nil, fmt.Errorf("no reviews found in %s", path)
		}
		return rs, nil
	}
	return LoadFromJSONL(path)
}
