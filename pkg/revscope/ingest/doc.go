package ingest

import (
	"fmt"
	"strings"

	"github.com/cognicore/revscope/pkg/revscope/internalerr"
	"github.com/cognicore/revscope/pkg/revscope/sentiment"
)

// Score bounds for a review.
const (
	MinScore = 1
	MaxScore = 5
)

// Document is a single review as supplied by the data source.
// ProcessedText is optional; when set it is preferred over RawText by the
// analytics and feature stages.
type Document struct {
	ID            string  `json:"id"`
	RawText       string  `json:"content"`
	Score         float64 `json:"score"`
	ProcessedText string  `json:"processed_content,omitempty"`
}

// Validate checks if the document has required fields
func (d *Document) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("document id is required: %w", internalerr.ErrInvalidInput)
	}
	if d.Score < MinScore || d.Score > MaxScore {
		return fmt.Errorf("document %s score %v outside [%d,%d]: %w",
			d.ID, d.Score, MinScore, MaxScore, internalerr.ErrInvalidInput)
	}
	return nil
}

// Text returns the processed text when present, the raw text otherwise.
func (d Document) Text() string {
	if d.ProcessedText != "" {
		return d.ProcessedText
	}
	return d.RawText
}

// Label derives the sentiment label from the score.
func (d Document) Label() sentiment.Label {
	return sentiment.FromScore(d.Score)
}

// ProcessedDocument is the result of normalizing one text.
// Sentences are cut from the original text and do not depend on the
// cleaning options.
type ProcessedDocument struct {
	Original         string   `json:"original"`
	Processed        string   `json:"processed"`
	Sentences        []string `json:"sentences"`
	Tokens           []string `json:"tokens"`
	TokenCount       int      `json:"token_count"`
	UniqueTokens     []string `json:"unique_tokens"`
	UniqueTokenCount int      `json:"unique_token_count"`
}
