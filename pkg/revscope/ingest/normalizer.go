package ingest

import (
	"regexp"
	"strings"

	"github.com/cognicore/revscope/pkg/revscope/stoplist"
)

var (
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	urlPattern      = regexp.MustCompile(`https?://\S+`)
	digitPattern    = regexp.MustCompile(`\d+`)
	punctPattern    = regexp.MustCompile(`[^\w\s]|_`)
	sentencePattern = regexp.MustCompile(`[.!?]`)
)

// Options toggles the individual cleaning steps.
type Options struct {
	Lowercase         bool `yaml:"lowercase" json:"lowercase"`
	RemoveStopWords   bool `yaml:"remove_stop_words" json:"remove_stop_words"`
	RemoveNumbers     bool `yaml:"remove_numbers" json:"remove_numbers"`
	RemovePunctuation bool `yaml:"remove_punctuation" json:"remove_punctuation"`
	RemoveTags        bool `yaml:"remove_tags" json:"remove_tags"`
	ApplyStemming     bool `yaml:"apply_stemming" json:"apply_stemming"`
}

// DefaultOptions returns the standard cleaning configuration.
func DefaultOptions() Options {
	return Options{
		Lowercase:         true,
		RemoveStopWords:   true,
		RemoveNumbers:     false,
		RemovePunctuation: true,
		RemoveTags:        true,
		ApplyStemming:     false,
	}
}

// Normalizer cleans and tokenizes review text
type Normalizer struct {
	opts  Options
	stops *stoplist.Manager
}

// NewNormalizer creates a normalizer. A nil stoplist selects the built-in
// English set.
func NewNormalizer(opts Options, stops *stoplist.Manager) *Normalizer {
	if stops == nil {
		stops = stoplist.Default()
	}
	return &Normalizer{opts: opts, stops: stops}
}

// Options returns the cleaning configuration in use.
func (n *Normalizer) Options() Options {
	return n.opts
}

// Normalize runs text through the cleaning steps in fixed order:
// case folding, tag removal, URL removal (always), digit removal,
// punctuation removal, whitespace tokenization, stopword filtering and
// stemming.
func (n *Normalizer) Normalize(text string) ProcessedDocument {
	cleaned := text

	if n.opts.Lowercase {
		cleaned = strings.ToLower(cleaned)
	}
	if n.opts.RemoveTags {
		cleaned = tagPattern.ReplaceAllString(cleaned, " ")
	}
	cleaned = urlPattern.ReplaceAllString(cleaned, " ")
	if n.opts.RemoveNumbers {
		cleaned = digitPattern.ReplaceAllString(cleaned, " ")
	}
	if n.opts.RemovePunctuation {
		cleaned = punctPattern.ReplaceAllString(cleaned, " ")
	}

	words := strings.Fields(cleaned)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if n.opts.RemoveStopWords && n.stops.IsStop(w) {
			continue
		}
		if n.opts.ApplyStemming {
			w = Stem(w)
		}
		tokens = append(tokens, w)
	}

	unique := uniqueInOrder(tokens)

	return ProcessedDocument{
		Original:         text,
		Processed:        strings.Join(tokens, " "),
		Sentences:        SplitSentences(text),
		Tokens:           tokens,
		TokenCount:       len(tokens),
		UniqueTokens:     unique,
		UniqueTokenCount: len(unique),
	}
}

// SplitSentences cuts text on '.', '!' and '?'. Fragments that are blank
// are dropped; the rest are returned as-is, surrounding spaces included.
func SplitSentences(text string) []string {
	parts := sentencePattern.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		sentences = append(sentences, p)
	}
	return sentences
}

func uniqueInOrder(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
