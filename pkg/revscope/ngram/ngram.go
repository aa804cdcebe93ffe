// Package ngram builds contiguous token windows and ranks them by
// frequency.
package ngram

import (
	"sort"
	"strings"

	"github.com/cognicore/revscope/pkg/revscope/ingest"
)

// Size bounds accepted by configuration.
const (
	MinSize     = 1
	MaxSize     = 5
	DefaultSize = 2
)

// Count is one ranked n-gram.
type Count struct {
	NGram string `json:"ngram"`
	Count int    `json:"count"`
}

// Generate slides a window of size n over tokens and joins each window with
// a single space. It returns nil when n < 1 or there are fewer than n tokens.
func Generate(tokens []string, n int) []string {
	if n < 1 || len(tokens) < n {
		return nil
	}
	out := make([]string, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+n], " "))
	}
	return out
}

// Rank counts occurrences and sorts by count descending. Equal counts keep
// the order in which the n-grams were first seen. A limit <= 0 disables
// truncation.
func Rank(ngrams []string, limit int) []Count {
	index := make(map[string]int)
	var counts []Count
	for _, g := range ngrams {
		if i, ok := index[g]; ok {
			counts[i].Count++
			continue
		}
		index[g] = len(counts)
		counts = append(counts, Count{NGram: g, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})

	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	if counts == nil {
		counts = []Count{}
	}
	return counts
}

// ProcessCorpus generates n-grams per document (windows never cross
// document boundaries), aggregates them and returns the top limit entries.
// Each document contributes the whitespace tokens of its Text().
func ProcessCorpus(docs []ingest.Document, n, limit int) []Count {
	var all []string
	for _, d := range docs {
		text := d.Text()
		if text == "" {
			continue
		}
		all = append(all, Generate(strings.Fields(text), n)...)
	}
	return Rank(all, limit)
}
