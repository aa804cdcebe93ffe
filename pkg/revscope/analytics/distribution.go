// Package analytics computes descriptive statistics over a review corpus:
// label and rating distributions, keyword and aspect summaries, and how
// review length relates to the score.
package analytics

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/cognicore/revscope/pkg/revscope/ingest"
	"github.com/cognicore/revscope/pkg/revscope/sentiment"
)

// MinKeywordLength is the shortest word counted as a keyword.
const MinKeywordLength = 2

// LabelCount is the number of reviews carrying one label.
type LabelCount struct {
	Label sentiment.Label `json:"label"`
	Count int             `json:"count"`
}

// RatingCount is the number of reviews with one star rating.
type RatingCount struct {
	Stars int `json:"stars"`
	Count int `json:"count"`
}

// Keyword is a word and the number of times it occurs across the corpus.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// SentimentDistribution counts reviews per label, in sentiment.Labels order.
func SentimentDistribution(docs []ingest.Document) []LabelCount {
	counts := make(map[sentiment.Label]int)
	for _, d := range docs {
		counts[d.Label()]++
	}
	labels := sentiment.Labels()
	out := make([]LabelCount, len(labels))
	for i, l := range labels {
		out[i] = LabelCount{Label: l, Count: counts[l]}
	}
	return out
}

// RatingDistribution counts reviews per star rating from 5 down to 1.
// Fractional or out-of-range scores are not counted.
func RatingDistribution(docs []ingest.Document) []RatingCount {
	var counts [ingest.MaxScore + 1]int
	for _, d := range docs {
		if d.Score != math.Trunc(d.Score) || d.Score < ingest.MinScore || d.Score > ingest.MaxScore {
			continue
		}
		counts[int(d.Score)]++
	}
	out := make([]RatingCount, 0, ingest.MaxScore)
	for s := ingest.MaxScore; s >= ingest.MinScore; s-- {
		out = append(out, RatingCount{Stars: s, Count: counts[s]})
	}
	return out
}

// KeywordFrequencies normalizes every text, counts words of at least
// MinKeywordLength runes and returns the topN most frequent. Equal counts
// keep first-seen order. topN <= 0 returns every word. A nil normalizer uses
// the default options.
func KeywordFrequencies(texts []string, normalizer *ingest.Normalizer, topN int) []Keyword {
	if normalizer == nil {
		normalizer = ingest.NewNormalizer(ingest.DefaultOptions(), nil)
	}

	counts := make(map[string]int)
	var order []string
	for _, text := range texts {
		for _, w := range normalizer.Normalize(text).Tokens {
			if utf8.RuneCountInString(w) < MinKeywordLength {
				continue
			}
			if counts[w] == 0 {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	out := make([]Keyword, len(order))
	for i, w := range order {
		out[i] = Keyword{Word: w, Count: counts[w]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out
}
