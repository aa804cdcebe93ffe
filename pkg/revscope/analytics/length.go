package analytics

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/revscope/pkg/revscope/ingest"
)

// DefaultHistogramBins is the bin count used for length histograms.
const DefaultHistogramBins = 10

// Lengths summarizes review length in characters and words.
type Lengths struct {
	AverageLength    float64 `json:"average_length"`
	MinLength        int     `json:"min_length"`
	MaxLength        int     `json:"max_length"`
	AverageWordCount float64 `json:"average_word_count"`
}

// Correlations holds the Pearson correlation of the score with three length
// measures.
type Correlations struct {
	LengthScore      float64 `json:"length_score"`
	WordCountScore   float64 `json:"word_count_score"`
	UniqueWordsScore float64 `json:"unique_words_score"`
}

// Bin is one histogram bucket.
type Bin struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

func charLength(text string) int { return utf8.RuneCountInString(text) }

func wordCount(text string) int { return len(strings.Fields(text)) }

// LengthStats measures raw review text. An empty corpus yields zero values.
func LengthStats(docs []ingest.Document) Lengths {
	if len(docs) == 0 {
		return Lengths{}
	}
	lengths := make([]float64, len(docs))
	words := make([]float64, len(docs))
	for i, d := range docs {
		lengths[i] = float64(charLength(d.RawText))
		words[i] = float64(wordCount(d.RawText))
	}
	return Lengths{
		AverageLength:    stat.Mean(lengths, nil),
		MinLength:        int(floats.Min(lengths)),
		MaxLength:        int(floats.Max(lengths)),
		AverageWordCount: stat.Mean(words, nil),
	}
}

// ScoreCorrelations correlates the score with character length, raw word
// count and the unique token count after normalization. A nil normalizer uses
// the default options.
func ScoreCorrelations(docs []ingest.Document, normalizer *ingest.Normalizer) Correlations {
	if normalizer == nil {
		normalizer = ingest.NewNormalizer(ingest.DefaultOptions(), nil)
	}
	n := len(docs)
	scores := make([]float64, n)
	lengths := make([]float64, n)
	words := make([]float64, n)
	unique := make([]float64, n)
	for i, d := range docs {
		scores[i] = d.Score
		lengths[i] = float64(charLength(d.RawText))
		words[i] = float64(wordCount(d.RawText))
		unique[i] = float64(normalizer.Normalize(d.RawText).UniqueTokenCount)
	}
	return Correlations{
		LengthScore:      pearson(lengths, scores),
		WordCountScore:   pearson(words, scores),
		UniqueWordsScore: pearson(unique, scores),
	}
}

// pearson returns 0 when either series is constant or too short.
func pearson(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return 0
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Histogram splits values into bins of equal width between their minimum and
// maximum. The maximum lands in the last bin. When every value is equal they
// all land in the first bin.
func Histogram(values []float64, bins int) []Bin {
	if len(values) == 0 || bins <= 0 {
		return nil
	}
	lo, hi := floats.Min(values), floats.Max(values)
	width := (hi - lo) / float64(bins)

	out := make([]Bin, bins)
	for i := range out {
		start := math.Round(lo + float64(i)*width)
		end := math.Round(lo + float64(i+1)*width)
		out[i].Range = fmt.Sprintf("%g-%g", start, end)
	}
	for _, v := range values {
		idx := 0
		if width > 0 {
			idx = int(math.Floor((v - lo) / width))
		}
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// LengthHistogram bins raw review lengths in characters.
func LengthHistogram(docs []ingest.Document, bins int) []Bin {
	values := make([]float64, len(docs))
	for i, d := range docs {
		values[i] = float64(charLength(d.RawText))
	}
	return Histogram(values, bins)
}
