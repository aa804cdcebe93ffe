package analytics

import "github.com/cognicore/revscope/pkg/revscope/ingest"

// Stats bundles every corpus statistic the report shows.
type Stats struct {
	TotalDocs    int               `json:"total_docs"`
	Sentiment    []LabelCount      `json:"sentiment"`
	Ratings      []RatingCount     `json:"ratings"`
	Keywords     []Keyword         `json:"keywords"`
	Aspects      []AspectSentiment `json:"aspects"`
	Lengths      Lengths           `json:"lengths"`
	Histogram    []Bin             `json:"length_histogram,omitempty"`
	Correlations Correlations      `json:"correlations"`
}

// Summarize computes Stats over docs. Keywords come from raw text, capped at
// topKeywords.
func Summarize(docs []ingest.Document, normalizer *ingest.Normalizer, topKeywords int) Stats {
	if normalizer == nil {
		normalizer = ingest.NewNormalizer(ingest.DefaultOptions(), nil)
	}
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.RawText
	}
	return Stats{
		TotalDocs:    len(docs),
		Sentiment:    SentimentDistribution(docs),
		Ratings:      RatingDistribution(docs),
		Keywords:     KeywordFrequencies(texts, normalizer, topKeywords),
		Aspects:      Aspects(docs),
		Lengths:      LengthStats(docs),
		Histogram:    LengthHistogram(docs, DefaultHistogramBins),
		Correlations: ScoreCorrelations(docs, normalizer),
	}
}
