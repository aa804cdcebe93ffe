package analytics

import (
	"math"
	"reflect"
	"testing"

	"github.com/cognicore/revscope/pkg/revscope/ingest"
	"github.com/cognicore/revscope/pkg/revscope/sentiment"
)

func docs() []ingest.Document {
	return []ingest.Document{
		{ID: "1", RawText: "Great design, love the new layout", Score: 5},
		{ID: "2", RawText: "App is slow and crashes after the update", Score: 1},
		{ID: "3", RawText: "Payment failed twice", Score: 2},
		{ID: "4", RawText: "fine", Score: 3},
		{ID: "5", RawText: "Support was helpful and fast", Score: 4},
	}
}

func TestSentimentDistribution(t *testing.T) {
	got := SentimentDistribution(docs())
	want := []LabelCount{
		{sentiment.Positive, 2},
		{sentiment.Neutral, 1},
		{sentiment.Negative, 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRatingDistribution(t *testing.T) {
	in := append(docs(), ingest.Document{ID: "6", RawText: "x", Score: 4.5})
	got := RatingDistribution(in)
	want := []RatingCount{{5, 1}, {4, 1}, {3, 1}, {2, 1}, {1, 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestKeywordFrequencies(t *testing.T) {
	texts := []string{
		"The app is great, great app",
		"A great update. x y",
		"Update the app",
	}
	got := KeywordFrequencies(texts, nil, 2)
	want := []Keyword{{"app", 3}, {"great", 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	all := KeywordFrequencies(texts, nil, 0)
	for _, k := range all {
		if len(k.Word) < MinKeywordLength {
			t.Errorf("short word %q counted", k.Word)
		}
	}
	if len(all) != 3 {
		t.Errorf("expected 3 distinct keywords, got %v", all)
	}
	if got := KeywordFrequencies(nil, nil, 10); len(got) != 0 {
		t.Errorf("empty input produced %v", got)
	}
}

func TestCategorizeAspects(t *testing.T) {
	got := CategorizeAspects("The UI is SLOW after the latest version")
	want := []string{"Performance", "UI/Interface", "Update"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := CategorizeAspects("meh"); got != nil {
		t.Errorf("expected no aspects, got %v", got)
	}
}

func TestAspects(t *testing.T) {
	got := Aspects(docs())
	if len(got) != len(AppAspects) {
		t.Fatalf("expected %d aspects, got %d", len(AppAspects), len(got))
	}
	byName := make(map[string]AspectSentiment)
	for _, a := range got {
		byName[a.Aspect] = a
	}

	perf := byName["Performance"] // "slow" (negative) and "fast" (positive)
	if perf.Positive != 1 || perf.Negative != 1 || perf.Total != 2 {
		t.Errorf("performance = %+v", perf)
	}
	tx := byName["Transaction"]
	if tx.Negative != 1 || tx.Total != 1 {
		t.Errorf("transaction = %+v", tx)
	}
	if byName["Security"].Total != 0 {
		t.Errorf("security = %+v", byName["Security"])
	}
}

func TestLengthStats(t *testing.T) {
	in := []ingest.Document{
		{ID: "a", RawText: "ab cd", Score: 1},
		{ID: "b", RawText: "abcdefg", Score: 5},
		{ID: "c", RawText: "é", Score: 3},
	}
	got := LengthStats(in)
	if got.MinLength != 1 || got.MaxLength != 7 {
		t.Errorf("min/max = %d/%d", got.MinLength, got.MaxLength)
	}
	if math.Abs(got.AverageLength-13.0/3) > 1e-9 || math.Abs(got.AverageWordCount-4.0/3) > 1e-9 {
		t.Errorf("averages = %+v", got)
	}
	if LengthStats(nil) != (Lengths{}) {
		t.Error("empty corpus should give zero stats")
	}
}

func TestScoreCorrelations(t *testing.T) {
	in := []ingest.Document{
		{ID: "a", RawText: "bad", Score: 1},
		{ID: "b", RawText: "quite good app", Score: 3},
		{ID: "c", RawText: "really great useful handy app", Score: 5},
	}
	got := ScoreCorrelations(in, nil)
	if got.WordCountScore < 0.99 {
		t.Errorf("word count correlation = %v, want ~1", got.WordCountScore)
	}
	if got.LengthScore <= 0 || got.UniqueWordsScore <= 0 {
		t.Errorf("correlations = %+v", got)
	}

	flat := []ingest.Document{
		{ID: "a", RawText: "same", Score: 1},
		{ID: "b", RawText: "same", Score: 5},
	}
	if got := ScoreCorrelations(flat, nil); got != (Correlations{}) {
		t.Errorf("zero variance should give 0, got %+v", got)
	}
	if got := ScoreCorrelations(nil, nil); got != (Correlations{}) {
		t.Errorf("empty corpus = %+v", got)
	}
}

func TestHistogram(t *testing.T) {
	got := Histogram([]float64{0, 5, 10, 10}, 2)
	want := []Bin{{"0-5", 1}, {"5-10", 3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	same := Histogram([]float64{4, 4}, 3)
	if same[0].Count != 2 {
		t.Errorf("constant values = %v", same)
	}
	if Histogram(nil, 3) != nil {
		t.Error("empty input should give nil")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(docs(), nil, 5)
	if s.TotalDocs != 5 || len(s.Keywords) == 0 || len(s.Keywords) > 5 {
		t.Errorf("summary = %+v", s)
	}
	if len(s.Histogram) != DefaultHistogramBins {
		t.Errorf("histogram bins = %d", len(s.Histogram))
	}
}
