package features

import (
	"math"
	"strings"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestExtractEmpty(t *testing.T) {
	v := Extract("")
	if len(v) != Dimensions {
		t.Fatalf("len = %d, want %d", len(v), Dimensions)
	}
	for i, x := range v {
		if x != 0 {
			t.Errorf("component %d = %v, want 0", i, x)
		}
	}
}

func TestExtractComponents(t *testing.T) {
	text := "Great app, GREAT support! But one issue? Love it!"
	v := Extract(text)

	if !approx(v[Length], float64(len(text))/500) {
		t.Errorf("length = %v", v[Length])
	}
	if !approx(v[PositiveDensity], 3.0/5) {
		t.Errorf("positive = %v, want 0.6", v[PositiveDensity])
	}
	if !approx(v[NegativeDensity], 1.0/5) {
		t.Errorf("negative = %v, want 0.2", v[NegativeDensity])
	}
	if !approx(v[ExclamationDensity], 2.0/3) {
		t.Errorf("exclamation = %v, want 2/3", v[ExclamationDensity])
	}
	if !approx(v[QuestionDensity], 1.0/3) {
		t.Errorf("question = %v, want 1/3", v[QuestionDensity])
	}
}

func TestExtractWholeWordsOnly(t *testing.T) {
	v := Extract("goodness badge issues lovely")
	if v[PositiveDensity] != 0 || v[NegativeDensity] != 0 {
		t.Errorf("partial words must not match: %v", v)
	}
}

func TestExtractClamped(t *testing.T) {
	text := strings.Repeat("bad worst awful! ??? ", 50)
	v := Extract(text)
	for i, x := range v {
		if x < 0 || x > 1 {
			t.Errorf("component %d = %v out of [0,1]", i, x)
		}
	}
	if v[Length] != 1 || v[NegativeDensity] != 1 || v[ExclamationDensity] != 1 || v[QuestionDensity] != 1 {
		t.Errorf("expected saturated components, got %v", v)
	}
	if v[PositiveDensity] != 0 {
		t.Errorf("positive = %v, want 0", v[PositiveDensity])
	}
}
