package sentiment

import (
	"errors"
	"testing"

	"github.com/cognicore/revscope/pkg/revscope/internalerr"
)

func TestFromScore(t *testing.T) {
	tests := []struct {
		score float64
		want  Label
	}{
		{5, Positive},
		{4, Positive},
		{3.5, Neutral},
		{3, Neutral},
		{2.99, Negative},
		{1, Negative},
		{0, Negative},
	}
	for _, tt := range tests {
		if got := FromScore(tt.score); got != tt.want {
			t.Errorf("FromScore(%v) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestParse(t *testing.T) {
	for _, l := range Labels() {
		got, err := Parse(string(l))
		if err != nil {
			t.Fatalf("Parse(%q): %v", l, err)
		}
		if got != l {
			t.Errorf("Parse(%q) = %q", l, got)
		}
	}

	_, err := Parse("mixed")
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
