package ingest

import "testing"

func TestStem(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"flies", "fly"},
		{"boxes", "box"},
		{"cats", "cat"},
		{"ab", "ab"},
		{"a", "a"},
		{"ties", "ti"},       // too short for the ies rule, falls to es
		{"classes", "classe"}, // sses guard skips es, s rule still applies
		{"buses", "buse"},
		{"glass", "glass"},
		{"stopped", "stop"},
		{"jumped", "jump"},
		{"bed", "bed"},
		{"running", "run"},
		{"loading", "load"},
		{"relational", "relate"},
		{"conditional", "condition"},
		{"normalize", "normal"},
		{"agreement", "agre"},
		{"happiness", "happi"},
		{"payment", "pay"},
		{"useful", "use"},
		{"quickly", "quickly"},
	}
	for _, tt := range tests {
		if got := Stem(tt.word); got != tt.want {
			t.Errorf("Stem(%q) = %q, want %q", tt.word, got, tt.want)
		}
	}
}

func TestStemFirstRuleWins(t *testing.T) {
	// "ed" strips first; the derivational "ful" rule is never consulted.
	if got := Stem("fulfilled"); got != "fulfil" {
		t.Errorf("Stem(fulfilled) = %q, want fulfil", got)
	}
}
