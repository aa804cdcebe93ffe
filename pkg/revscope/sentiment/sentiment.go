// Package sentiment defines the closed three-way label set and the mapping
// from a numeric review score onto it.
package sentiment

import (
	"fmt"

	"github.com/cognicore/revscope/pkg/revscope/internalerr"
)

// Label is a sentiment class.
type Label string

const (
	Positive Label = "positive"
	Neutral  Label = "neutral"
	Negative Label = "negative"
)

// FromScore maps a review score onto a label:
// >= 4 positive, >= 3 neutral, anything else negative.
func FromScore(score float64) Label {
	if score >= 4 {
		return Positive
	}
	if score >= 3 {
		return Neutral
	}
	return Negative
}

// Labels returns the label set in fixed order.
func Labels() []Label {
	return []Label{Positive, Neutral, Negative}
}

// Valid reports whether l is one of the three known labels.
func (l Label) Valid() bool {
	switch l {
	case Positive, Neutral, Negative:
		return true
	}
	return false
}

// Parse converts a string into a Label.
func Parse(s string) (Label, error) {
	l := Label(s)
	if !l.Valid() {
		return "", fmt.Errorf("sentiment label %q: %w", s, internalerr.ErrInvalidInput)
	}
	return l, nil
}
