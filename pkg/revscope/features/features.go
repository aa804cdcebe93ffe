// Package features derives the fixed-length numeric vector used by the
// classifiers.
package features

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/revscope/pkg/revscope/mathutil"
)

// Dimensions is the length of every Vector.
const Dimensions = 5

// Normalization denominators.
const (
	lengthScale  = 500.0
	keywordScale = 5.0
	markScale    = 3.0
)

// Component indexes.
const (
	Length = iota
	PositiveDensity
	NegativeDensity
	ExclamationDensity
	QuestionDensity
)

// Vector is an ordered list of features, each in [0,1].
type Vector []float64

// PositiveLexicon and NegativeLexicon are matched as whole words,
// case-insensitively.
var (
	PositiveLexicon = []string{"good", "great", "excellent", "awesome", "love", "best", "amazing", "perfect", "helpful", "recommend"}
	NegativeLexicon = []string{"bad", "poor", "terrible", "awful", "hate", "worst", "useless", "disappointing", "broken", "issue"}
)

var (
	positivePattern = lexiconPattern(PositiveLexicon)
	negativePattern = lexiconPattern(NegativeLexicon)
)

func lexiconPattern(words []string) *regexp.Regexp {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Extract maps text onto a Vector:
//
//	0 length ratio        min(1, chars/500)
//	1 positive density    min(1, positive lexicon hits/5)
//	2 negative density    min(1, negative lexicon hits/5)
//	3 exclamation density min(1, count("!")/3)
//	4 question density    min(1, count("?")/3)
func Extract(text string) Vector {
	v := make(Vector, Dimensions)
	v[Length] = mathutil.Clamp01(float64(utf8.RuneCountInString(text)) / lengthScale)
	v[PositiveDensity] = mathutil.Clamp01(float64(len(positivePattern.FindAllStringIndex(text, -1))) / keywordScale)
	v[NegativeDensity] = mathutil.Clamp01(float64(len(negativePattern.FindAllStringIndex(text, -1))) / keywordScale)
	v[ExclamationDensity] = mathutil.Clamp01(float64(strings.Count(text, "!")) / markScale)
	v[QuestionDensity] = mathutil.Clamp01(float64(strings.Count(text, "?")) / markScale)
	return v
}
