// Package eval scores predictions against actual labels.
package eval

import (
	"github.com/cognicore/revscope/pkg/revscope/mathutil"
	"github.com/cognicore/revscope/pkg/revscope/sentiment"
)

// PositiveClass is the label counted as positive. Every other label is
// treated as negative, so neutral and negative fold together.
const PositiveClass = sentiment.Positive

// ConfusionMatrix holds binary counts and the metrics derived from them.
// A metric whose denominator is zero is reported as 0.
type ConfusionMatrix struct {
	TruePositive  int     `json:"true_positive"`
	FalsePositive int     `json:"false_positive"`
	TrueNegative  int     `json:"true_negative"`
	FalseNegative int     `json:"false_negative"`
	Accuracy      float64 `json:"accuracy"`
	Precision     float64 `json:"precision"`
	Recall        float64 `json:"recall"`
	F1Score       float64 `json:"f1_score"`
}

// Total returns the number of scored pairs.
func (m ConfusionMatrix) Total() int {
	return m.TruePositive + m.FalsePositive + m.TrueNegative + m.FalseNegative
}

// Confusion compares actual and predicted pairwise. Slices of different
// lengths yield the zero matrix.
func Confusion(actual, predicted []sentiment.Label) ConfusionMatrix {
	var m ConfusionMatrix
	if len(actual) != len(predicted) {
		return m
	}

	for i, a := range actual {
		isPos := a == PositiveClass
		predPos := predicted[i] == PositiveClass
		switch {
		case isPos && predPos:
			m.TruePositive++
		case !isPos && predPos:
			m.FalsePositive++
		case !isPos && !predPos:
			m.TrueNegative++
		default:
			m.FalseNegative++
		}
	}

	tp, fp := float64(m.TruePositive), float64(m.FalsePositive)
	tn, fn := float64(m.TrueNegative), float64(m.FalseNegative)
	m.Accuracy = mathutil.SafeDiv(tp+tn, float64(m.Total()))
	m.Precision = mathutil.SafeDiv(tp, tp+fp)
	m.Recall = mathutil.SafeDiv(tp, tp+fn)
	m.F1Score = mathutil.SafeDiv(2*m.Precision*m.Recall, m.Precision+m.Recall)
	return m
}
