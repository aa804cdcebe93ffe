package classify

import (
	"gonum.org/v1/gonum/floats"

	"github.com/cognicore/revscope/pkg/revscope/dataset"
	"github.com/cognicore/revscope/pkg/revscope/features"
	"github.com/cognicore/revscope/pkg/revscope/internalerr"
	"github.com/cognicore/revscope/pkg/revscope/sentiment"
)

// Training constants for the linear model.
const (
	SVMEpochs       = 100
	SVMLearningRate = 0.01
	SVMRegularizer  = 0.01
)

// ClassTable maps labels onto the codes -1, 0, 1 in first-seen order.
//
// With three classes this is not a sound multiclass encoding: the middle
// class gets code 0, contributes no hinge signal and is only predicted when
// the decision value is exactly zero.
type ClassTable struct {
	Codes  map[sentiment.Label]int
	Labels map[int]sentiment.Label
}

// NewClassTable builds the table from labels in first-seen order.
func NewClassTable(labels []sentiment.Label) ClassTable {
	t := ClassTable{
		Codes:  make(map[sentiment.Label]int),
		Labels: make(map[int]sentiment.Label),
	}
	for i, l := range classOrder(labels) {
		t.Codes[l] = i - 1
		t.Labels[i-1] = l
	}
	return t
}

// SVM is a linear classifier trained with hinge-loss subgradient steps.
type SVM struct {
	Epochs       int
	LearningRate float64
	Regularizer  float64
}

// NewSVM returns an SVM with the standard training constants.
func NewSVM() SVM {
	return SVM{Epochs: SVMEpochs, LearningRate: SVMLearningRate, Regularizer: SVMRegularizer}
}

// Name implements Classifier.
func (SVM) Name() string { return SVMName }

// SVMModel is a trained linear decision function w.x + b.
type SVMModel struct {
	Weights []float64
	Bias    float64
	Table   ClassTable
}

// Train starts from zero weights and bias and, for every epoch and example
// with margin y(w.x+b) < 1, applies w += lr(y x - reg w) and b += lr y.
func (s SVM) Train(set dataset.Set) (Model, error) {
	if err := validateSet(set); err != nil {
		return nil, err
	}

	table := NewClassTable(set.Labels)
	w := make([]float64, len(set.Features[0]))
	b := 0.0

	for epoch := 0; epoch < s.Epochs; epoch++ {
		for i, x := range set.Features {
			y := float64(table.Codes[set.Labels[i]])
			if y*(floats.Dot(w, x)+b) < 1 {
				for j := range w {
					w[j] += s.LearningRate * (y*x[j] - s.Regularizer*w[j])
				}
				b += s.LearningRate * y
			}
		}
	}

	return SVMModel{Weights: w, Bias: b, Table: table}, nil
}

// Predict maps sign(w.x+b) back through the class table. A sign with no
// class falls back to neutral.
func (m SVMModel) Predict(x features.Vector) (sentiment.Label, error) {
	if len(m.Weights) == 0 {
		return "", internalerr.ErrUntrained
	}
	if err := checkDim(x, len(m.Weights)); err != nil {
		return "", err
	}

	d := floats.Dot(m.Weights, x) + m.Bias
	sign := 0
	switch {
	case d > 0:
		sign = 1
	case d < 0:
		sign = -1
	}
	if l, ok := m.Table.Labels[sign]; ok {
		return l, nil
	}
	return fallbackLabel, nil
}
