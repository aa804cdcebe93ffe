// Package classify trains and applies the sentiment classifiers compared by
// the sweep. Training returns an immutable Model value; nothing is learned
// in place on the Classifier.
package classify

import (
	"fmt"
	"math/rand/v2"

	"github.com/cognicore/revscope/pkg/revscope/dataset"
	"github.com/cognicore/revscope/pkg/revscope/features"
	"github.com/cognicore/revscope/pkg/revscope/internalerr"
	"github.com/cognicore/revscope/pkg/revscope/sentiment"
)

// Model names as shown to users.
const (
	NaiveBayesName   = "Naive Bayes"
	SVMName          = "SVM"
	RandomForestName = "Random Forest"
)

// fallbackLabel is returned when a model has no better answer.
const fallbackLabel = sentiment.Neutral

// Classifier learns a Model from a training set.
type Classifier interface {
	Name() string
	Train(set dataset.Set) (Model, error)
}

// Model predicts a label for one feature vector.
type Model interface {
	Predict(x features.Vector) (sentiment.Label, error)
}

// Names returns the supported model names in display order.
func Names() []string {
	return []string{NaiveBayesName, SVMName, RandomForestName}
}

// Known reports whether name is a supported model.
func Known(name string) bool {
	for _, n := range Names() {
		if n == name {
			return true
		}
	}
	return false
}

// New returns a fresh classifier by name. rng feeds the random forest; a nil
// rng uses a random source.
func New(name string, rng *rand.Rand) (Classifier, error) {
	switch name {
	case NaiveBayesName:
		return NaiveBayes{}, nil
	case SVMName:
		return NewSVM(), nil
	case RandomForestName:
		return NewRandomForest(rng), nil
	}
	return nil, fmt.Errorf("model %q: %w", name, internalerr.ErrUnknownModel)
}

// PredictAll applies m to every vector in order.
func PredictAll(m Model, xs []features.Vector) ([]sentiment.Label, error) {
	out := make([]sentiment.Label, len(xs))
	for i, x := range xs {
		l, err := m.Predict(x)
		if err != nil {
			return nil, fmt.Errorf("predict example %d: %w", i, err)
		}
		out[i] = l
	}
	return out, nil
}

func validateSet(set dataset.Set) error {
	if !set.Consistent() {
		return fmt.Errorf("training set with %d vectors and %d labels: %w",
			len(set.Features), len(set.Labels), internalerr.ErrInvalidInput)
	}
	return nil
}

func checkDim(x features.Vector, dim int) error {
	if len(x) != dim {
		return fmt.Errorf("feature vector has %d components, model expects %d: %w",
			len(x), dim, internalerr.ErrInvalidInput)
	}
	return nil
}

// classOrder returns the distinct labels in first-seen order.
func classOrder(labels []sentiment.Label) []sentiment.Label {
	seen := make(map[sentiment.Label]bool)
	var out []sentiment.Label
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	return out
}

// majority returns the most frequent label; ties go to the label seen first.
// An empty input yields the fallback label.
func majority(labels []sentiment.Label) sentiment.Label {
	counts := make(map[sentiment.Label]int)
	for _, l := range labels {
		counts[l]++
	}
	best, bestCount := fallbackLabel, 0
	for _, l := range classOrder(labels) {
		if counts[l] > bestCount {
			best, bestCount = l, counts[l]
		}
	}
	return best
}
