package classify

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/revscope/pkg/revscope/dataset"
	"github.com/cognicore/revscope/pkg/revscope/features"
	"github.com/cognicore/revscope/pkg/revscope/internalerr"
	"github.com/cognicore/revscope/pkg/revscope/sentiment"
)

// NaiveBayesVariance is the variance used for every (class, feature)
// likelihood. It is a fixed constant, not estimated from the data.
const NaiveBayesVariance = 0.1

// NaiveBayes is a Gaussian naive Bayes classifier with fixed variance.
type NaiveBayes struct{}

// Name implements Classifier.
func (NaiveBayes) Name() string { return NaiveBayesName }

// NaiveBayesModel holds class priors and per-feature means.
type NaiveBayesModel struct {
	Classes []sentiment.Label // first-seen order, used for tie breaks
	Priors  map[sentiment.Label]float64
	Means   map[sentiment.Label][]float64
	Dim     int
}

// Train computes priors count(class)/N and the mean of every feature within
// each class.
func (NaiveBayes) Train(set dataset.Set) (Model, error) {
	if err := validateSet(set); err != nil {
		return nil, err
	}

	dim := len(set.Features[0])
	classes := classOrder(set.Labels)
	m := NaiveBayesModel{
		Classes: classes,
		Priors:  make(map[sentiment.Label]float64, len(classes)),
		Means:   make(map[sentiment.Label][]float64, len(classes)),
		Dim:     dim,
	}

	columns := make(map[sentiment.Label][][]float64, len(classes))
	for _, c := range classes {
		columns[c] = make([][]float64, dim)
	}
	counts := make(map[sentiment.Label]int, len(classes))
	for i, x := range set.Features {
		l := set.Labels[i]
		counts[l]++
		for j, v := range x {
			columns[l][j] = append(columns[l][j], v)
		}
	}

	n := float64(len(set.Labels))
	for _, c := range classes {
		m.Priors[c] = float64(counts[c]) / n
		means := make([]float64, dim)
		for j := range means {
			means[j] = stat.Mean(columns[c][j], nil)
		}
		m.Means[c] = means
	}
	return m, nil
}

// Predict scores each class with ln(prior) plus the Gaussian log-density of
// every feature and returns the highest. Ties keep the earlier class.
func (m NaiveBayesModel) Predict(x features.Vector) (sentiment.Label, error) {
	if len(m.Classes) == 0 {
		return "", internalerr.ErrUntrained
	}
	if err := checkDim(x, m.Dim); err != nil {
		return "", err
	}

	norm := -0.5 * math.Log(2*math.Pi*NaiveBayesVariance)
	best, bestScore := sentiment.Label(""), math.Inf(-1)
	for _, c := range m.Classes {
		score := math.Log(m.Priors[c])
		means := m.Means[c]
		for j, v := range x {
			d := v - means[j]
			score += norm - (d*d)/(2*NaiveBayesVariance)
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	if best == "" {
		return fallbackLabel, nil
	}
	return best, nil
}
