package classify

import (
	"math"
	"testing"

	"github.com/cognicore/revscope/pkg/revscope/dataset"
	"github.com/cognicore/revscope/pkg/revscope/features"
	"github.com/cognicore/revscope/pkg/revscope/sentiment"
)

func TestNaiveBayesTrain(t *testing.T) {
	set := dataset.Set{
		Features: []features.Vector{
			{1, 1, 0, 0, 0},
			{0, 0, 1, 1, 0},
			{0.9, 0.8, 0, 0, 0},
			{0.1, 0, 0.9, 1, 0},
			{0.5, 0.5, 0.5, 0.5, 0.5},
		},
		Labels: []sentiment.Label{pos, neg, pos, neg, neu},
	}

	m, err := NaiveBayes{}.Train(set)
	if err != nil {
		t.Fatalf("Train: %v", err)
	}
	nb := m.(NaiveBayesModel)

	wantOrder := []sentiment.Label{pos, neg, neu}
	for i, c := range wantOrder {
		if nb.Classes[i] != c {
			t.Errorf("class %d = %s, want %s", i, nb.Classes[i], c)
		}
	}
	if math.Abs(nb.Priors[pos]-0.4) > 1e-12 || math.Abs(nb.Priors[neu]-0.2) > 1e-12 {
		t.Errorf("priors = %v", nb.Priors)
	}
	if math.Abs(nb.Means[pos][0]-0.95) > 1e-12 || math.Abs(nb.Means[neg][3]-1) > 1e-12 {
		t.Errorf("means = %v", nb.Means)
	}

	tests := []struct {
		x    features.Vector
		want sentiment.Label
	}{
		{features.Vector{1, 1, 0, 0, 0}, pos},
		{features.Vector{0, 0, 1, 1, 0}, neg},
		{features.Vector{0.5, 0.5, 0.5, 0.5, 0.5}, neu},
	}
	for _, tt := range tests {
		got, err := nb.Predict(tt.x)
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		if got != tt.want {
			t.Errorf("Predict(%v) = %s, want %s", tt.x, got, tt.want)
		}
	}
}

func TestNaiveBayesTieGoesToFirstClass(t *testing.T) {
	same := features.Vector{0.5, 0.5, 0.5, 0.5, 0.5}
	set := dataset.Set{
		Features: []features.Vector{same, same},
		Labels:   []sentiment.Label{neu, pos},
	}
	m, err := NaiveBayes{}.Train(set)
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.Predict(same)
	if err != nil {
		t.Fatal(err)
	}
	if got != neu {
		t.Errorf("tie = %s, want neutral (first seen)", got)
	}
}

func TestNaiveBayesUsesFixedVariance(t *testing.T) {
	set := dataset.Set{
		Features: []features.Vector{{0.3}},
		Labels:   []sentiment.Label{pos},
	}
	m, err := NaiveBayes{}.Train(set)
	if err != nil {
		t.Fatal(err)
	}
	nb := m.(NaiveBayesModel)
	if nb.Means[pos][0] != 0.3 {
		t.Errorf("mean = %v", nb.Means[pos][0])
	}
	if NaiveBayesVariance != 0.1 {
		t.Errorf("variance = %v, want 0.1", NaiveBayesVariance)
	}
}
