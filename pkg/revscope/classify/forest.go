package classify

import (
	"math"
	"math/rand/v2"

	"github.com/cognicore/revscope/pkg/revscope/dataset"
	"github.com/cognicore/revscope/pkg/revscope/features"
	"github.com/cognicore/revscope/pkg/revscope/internalerr"
	"github.com/cognicore/revscope/pkg/revscope/sentiment"
)

// Forest shape.
const (
	ForestTrees    = 10
	ForestMaxDepth = 3
	minGroupSize   = 2
)

// Node is either a leaf carrying a label or a split on one feature:
// values <= Threshold go Left, the rest go Right.
type Node struct {
	Leaf      bool
	Label     sentiment.Label
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node
}

func leaf(labels []sentiment.Label) *Node {
	return &Node{Leaf: true, Label: majority(labels)}
}

// Predict walks the tree down to a leaf.
func (n *Node) Predict(x features.Vector) sentiment.Label {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Label
}

// Depth returns the number of split levels below n.
func (n *Node) Depth() int {
	if n.Leaf {
		return 0
	}
	l, r := n.Left.Depth(), n.Right.Depth()
	if l > r {
		return l + 1
	}
	return r + 1
}

// RandomForest is a bagged ensemble of shallow Gini trees.
type RandomForest struct {
	Trees    int
	MaxDepth int
	rng      *rand.Rand
}

// NewRandomForest returns a forest drawing bootstrap samples and feature
// subsets from rng. A nil rng uses a random source.
func NewRandomForest(rng *rand.Rand) RandomForest {
	if rng == nil {
		rng = dataset.RandomSource()
	}
	return RandomForest{Trees: ForestTrees, MaxDepth: ForestMaxDepth, rng: rng}
}

// Name implements Classifier.
func (RandomForest) Name() string { return RandomForestName }

// RandomForestModel is the trained ensemble.
type RandomForestModel struct {
	Trees []*Node
	Dim   int
}

// Train grows each tree on a bootstrap sample (drawn with replacement, same
// size as the training set).
func (f RandomForest) Train(set dataset.Set) (Model, error) {
	if err := validateSet(set); err != nil {
		return nil, err
	}
	rng := f.rng
	if rng == nil {
		rng = dataset.RandomSource()
	}

	n := set.Len()
	m := RandomForestModel{
		Trees: make([]*Node, 0, f.Trees),
		Dim:   len(set.Features[0]),
	}
	for t := 0; t < f.Trees; t++ {
		xs := make([]features.Vector, n)
		ys := make([]sentiment.Label, n)
		for i := range xs {
			k := rng.IntN(n)
			xs[i], ys[i] = set.Features[k], set.Labels[k]
		}
		b := treeBuilder{rng: rng, maxDepth: f.MaxDepth}
		m.Trees = append(m.Trees, b.build(xs, ys, 0))
	}
	return m, nil
}

// Predict takes a majority vote over the trees; ties go to the label voted
// first.
func (m RandomForestModel) Predict(x features.Vector) (sentiment.Label, error) {
	if len(m.Trees) == 0 {
		return "", internalerr.ErrUntrained
	}
	if err := checkDim(x, m.Dim); err != nil {
		return "", err
	}

	votes := make([]sentiment.Label, len(m.Trees))
	for i, t := range m.Trees {
		votes[i] = t.Predict(x)
	}
	return majority(votes), nil
}

type treeBuilder struct {
	rng      *rand.Rand
	maxDepth int
}

type split struct {
	feature   int
	threshold float64
	left      []int
	right     []int
}

func (b treeBuilder) build(xs []features.Vector, ys []sentiment.Label, depth int) *Node {
	if depth >= b.maxDepth || allSame(ys) {
		return leaf(ys)
	}

	s := b.bestSplit(xs, ys)
	if s == nil {
		return leaf(ys)
	}

	lx, ly := subset(xs, ys, s.left)
	rx, ry := subset(xs, ys, s.right)
	return &Node{
		Feature:   s.feature,
		Threshold: s.threshold,
		Left:      b.build(lx, ly, depth+1),
		Right:     b.build(rx, ry, depth+1),
	}
}

// bestSplit tries every observed value of ceil(sqrt(d)) randomly chosen
// features as a threshold and keeps the lowest weighted Gini impurity.
// Splits leaving fewer than two examples on a side are skipped.
func (b treeBuilder) bestSplit(xs []features.Vector, ys []sentiment.Label) *split {
	dim := len(xs[0])
	k := int(math.Ceil(math.Sqrt(float64(dim))))
	candidates := b.rng.Perm(dim)[:k]

	var best *split
	bestGini := math.Inf(1)
	total := float64(len(ys))

	for _, f := range candidates {
		for _, v := range distinctValues(xs, f) {
			var left, right []int
			for i, x := range xs {
				if x[f] <= v {
					left = append(left, i)
				} else {
					right = append(right, i)
				}
			}
			if len(left) < minGroupSize || len(right) < minGroupSize {
				continue
			}

			g := float64(len(left))/total*gini(pick(ys, left)) +
				float64(len(right))/total*gini(pick(ys, right))
			if g < bestGini {
				bestGini = g
				best = &split{feature: f, threshold: v, left: left, right: right}
			}
		}
	}
	return best
}

// gini returns 1 - sum(p_c^2) over the labels present.
func gini(labels []sentiment.Label) float64 {
	if len(labels) == 0 {
		return 0
	}
	counts := make(map[sentiment.Label]int)
	for _, l := range labels {
		counts[l]++
	}
	g := 1.0
	n := float64(len(labels))
	// fixed summation order keeps seeded runs reproducible
	for _, l := range classOrder(labels) {
		p := float64(counts[l]) / n
		g -= p * p
	}
	return g
}

func distinctValues(xs []features.Vector, f int) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, x := range xs {
		if !seen[x[f]] {
			seen[x[f]] = true
			out = append(out, x[f])
		}
	}
	return out
}

func allSame(labels []sentiment.Label) bool {
	if len(labels) <= 1 {
		return true
	}
	for _, l := range labels[1:] {
		if l != labels[0] {
			return false
		}
	}
	return true
}

func pick(ys []sentiment.Label, idx []int) []sentiment.Label {
	out := make([]sentiment.Label, len(idx))
	for i, k := range idx {
		out[i] = ys[k]
	}
	return out
}

func subset(xs []features.Vector, ys []sentiment.Label, idx []int) ([]features.Vector, []sentiment.Label) {
	ox := make([]features.Vector, len(idx))
	for i, k := range idx {
		ox[i] = xs[k]
	}
	return ox, pick(ys, idx)
}
