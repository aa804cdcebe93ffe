package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/revscope/pkg/revscope/internalerr"
)

// Ratio is a train:test split expressed in whole percentages.
type Ratio struct {
	Train int
	Test  int
}

// DefaultRatios returns the fixed sweep set 65:35, 70:30, 75:25, 80:20.
func DefaultRatios() []Ratio {
	return []Ratio{
		{Train: 65, Test: 35},
		{Train: 70, Test: 30},
		{Train: 75, Test: 25},
		{Train: 80, Test: 20},
	}
}

// ParseRatio parses the "train:test" form, e.g. "70:30".
func ParseRatio(s string) (Ratio, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return Ratio{}, fmt.Errorf("split ratio %q: want train:test: %w", s, internalerr.ErrInvalidInput)
	}
	train, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Ratio{}, fmt.Errorf("split ratio %q: %w", s, internalerr.ErrInvalidInput)
	}
	test, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Ratio{}, fmt.Errorf("split ratio %q: %w", s, internalerr.ErrInvalidInput)
	}
	r := Ratio{Train: train, Test: test}
	if err := r.Validate(); err != nil {
		return Ratio{}, err
	}
	return r, nil
}

// Validate checks that both parts are positive and add up to 100.
func (r Ratio) Validate() error {
	if r.Train <= 0 || r.Test <= 0 || r.Train+r.Test != 100 {
		return fmt.Errorf("split ratio %d:%d must be two positive parts summing to 100: %w",
			r.Train, r.Test, internalerr.ErrInvalidInput)
	}
	return nil
}

// String returns the "train:test" form.
func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Train, r.Test)
}

// TestFraction returns the test share in [0,1].
func (r Ratio) TestFraction() float64 {
	return float64(r.Test) / 100
}

// TestCount returns floor(n * test/100), computed in integers so the result
// does not depend on how the fraction rounds in floating point.
func (r Ratio) TestCount(n int) int {
	if n <= 0 || r.Test <= 0 {
		return 0
	}
	return n * r.Test / 100
}
