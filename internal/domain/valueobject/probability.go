package valueobject

import (
	"fmt"
	"math"
)

// Probability is a class-1 probability in [0,1].
type Probability struct {
	value float64
}

// NewProbability validates that v lies in [0,1].
func NewProbability(v float64) (Probability, error) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return Probability{}, fmt.Errorf("probability must be between 0 and 1, got %v", v)
	}
	return Probability{value: v}, nil
}

func (p Probability) Value() float64 { return p.value }

// String renders the probability with two decimals, e.g. "0.62".
func (p Probability) String() string { return fmt.Sprintf("%.2f", p.value) }

// MeetsThreshold reports p >= t. A probability equal to the threshold meets it.
func (p Probability) MeetsThreshold(t Threshold) bool {
	return p.value >= t.value
}
