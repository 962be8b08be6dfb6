package valueobject

import (
	"fmt"
	"math"
)

// Threshold is the probability cutoff at or above which a booking is
// classified as likely to complete.
type Threshold struct {
	value float64
}

var (
	// DefaultThreshold applies when no threshold file is usable.
	DefaultThreshold = Threshold{value: 0.5}

	// ScaledProfileThreshold is the fixed cutoff of the scaled profile.
	ScaledProfileThreshold = Threshold{value: 0.4}
)

// NewThreshold validates that v lies in [0,1].
func NewThreshold(v float64) (Threshold, error) {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return Threshold{}, fmt.Errorf("threshold must be between 0 and 1, got %v", v)
	}
	return Threshold{value: v}, nil
}

// MustThreshold is NewThreshold that panics on invalid input.
func MustThreshold(v float64) Threshold {
	t, err := NewThreshold(v)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Threshold) Value() float64 { return t.value }

func (t Threshold) String() string { return fmt.Sprintf("%.2f", t.value) }
