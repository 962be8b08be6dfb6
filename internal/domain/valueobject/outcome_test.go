package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		want        valueobject.Outcome
		name        string
		probability float64
		threshold   float64
	}{
		{name: "above threshold", probability: 0.62, threshold: 0.5, want: valueobject.OutcomeLikelyComplete},
		{name: "equal to threshold is positive", probability: 0.5, threshold: 0.5, want: valueobject.OutcomeLikelyComplete},
		{name: "just below threshold", probability: 0.4999, threshold: 0.5, want: valueobject.OutcomeUnlikelyComplete},
		{name: "zero threshold always positive", probability: 0, threshold: 0, want: valueobject.OutcomeLikelyComplete},
		{name: "one threshold needs certainty", probability: 0.99, threshold: 1, want: valueobject.OutcomeUnlikelyComplete},
		{name: "scaled profile cutoff", probability: 0.4, threshold: 0.4, want: valueobject.OutcomeLikelyComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := valueobject.NewProbability(tt.probability)
			require.NoError(t, err)
			th, err := valueobject.NewThreshold(tt.threshold)
			require.NoError(t, err)

			got := valueobject.Decide(p, th)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestOutcome_Message(t *testing.T) {
	assert.Equal(t, "This customer is likely to complete the booking.", valueobject.OutcomeLikelyComplete.Message())
	assert.Equal(t, "This customer may not complete the booking.", valueobject.OutcomeUnlikelyComplete.Message())
}

func TestOutcomeFromString(t *testing.T) {
	o, err := valueobject.OutcomeFromString("LIKELY_COMPLETE")
	require.NoError(t, err)
	assert.True(t, o.IsPositive())

	o, err = valueobject.OutcomeFromString("UNLIKELY_COMPLETE")
	require.NoError(t, err)
	assert.False(t, o.IsPositive())

	_, err = valueobject.OutcomeFromString("MAYBE")
	assert.Error(t, err)
}
