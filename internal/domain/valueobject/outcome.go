package valueobject

import "fmt"

// Outcome is the binary recommendation derived from a probability.
type Outcome struct {
	value string
}

var (
	OutcomeLikelyComplete   = Outcome{value: "LIKELY_COMPLETE"}
	OutcomeUnlikelyComplete = Outcome{value: "UNLIKELY_COMPLETE"}
)

// OutcomeFromString reconstructs an Outcome from its string representation.
func OutcomeFromString(s string) (Outcome, error) {
	switch s {
	case "LIKELY_COMPLETE":
		return OutcomeLikelyComplete, nil
	case "UNLIKELY_COMPLETE":
		return OutcomeUnlikelyComplete, nil
	default:
		return Outcome{}, fmt.Errorf("invalid outcome: %s", s)
	}
}

// Decide classifies p against t: positive iff p >= t.
func Decide(p Probability, t Threshold) Outcome {
	if p.MeetsThreshold(t) {
		return OutcomeLikelyComplete
	}
	return OutcomeUnlikelyComplete
}

func (o Outcome) String() string           { return o.value }
func (o Outcome) IsZero() bool             { return o.value == "" }
func (o Outcome) Equal(other Outcome) bool { return o.value == other.value }

// IsPositive reports whether the booking is predicted to complete.
func (o Outcome) IsPositive() bool { return o.value == "LIKELY_COMPLETE" }

// Message is the sentence shown to the user for this outcome.
func (o Outcome) Message() string {
	if o.IsPositive() {
		return "This customer is likely to complete the booking."
	}
	return "This customer may not complete the booking."
}
