package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
)

// StandardScaler standardizes columns as (x - mean) / scale.
type StandardScaler struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Scale   []float64 `json:"scale"`
}

// LoadScaler reads and validates a scaler artifact from path.
func LoadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read scaler %s: %v", model.ErrArtifactUnavailable, path, err)
	}
	var s StandardScaler
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrArtifactCorrupt, path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", model.ErrArtifactCorrupt, path, err)
	}
	return &s, nil
}

func (s *StandardScaler) validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("scaler declares no columns")
	}
	if len(s.Mean) != len(s.Columns) || len(s.Scale) != len(s.Columns) {
		return fmt.Errorf("scaler has %d columns, %d means and %d scales",
			len(s.Columns), len(s.Mean), len(s.Scale))
	}
	for i, sc := range s.Scale {
		if !(sc > 0) || math.IsInf(sc, 0) {
			return fmt.Errorf("scale for %q must be positive and finite, got %v", s.Columns[i], sc)
		}
	}
	return nil
}

// Transform returns a copy of record with the scaler's columns standardized.
// Errors wrap model.ErrScaling.
func (s *StandardScaler) Transform(record model.Record) (model.Record, error) {
	out := record
	for i, c := range s.Columns {
		v, ok := record.Get(c)
		if !ok {
			return model.Record{}, fmt.Errorf("%w: record has no column %q", model.ErrScaling, c)
		}
		if v.IsText() {
			return model.Record{}, fmt.Errorf("%w: column %q holds unencoded text %q", model.ErrScaling, c, v.Text())
		}
		z := (v.Number() - s.Mean[i]) / s.Scale[i]
		if math.IsNaN(z) || math.IsInf(z, 0) {
			return model.Record{}, fmt.Errorf("%w: column %q scaled to %v", model.ErrScaling, c, z)
		}
		var err error
		if out, err = out.With(c, model.FloatValue(z)); err != nil {
			return model.Record{}, fmt.Errorf("%w: %v", model.ErrScaling, err)
		}
	}
	return out, nil
}
