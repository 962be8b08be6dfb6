package service

import (
	"fmt"
	"hash/maphash"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
)

// LegacyHashModulus bounds hashed codes for open-vocabulary columns.
const LegacyHashModulus = 1000

// LegacyHashVersion is reported as the encoding version of LegacyHashEncoder.
const LegacyHashVersion = "legacy-hash"

var legacyLookup = map[string]map[string]float64{
	model.ColumnSalesChannel: {"Internet": 0, "Mobile": 1, "Agent": 2},
	model.ColumnTripType:     {"RoundTrip": 0, "OneWay": 1},
	model.ColumnFlightDay: {
		"Mon": 1, "Tue": 2, "Wed": 3, "Thu": 4, "Fri": 5, "Sat": 6, "Sun": 7,
	},
}

// LegacyHashEncoder reproduces the deprecated ad-hoc encoding: bounded
// columns through a fixed lookup, route and booking origin through a seeded
// string hash modulo LegacyHashModulus.
//
// Deprecated: codes for route and booking origin depend on the hash seed,
// so two processes can encode the same query differently. Use TableEncoder.
type LegacyHashEncoder struct {
	seed maphash.Seed
}

// NewLegacyHashEncoder seeds the hash randomly, once per process.
func NewLegacyHashEncoder() *LegacyHashEncoder {
	return &LegacyHashEncoder{seed: maphash.MakeSeed()}
}

// NewLegacyHashEncoderWithSeed uses a caller-provided seed.
func NewLegacyHashEncoderWithSeed(seed maphash.Seed) *LegacyHashEncoder {
	return &LegacyHashEncoder{seed: seed}
}

func (e *LegacyHashEncoder) Encode(record model.Record) (model.Record, error) {
	out := record
	var err error
	for column, table := range legacyLookup {
		v, ok := record.Get(column)
		if !ok || !v.IsText() {
			continue
		}
		code, known := table[v.Text()]
		if !known {
			return model.Record{}, fmt.Errorf("%w: %q in column %q", model.ErrUnknownCategory, v.Text(), column)
		}
		if out, err = out.With(column, model.IntValue(int(code))); err != nil {
			return model.Record{}, err
		}
	}
	for _, column := range []string{model.ColumnRoute, model.ColumnBookingOrigin} {
		v, ok := record.Get(column)
		if !ok || !v.IsText() {
			continue
		}
		if out, err = out.With(column, model.IntValue(e.HashCode(v.Text()))); err != nil {
			return model.Record{}, err
		}
	}
	return out, nil
}

// HashCode returns the seeded hash of s reduced modulo LegacyHashModulus.
func (e *LegacyHashEncoder) HashCode(s string) int {
	return int(maphash.String(e.seed, s) % LegacyHashModulus)
}

func (e *LegacyHashEncoder) Version() string { return LegacyHashVersion }
