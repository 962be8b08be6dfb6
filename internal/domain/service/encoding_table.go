package service

import (
	"fmt"
	"slices"
	"sort"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
)

// ColumnEncoding maps the categories of one column to numeric codes.
// Default, when set, is used for categories absent from Codes.
type ColumnEncoding struct {
	Codes   map[string]float64 `yaml:"codes" json:"codes"`
	Default *float64           `yaml:"default,omitempty" json:"default,omitempty"`
}

// EncodingTable is a versioned set of categorical encodings persisted
// alongside a model artifact.
type EncodingTable struct {
	Columns map[string]ColumnEncoding `yaml:"columns" json:"columns"`
	Version string                    `yaml:"version" json:"version"`
}

// Validate checks the table against the columns a model reads. Every
// categorical column the model reads must be encoded, and every encoded
// column must be one the model reads. Violations wrap model.ErrSchemaMismatch.
func (t EncodingTable) Validate(modelColumns []string) error {
	if t.Version == "" {
		return fmt.Errorf("%w: encoding table has no version", model.ErrSchemaMismatch)
	}

	for _, c := range model.CategoricalColumns() {
		if !slices.Contains(modelColumns, c) {
			continue
		}
		enc, ok := t.Columns[c]
		if !ok {
			return fmt.Errorf("%w: encoding table %s has no entry for model column %q",
				model.ErrSchemaMismatch, t.Version, c)
		}
		if len(enc.Codes) == 0 && enc.Default == nil {
			return fmt.Errorf("%w: encoding for column %q is empty", model.ErrSchemaMismatch, c)
		}
	}

	for _, c := range t.encodedColumns() {
		if !slices.Contains(modelColumns, c) {
			return fmt.Errorf("%w: encoding table %s encodes %q which the model does not read",
				model.ErrSchemaMismatch, t.Version, c)
		}
	}
	return nil
}

func (t EncodingTable) encodedColumns() []string {
	cols := make([]string, 0, len(t.Columns))
	for c := range t.Columns {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// Code returns the numeric code for value in column.
func (t EncodingTable) Code(column, value string) (float64, error) {
	enc, ok := t.Columns[column]
	if !ok {
		return 0, fmt.Errorf("%w: no encoding for column %q", model.ErrSchemaMismatch, column)
	}
	if code, ok := enc.Codes[value]; ok {
		return code, nil
	}
	if enc.Default != nil {
		return *enc.Default, nil
	}
	return 0, fmt.Errorf("%w: %q in column %q", model.ErrUnknownCategory, value, column)
}

// TableEncoder encodes categorical columns through an EncodingTable.
type TableEncoder struct {
	table EncodingTable
}

// NewTableEncoder validates table against modelColumns and returns an encoder.
func NewTableEncoder(table EncodingTable, modelColumns []string) (*TableEncoder, error) {
	if err := table.Validate(modelColumns); err != nil {
		return nil, err
	}
	return &TableEncoder{table: table}, nil
}

// Encode replaces every encoded text cell with its numeric code.
func (e *TableEncoder) Encode(record model.Record) (model.Record, error) {
	out := record
	for _, c := range e.table.encodedColumns() {
		v, ok := record.Get(c)
		if !ok {
			return model.Record{}, fmt.Errorf("%w: record has no column %q", model.ErrSchemaMismatch, c)
		}
		if !v.IsText() {
			continue
		}
		code, err := e.table.Code(c, v.Text())
		if err != nil {
			return model.Record{}, err
		}
		if out, err = out.With(c, model.FloatValue(code)); err != nil {
			return model.Record{}, err
		}
	}
	return out, nil
}

func (e *TableEncoder) Version() string { return e.table.Version }
