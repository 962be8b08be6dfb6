package model

import (
	"fmt"
	"strconv"
)

// Column names of the assembled record, in model order.
const (
	ColumnNumPassengers      = "num_passengers"
	ColumnSalesChannel       = "sales_channel"
	ColumnTripType           = "trip_type"
	ColumnPurchaseLead       = "purchase_lead"
	ColumnLengthOfStay       = "length_of_stay"
	ColumnFlightHour         = "flight_hour"
	ColumnFlightDay          = "flight_day"
	ColumnRoute              = "route"
	ColumnBookingOrigin      = "booking_origin"
	ColumnWantsExtraBaggage  = "wants_extra_baggage"
	ColumnWantsPreferredSeat = "wants_preferred_seat"
	ColumnWantsInFlightMeals = "wants_in_flight_meals"
	ColumnFlightDuration     = "flight_duration"
)

// Columns returns the 13 record columns in model order.
func Columns() []string {
	return []string{
		ColumnNumPassengers,
		ColumnSalesChannel,
		ColumnTripType,
		ColumnPurchaseLead,
		ColumnLengthOfStay,
		ColumnFlightHour,
		ColumnFlightDay,
		ColumnRoute,
		ColumnBookingOrigin,
		ColumnWantsExtraBaggage,
		ColumnWantsPreferredSeat,
		ColumnWantsInFlightMeals,
		ColumnFlightDuration,
	}
}

// CategoricalColumns returns the text-valued columns of the record.
func CategoricalColumns() []string {
	return []string{
		ColumnSalesChannel,
		ColumnTripType,
		ColumnFlightDay,
		ColumnRoute,
		ColumnBookingOrigin,
	}
}

// ValueKind is the type tag of a record cell.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindFloat
	KindText
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Value is a single record cell.
type Value struct {
	text string
	num  float64
	kind ValueKind
}

func IntValue(v int) Value       { return Value{kind: KindInt, num: float64(v)} }
func FloatValue(v float64) Value { return Value{kind: KindFloat, num: v} }
func TextValue(v string) Value   { return Value{kind: KindText, text: v} }
func (v Value) Kind() ValueKind  { return v.kind }
func (v Value) IsText() bool     { return v.kind == KindText }
func (v Value) Text() string     { return v.text }
func (v Value) Number() float64  { return v.num }

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindInt:
		return strconv.Itoa(int(v.num))
	default:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}
}

// Record is a single-row table: named, ordered cells.
type Record struct {
	index   map[string]int
	columns []string
	values  []Value
}

// NewRecord builds a record from parallel column and value slices.
func NewRecord(columns []string, values []Value) (Record, error) {
	if len(columns) != len(values) {
		return Record{}, fmt.Errorf("%w: %d columns but %d values", ErrSchemaMismatch, len(columns), len(values))
	}
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, dup := index[c]; dup {
			return Record{}, fmt.Errorf("%w: duplicate column %q", ErrSchemaMismatch, c)
		}
		index[c] = i
	}
	cols := make([]string, len(columns))
	copy(cols, columns)
	vals := make([]Value, len(values))
	copy(vals, values)
	return Record{index: index, columns: cols, values: vals}, nil
}

func (r Record) Len() int { return len(r.columns) }

// Columns returns a copy of the column names in order.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Values returns a copy of the cells in column order.
func (r Record) Values() []Value {
	out := make([]Value, len(r.values))
	copy(out, r.values)
	return out
}

// Get returns the cell for column.
func (r Record) Get(column string) (Value, bool) {
	i, ok := r.index[column]
	if !ok {
		return Value{}, false
	}
	return r.values[i], true
}

// With returns a copy of the record with column set to v.
// The column must already exist.
func (r Record) With(column string, v Value) (Record, error) {
	i, ok := r.index[column]
	if !ok {
		return Record{}, fmt.Errorf("%w: no column %q", ErrSchemaMismatch, column)
	}
	vals := r.Values()
	vals[i] = v
	return Record{index: r.index, columns: r.columns, values: vals}, nil
}

// Select returns the numeric cells for columns, in the given order. Missing
// columns and text cells are schema mismatches.
func (r Record) Select(columns []string) ([]float64, error) {
	out := make([]float64, len(columns))
	for i, c := range columns {
		v, ok := r.Get(c)
		if !ok {
			return nil, fmt.Errorf("%w: record has no column %q", ErrSchemaMismatch, c)
		}
		if v.IsText() {
			return nil, fmt.Errorf("%w: column %q holds text %q where a number is expected", ErrSchemaMismatch, c, v.Text())
		}
		out[i] = v.Number()
	}
	return out, nil
}
