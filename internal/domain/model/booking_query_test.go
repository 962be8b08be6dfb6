package model_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

func referenceQuery() model.BookingQuery {
	return model.BookingQuery{
		NumPassengers:      2,
		SalesChannel:       valueobject.SalesChannelInternet,
		TripType:           valueobject.TripTypeRoundTrip,
		PurchaseLead:       15,
		LengthOfStay:       7,
		FlightHour:         17,
		FlightDay:          valueobject.FlightDayFri,
		Route:              "AKLKUL",
		BookingOrigin:      "India",
		WantsExtraBaggage:  true,
		WantsPreferredSeat: false,
		WantsInFlightMeals: true,
		FlightDuration:     8.0,
	}
}

func TestBookingQuery_Record_Columns(t *testing.T) {
	r := referenceQuery().Record()

	want := []string{
		"num_passengers", "sales_channel", "trip_type", "purchase_lead",
		"length_of_stay", "flight_hour", "flight_day", "route",
		"booking_origin", "wants_extra_baggage", "wants_preferred_seat",
		"wants_in_flight_meals", "flight_duration",
	}
	if diff := cmp.Diff(want, r.Columns()); diff != "" {
		t.Errorf("record columns mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 13, r.Len())
}

func TestBookingQuery_Record_Values(t *testing.T) {
	r := referenceQuery().Record()

	tests := []struct {
		column string
		text   string
		number float64
		kind   model.ValueKind
	}{
		{column: model.ColumnNumPassengers, kind: model.KindInt, number: 2},
		{column: model.ColumnSalesChannel, kind: model.KindText, text: "Internet"},
		{column: model.ColumnTripType, kind: model.KindText, text: "RoundTrip"},
		{column: model.ColumnPurchaseLead, kind: model.KindInt, number: 15},
		{column: model.ColumnLengthOfStay, kind: model.KindInt, number: 7},
		{column: model.ColumnFlightHour, kind: model.KindInt, number: 17},
		{column: model.ColumnFlightDay, kind: model.KindText, text: "Fri"},
		{column: model.ColumnRoute, kind: model.KindText, text: "AKLKUL"},
		{column: model.ColumnBookingOrigin, kind: model.KindText, text: "India"},
		{column: model.ColumnWantsExtraBaggage, kind: model.KindInt, number: 1},
		{column: model.ColumnWantsPreferredSeat, kind: model.KindInt, number: 0},
		{column: model.ColumnWantsInFlightMeals, kind: model.KindInt, number: 1},
		{column: model.ColumnFlightDuration, kind: model.KindFloat, number: 8.0},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			v, ok := r.Get(tt.column)
			require.True(t, ok)
			assert.Equal(t, tt.kind, v.Kind())
			if tt.kind == model.KindText {
				assert.Equal(t, tt.text, v.Text())
			} else {
				assert.InDelta(t, tt.number, v.Number(), 1e-12)
			}
		})
	}
}

func TestBookingQuery_Validate(t *testing.T) {
	tests := []struct {
		mutate  func(q *model.BookingQuery)
		name    string
		wantErr string
	}{
		{name: "reference is valid", mutate: func(*model.BookingQuery) {}},
		{name: "zero passengers", mutate: func(q *model.BookingQuery) { q.NumPassengers = 0 }, wantErr: "num_passengers must be between 1 and 10"},
		{name: "eleven passengers", mutate: func(q *model.BookingQuery) { q.NumPassengers = 11 }, wantErr: "num_passengers"},
		{name: "negative lead", mutate: func(q *model.BookingQuery) { q.PurchaseLead = -1 }, wantErr: "purchase_lead"},
		{name: "zero stay", mutate: func(q *model.BookingQuery) { q.LengthOfStay = 0 }, wantErr: "length_of_stay"},
		{name: "hour 24", mutate: func(q *model.BookingQuery) { q.FlightHour = 24 }, wantErr: "flight_hour"},
		{name: "short flight", mutate: func(q *model.BookingQuery) { q.FlightDuration = 0.25 }, wantErr: "flight_duration"},
		{name: "empty route", mutate: func(q *model.BookingQuery) { q.Route = "  " }, wantErr: "route is required"},
		{name: "empty origin", mutate: func(q *model.BookingQuery) { q.BookingOrigin = "" }, wantErr: "booking_origin is required"},
		{name: "missing channel", mutate: func(q *model.BookingQuery) { q.SalesChannel = valueobject.SalesChannel{} }, wantErr: "sales_channel is required"},
		{name: "long route and origin are free text", mutate: func(q *model.BookingQuery) {
			q.Route = strings.Repeat("AKLKUL", 20)
			q.BookingOrigin = strings.Repeat("India", 40)
		}},
		{name: "stay longer than lead is allowed", mutate: func(q *model.BookingQuery) { q.LengthOfStay = 300; q.PurchaseLead = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := referenceQuery()
			tt.mutate(&q)
			err := q.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, model.ErrInvalidQuery))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBookingQuery_Clamp(t *testing.T) {
	q := referenceQuery()
	q.NumPassengers = 42
	q.PurchaseLead = -3
	q.LengthOfStay = 1000
	q.FlightHour = -1
	q.FlightDuration = 30
	q.Route = " AKLKUL "

	c := q.Clamp()
	assert.Equal(t, 10, c.NumPassengers)
	assert.Equal(t, 0, c.PurchaseLead)
	assert.Equal(t, 365, c.LengthOfStay)
	assert.Equal(t, 0, c.FlightHour)
	assert.InDelta(t, 24.0, c.FlightDuration, 1e-12)
	assert.Equal(t, "AKLKUL", c.Route)
	assert.NoError(t, c.Validate())
}

func TestDefaultBookingQuery_IsValid(t *testing.T) {
	q := model.DefaultBookingQuery()
	require.NoError(t, q.Validate())
	assert.Equal(t, 1, q.NumPassengers)
	assert.Equal(t, "AKLKUL", q.Route)
	assert.Equal(t, "India", q.BookingOrigin)
}

func TestRecord_Select(t *testing.T) {
	r := referenceQuery().Record()

	vals, err := r.Select([]string{model.ColumnFlightDuration, model.ColumnNumPassengers})
	require.NoError(t, err)
	assert.Equal(t, []float64{8.0, 2}, vals)

	_, err = r.Select([]string{model.ColumnRoute})
	assert.ErrorIs(t, err, model.ErrSchemaMismatch)

	_, err = r.Select([]string{"seat_class"})
	assert.ErrorIs(t, err, model.ErrSchemaMismatch)
}

func TestNewRecord_Mismatch(t *testing.T) {
	_, err := model.NewRecord([]string{"a", "b"}, []model.Value{model.IntValue(1)})
	assert.ErrorIs(t, err, model.ErrSchemaMismatch)

	_, err = model.NewRecord([]string{"a", "a"}, []model.Value{model.IntValue(1), model.IntValue(2)})
	assert.ErrorIs(t, err, model.ErrSchemaMismatch)
}

func TestRecord_WithDoesNotMutate(t *testing.T) {
	r := referenceQuery().Record()
	r2, err := r.With(model.ColumnRoute, model.IntValue(7))
	require.NoError(t, err)

	orig, _ := r.Get(model.ColumnRoute)
	updated, _ := r2.Get(model.ColumnRoute)
	assert.Equal(t, "AKLKUL", orig.Text())
	assert.InDelta(t, 7.0, updated.Number(), 1e-12)
}
