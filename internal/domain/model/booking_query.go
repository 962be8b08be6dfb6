package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

// IntRange is an inclusive integer bound.
type IntRange struct {
	Min, Max int
}

func (r IntRange) Contains(v int) bool { return v >= r.Min && v <= r.Max }

func (r IntRange) Clamp(v int) int {
	return min(max(v, r.Min), r.Max)
}

// FloatRange is an inclusive float bound.
type FloatRange struct {
	Min, Max float64
}

func (r FloatRange) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

func (r FloatRange) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return r.Min
	}
	return math.Min(math.Max(v, r.Min), r.Max)
}

// Input widget bounds.
var (
	NumPassengersRange  = IntRange{Min: 1, Max: 10}
	PurchaseLeadRange   = IntRange{Min: 0, Max: 365}
	LengthOfStayRange   = IntRange{Min: 1, Max: 365}
	FlightHourRange     = IntRange{Min: 0, Max: 23}
	FlightDurationRange = FloatRange{Min: 0.5, Max: 24.0}
)

// BookingQuery holds the attributes a user submits for one prediction.
// Fields are validated only against their widget bounds; there is no
// cross-field validation.
type BookingQuery struct {
	SalesChannel       valueobject.SalesChannel
	TripType           valueobject.TripType
	FlightDay          valueobject.FlightDay
	Route              string
	BookingOrigin      string
	FlightDuration     float64
	NumPassengers      int
	PurchaseLead       int
	LengthOfStay       int
	FlightHour         int
	WantsExtraBaggage  bool
	WantsPreferredSeat bool
	WantsInFlightMeals bool
}

// DefaultBookingQuery returns the values the form is first rendered with.
func DefaultBookingQuery() BookingQuery {
	return BookingQuery{
		NumPassengers:  1,
		SalesChannel:   valueobject.SalesChannelInternet,
		TripType:       valueobject.TripTypeRoundTrip,
		PurchaseLead:   15,
		LengthOfStay:   7,
		FlightHour:     17,
		FlightDay:      valueobject.FlightDayMon,
		Route:          "AKLKUL",
		BookingOrigin:  "India",
		FlightDuration: 8.0,
	}
}

// Validate reports every field outside its bounds. The returned error wraps
// ErrInvalidQuery.
func (q BookingQuery) Validate() error {
	var errs []error
	checkInt := func(name string, v int, r IntRange) {
		if !r.Contains(v) {
			errs = append(errs, fmt.Errorf("%s must be between %d and %d, got %d", name, r.Min, r.Max, v))
		}
	}

	checkInt(ColumnNumPassengers, q.NumPassengers, NumPassengersRange)
	checkInt(ColumnPurchaseLead, q.PurchaseLead, PurchaseLeadRange)
	checkInt(ColumnLengthOfStay, q.LengthOfStay, LengthOfStayRange)
	checkInt(ColumnFlightHour, q.FlightHour, FlightHourRange)

	if math.IsNaN(q.FlightDuration) || !FlightDurationRange.Contains(q.FlightDuration) {
		errs = append(errs, fmt.Errorf("%s must be between %.1f and %.1f, got %v",
			ColumnFlightDuration, FlightDurationRange.Min, FlightDurationRange.Max, q.FlightDuration))
	}
	if q.SalesChannel.IsZero() {
		errs = append(errs, fmt.Errorf("%s is required", ColumnSalesChannel))
	}
	if q.TripType.IsZero() {
		errs = append(errs, fmt.Errorf("%s is required", ColumnTripType))
	}
	if q.FlightDay.IsZero() {
		errs = append(errs, fmt.Errorf("%s is required", ColumnFlightDay))
	}
	if strings.TrimSpace(q.Route) == "" {
		errs = append(errs, fmt.Errorf("%s is required", ColumnRoute))
	}
	if strings.TrimSpace(q.BookingOrigin) == "" {
		errs = append(errs, fmt.Errorf("%s is required", ColumnBookingOrigin))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidQuery, errors.Join(errs...))
}

// Clamp pins numeric fields into their widget bounds and trims text, the way
// a number input would before submission.
func (q BookingQuery) Clamp() BookingQuery {
	q.NumPassengers = NumPassengersRange.Clamp(q.NumPassengers)
	q.PurchaseLead = PurchaseLeadRange.Clamp(q.PurchaseLead)
	q.LengthOfStay = LengthOfStayRange.Clamp(q.LengthOfStay)
	q.FlightHour = FlightHourRange.Clamp(q.FlightHour)
	q.FlightDuration = FlightDurationRange.Clamp(q.FlightDuration)
	q.Route = strings.TrimSpace(q.Route)
	q.BookingOrigin = strings.TrimSpace(q.BookingOrigin)
	return q
}

// Record assembles the single-row record fed to the model. Add-on flags
// become 0/1 integers; categorical fields stay as text.
func (q BookingQuery) Record() Record {
	values := []Value{
		IntValue(q.NumPassengers),
		TextValue(q.SalesChannel.String()),
		TextValue(q.TripType.String()),
		IntValue(q.PurchaseLead),
		IntValue(q.LengthOfStay),
		IntValue(q.FlightHour),
		TextValue(q.FlightDay.String()),
		TextValue(q.Route),
		TextValue(q.BookingOrigin),
		IntValue(boolToInt(q.WantsExtraBaggage)),
		IntValue(boolToInt(q.WantsPreferredSeat)),
		IntValue(boolToInt(q.WantsInFlightMeals)),
		FloatValue(q.FlightDuration),
	}
	// Columns() and values are constructed in lockstep, so this cannot fail.
	r, err := NewRecord(Columns(), values)
	if err != nil {
		panic(err)
	}
	return r
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
