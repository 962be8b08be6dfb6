package valueobject

import "fmt"

// SalesChannel is the channel a booking was made through.
type SalesChannel struct {
	value string
}

var (
	SalesChannelInternet = SalesChannel{value: "Internet"}
	SalesChannelMobile   = SalesChannel{value: "Mobile"}
	SalesChannelAgent    = SalesChannel{value: "Agent"}
)

// SalesChannels lists the channels in form order.
func SalesChannels() []SalesChannel {
	return []SalesChannel{SalesChannelInternet, SalesChannelMobile, SalesChannelAgent}
}

// SalesChannelFromString reconstructs a SalesChannel from its label.
func SalesChannelFromString(s string) (SalesChannel, error) {
	for _, c := range SalesChannels() {
		if c.value == s {
			return c, nil
		}
	}
	return SalesChannel{}, fmt.Errorf("invalid sales channel: %q", s)
}

func (c SalesChannel) String() string                { return c.value }
func (c SalesChannel) IsZero() bool                  { return c.value == "" }
func (c SalesChannel) Equal(other SalesChannel) bool { return c.value == other.value }

// TripType is round trip or one way.
type TripType struct {
	value string
}

var (
	TripTypeRoundTrip = TripType{value: "RoundTrip"}
	TripTypeOneWay    = TripType{value: "OneWay"}
)

// TripTypes lists the trip types in form order.
func TripTypes() []TripType {
	return []TripType{TripTypeRoundTrip, TripTypeOneWay}
}

// TripTypeFromString reconstructs a TripType from its label.
func TripTypeFromString(s string) (TripType, error) {
	for _, tt := range TripTypes() {
		if tt.value == s {
			return tt, nil
		}
	}
	return TripType{}, fmt.Errorf("invalid trip type: %q", s)
}

func (t TripType) String() string            { return t.value }
func (t TripType) IsZero() bool              { return t.value == "" }
func (t TripType) Equal(other TripType) bool { return t.value == other.value }

// FlightDay is the weekday of departure, Mon..Sun.
type FlightDay struct {
	value string
}

var (
	FlightDayMon = FlightDay{value: "Mon"}
	FlightDayTue = FlightDay{value: "Tue"}
	FlightDayWed = FlightDay{value: "Wed"}
	FlightDayThu = FlightDay{value: "Thu"}
	FlightDayFri = FlightDay{value: "Fri"}
	FlightDaySat = FlightDay{value: "Sat"}
	FlightDaySun = FlightDay{value: "Sun"}
)

// FlightDays lists the weekdays starting Monday.
func FlightDays() []FlightDay {
	return []FlightDay{
		FlightDayMon, FlightDayTue, FlightDayWed, FlightDayThu,
		FlightDayFri, FlightDaySat, FlightDaySun,
	}
}

// FlightDayFromString reconstructs a FlightDay from its three letter label.
func FlightDayFromString(s string) (FlightDay, error) {
	for _, d := range FlightDays() {
		if d.value == s {
			return d, nil
		}
	}
	return FlightDay{}, fmt.Errorf("invalid flight day: %q", s)
}

func (d FlightDay) String() string             { return d.value }
func (d FlightDay) IsZero() bool               { return d.value == "" }
func (d FlightDay) Equal(other FlightDay) bool { return d.value == other.value }
