package valueobject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/valueobject"
)

func TestSalesChannelFromString(t *testing.T) {
	for _, s := range []string{"Internet", "Mobile", "Agent"} {
		c, err := valueobject.SalesChannelFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, c.String())
	}
	_, err := valueobject.SalesChannelFromString("internet")
	assert.Error(t, err)
}

func TestTripTypeFromString(t *testing.T) {
	tt, err := valueobject.TripTypeFromString("OneWay")
	require.NoError(t, err)
	assert.True(t, tt.Equal(valueobject.TripTypeOneWay))

	_, err = valueobject.TripTypeFromString("CircleTrip")
	assert.Error(t, err)
}

func TestFlightDays(t *testing.T) {
	days := valueobject.FlightDays()
	require.Len(t, days, 7)
	assert.Equal(t, "Mon", days[0].String())
	assert.Equal(t, "Sun", days[6].String())

	d, err := valueobject.FlightDayFromString("Fri")
	require.NoError(t, err)
	assert.True(t, d.Equal(valueobject.FlightDayFri))

	_, err = valueobject.FlightDayFromString("Friday")
	assert.Error(t, err)
}

func TestProfileFromString(t *testing.T) {
	p, err := valueobject.ProfileFromString(" Scaled ")
	require.NoError(t, err)
	assert.True(t, p.UsesScaler())
	assert.True(t, p.HasFixedThreshold())

	p, err = valueobject.ProfileFromString("pipeline")
	require.NoError(t, err)
	assert.False(t, p.UsesScaler())

	_, err = valueobject.ProfileFromString("hybrid")
	assert.Error(t, err)
}
