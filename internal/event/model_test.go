package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func validBandEvent() *Event {
	bandID := uint(1)
	membershipID := uint(2)
	return &Event{
		BandID:                 &bandID,
		AuthoredByMembershipID: &membershipID,
		Kind:                   KindRehearsal,
		Title:                  "Tuesday practice",
		StartDate:              date("2025-03-01"),
		Location:               "Basement studio",
	}
}

func TestValidateExactlyOneOwner(t *testing.T) {
	principalID := uint(2)

	both := validBandEvent()
	both.OwnerPrincipalID = &principalID
	err := both.Validate()
	require.Error(t, err)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	neither := &Event{Kind: KindRehearsal, Title: "x", StartDate: date("2025-03-01")}
	err = neither.Validate()
	require.Error(t, err)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestValidatePersonalKindOwnership(t *testing.T) {
	e := validBandEvent()
	e.Kind = KindPersonalUnavailable
	err := e.Validate()
	require.Error(t, err)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	principalID := uint(3)
	personal := &Event{
		OwnerPrincipalID: &principalID,
		Kind:             KindRehearsal,
		Title:            "x",
		StartDate:        date("2025-03-01"),
	}
	err = personal.Validate()
	require.Error(t, err)
}

func TestValidatePublicRequiresVenueAndClearsLocation(t *testing.T) {
	e := validBandEvent()
	e.IsPublic = true
	e.Venue = ""
	require.Error(t, e.Validate())

	e.Venue = "The Paramount"
	e.Location = "should be cleared"
	require.NoError(t, e.Validate())
	assert.Empty(t, e.Location)
	assert.Equal(t, "The Paramount", e.Venue)
}

func TestValidatePrivateRequiresLocationAndClearsVenue(t *testing.T) {
	e := validBandEvent()
	e.Venue = "should be cleared"
	require.NoError(t, e.Validate())
	assert.Empty(t, e.Venue)
	assert.Equal(t, "Basement studio", e.Location)

	e2 := validBandEvent()
	e2.Location = ""
	require.Error(t, e2.Validate())
}

func TestValidateAllDayDerivation(t *testing.T) {
	e := validBandEvent()
	require.NoError(t, e.Validate())
	assert.True(t, e.IsAllDay)

	start := time.Date(0, 1, 1, 19, 0, 0, 0, time.UTC)
	end := time.Date(0, 1, 1, 22, 0, 0, 0, time.UTC)
	e.StartTime = &start
	e.EndTime = &end
	require.NoError(t, e.Validate())
	assert.False(t, e.IsAllDay)

	principalID := uint(5)
	personal := &Event{
		OwnerPrincipalID: &principalID,
		Kind:             KindPersonalUnavailable,
		StartDate:        date("2025-03-01"),
	}
	require.NoError(t, personal.Validate())
	assert.True(t, personal.IsAllDay)
}

func TestValidateIntervalOrdering(t *testing.T) {
	e := validBandEvent()
	end := date("2025-02-01")
	e.EndDate = &end
	require.Error(t, e.Validate())
}

func TestValidateTimesComeTogether(t *testing.T) {
	e := validBandEvent()
	start := time.Date(0, 1, 1, 19, 0, 0, 0, time.UTC)
	e.StartTime = &start
	require.Error(t, e.Validate())
}

func TestKindTraits(t *testing.T) {
	assert.True(t, KindRehearsal.Traits().GroupCommitting)
	assert.True(t, KindPerformance.Traits().GroupCommitting)
	assert.False(t, KindFestival.Traits().GroupCommitting)
	assert.False(t, KindOpenSlot.Traits().GroupCommitting)
	assert.True(t, KindPersonalUnavailable.Traits().Personal)
	assert.True(t, KindPersonalUnavailable.Traits().AlwaysAllDay)
	assert.False(t, Kind("karaoke").Valid())
}
