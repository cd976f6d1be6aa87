package conflict

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestOverlapSharedBoundaryDay(t *testing.T) {
	// A=[2025-01-10,2025-01-12], B=[2025-01-12,2025-01-15]: boundary day counts
	assert.True(t, Overlaps(day("2025-01-10"), day("2025-01-12"), day("2025-01-12"), day("2025-01-15")))
}

func TestNoOverlapAdjacentDays(t *testing.T) {
	// A=[2025-01-10,2025-01-11], B=[2025-01-12,2025-01-13]
	assert.False(t, Overlaps(day("2025-01-10"), day("2025-01-11"), day("2025-01-12"), day("2025-01-13")))
}

func TestDetectSameKindAndUnavailabilityPartition(t *testing.T) {
	// A rehearsal proposed on 2025-03-01 against an existing co-member
	// unavailability 2025-02-28..2025-03-02.
	existing := []Item{
		{EventID: 1, Kind: "personal_unavailable", Start: day("2025-02-28"), End: day("2025-03-02")},
	}
	report := Detect(Candidate{Kind: "rehearsal", Start: day("2025-03-01"), End: day("2025-03-01")}, existing, nil)

	require.Len(t, report.UnavailabilityConflicts, 1)
	assert.Empty(t, report.SameKindConflicts)
	assert.Empty(t, report.AffectedGroupEvents)
	assert.True(t, report.HasConflicts())
}

func TestDetectRehearsalAgainstPerformance(t *testing.T) {
	existing := []Item{
		{EventID: 7, Kind: "performance", Start: day("2025-05-10"), End: day("2025-05-10")},
		{EventID: 8, Kind: "open_slot", Start: day("2025-05-10"), End: day("2025-05-10")},
	}
	report := Detect(Candidate{Kind: "rehearsal", Start: day("2025-05-10"), End: day("2025-05-10")}, existing, nil)

	// performance clashes same-kind; open slots never conflict
	require.Len(t, report.SameKindConflicts, 1)
	assert.Equal(t, uint(7), report.SameKindConflicts[0].EventID)
	assert.Empty(t, report.UnavailabilityConflicts)
}

func TestDetectSelfExclusion(t *testing.T) {
	existing := []Item{
		{EventID: 42, Kind: "rehearsal", Start: day("2025-04-01"), End: day("2025-04-03")},
	}
	exclude := uint(42)
	report := Detect(Candidate{Kind: "rehearsal", Start: day("2025-04-02"), End: day("2025-04-02")}, existing, &exclude)

	assert.False(t, report.HasConflicts())
}

func TestDetectUnavailabilityAffectsGroupEvents(t *testing.T) {
	bandA, bandB := uint(1), uint(2)
	existing := []Item{
		{EventID: 1, Kind: "rehearsal", Start: day("2025-06-05"), End: day("2025-06-05"), BandID: &bandA, BandName: "The Sonics"},
		{EventID: 2, Kind: "performance", Start: day("2025-06-07"), End: day("2025-06-07"), BandID: &bandB, BandName: "Night Shift"},
		{EventID: 3, Kind: "festival", Start: day("2025-06-06"), End: day("2025-06-06"), BandID: &bandA},
	}
	report := Detect(Candidate{Kind: "personal_unavailable", Start: day("2025-06-04"), End: day("2025-06-08")}, existing, nil)

	require.Len(t, report.AffectedGroupEvents, 2)
	assert.Empty(t, report.SameKindConflicts)
	assert.Empty(t, report.UnavailabilityConflicts)
}

func TestDetectOpenEndedItemsDefaultToSingleDay(t *testing.T) {
	// Items whose End precedes Start are normalized to single-day intervals.
	existing := []Item{
		{EventID: 5, Kind: "rehearsal", Start: day("2025-07-01"), End: time.Time{}},
	}
	report := Detect(Candidate{Kind: "rehearsal", Start: day("2025-07-01"), End: day("2025-07-01")}, existing, nil)
	require.Len(t, report.SameKindConflicts, 1)

	report = Detect(Candidate{Kind: "rehearsal", Start: day("2025-07-02"), End: day("2025-07-02")}, existing, nil)
	assert.Empty(t, report.SameKindConflicts)
}

func TestDetectEmptyListsNeverNil(t *testing.T) {
	report := Detect(Candidate{Kind: "open_slot", Start: day("2025-01-01"), End: day("2025-01-01")}, nil, nil)
	assert.NotNil(t, report.SameKindConflicts)
	assert.NotNil(t, report.UnavailabilityConflicts)
	assert.NotNil(t, report.AffectedGroupEvents)
}
