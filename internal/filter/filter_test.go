package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokernight/pkg/contracts/domain"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func testRecords() []domain.SessionRecord {
	return []domain.SessionRecord{
		{SessionID: "S1", Date: day(3), Player: "Alice", Venue: "The Cellar", Group: "Friday Crew", Season: "2025"},
		{SessionID: "S1", Date: day(3), Player: "Bob", Venue: "The Cellar", Group: "Friday Crew", Season: "2025"},
		{SessionID: "S2", Date: day(10), Player: "Alice", Venue: "Bob's Garage", Group: "High Stakes", Season: "2025"},
		{SessionID: "S3", Date: day(17), Player: "Charlie", Venue: "The Cellar", Group: "Friday Crew", Season: "2024"},
	}
}

func TestApplyZeroFilterReturnsAll(t *testing.T) {
	records := testRecords()
	assert.Equal(t, records, Apply(records, domain.Filter{}))
}

func TestApplyDateBoundsInclusive(t *testing.T) {
	from, to := day(3), day(10)
	got := Apply(testRecords(), domain.Filter{From: &from, To: &to})
	require.Len(t, got, 3)
	for _, rec := range got {
		assert.False(t, rec.Date.After(day(10)))
	}
}

func TestApplyDateComparesCalendarDayOnly(t *testing.T) {
	// A bound carrying a time of day still matches records on that date.
	from := time.Date(2025, 1, 17, 23, 59, 0, 0, time.UTC)
	got := Apply(testRecords(), domain.Filter{From: &from})
	require.Len(t, got, 1)
	assert.Equal(t, "Charlie", got[0].Player)
}

func TestApplyPlayers(t *testing.T) {
	got := Apply(testRecords(), domain.Filter{Players: []string{"Alice"}})
	require.Len(t, got, 2)
	for _, rec := range got {
		assert.Equal(t, "Alice", rec.Player)
	}
}

func TestApplyEmptyAllowListMeansNoRestriction(t *testing.T) {
	got := Apply(testRecords(), domain.Filter{Players: []string{}})
	assert.Len(t, got, 4)
}

func TestApplyDimensions(t *testing.T) {
	got := Apply(testRecords(), domain.Filter{Venues: []string{"The Cellar"}, Seasons: []string{"2025"}})
	require.Len(t, got, 2)
	for _, rec := range got {
		assert.Equal(t, "The Cellar", rec.Venue)
		assert.Equal(t, "2025", rec.Season)
	}
}

func TestApplyCombinedCriteria(t *testing.T) {
	from := day(4)
	got := Apply(testRecords(), domain.Filter{
		From:    &from,
		Players: []string{"Alice", "Charlie"},
		Groups:  []string{"High Stakes"},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "S2", got[0].SessionID)
}

func TestApplyNoMatches(t *testing.T) {
	got := Apply(testRecords(), domain.Filter{Players: []string{"Nobody"}})
	assert.Empty(t, got)
}
