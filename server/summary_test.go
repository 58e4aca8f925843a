package server_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/punchlog/go-punchlog/server"
)

func rec(kind, date, clock string) *server.ClockRecord {
	return &server.ClockRecord{Type: kind, Date: date, Time: clock}
}

func TestSummarizePairsEntries(t *testing.T) {
	records := []*server.ClockRecord{
		rec(server.EntryClockIn, "2026-08-24", "09:00"),
		rec(server.EntryClockOut, "2026-08-24", "17:30"),
		rec(server.EntryClockIn, "2026-08-25", "08:00:00"),
		rec(server.EntryClockOut, "2026-08-25", "16:00:00"),
	}

	summary := server.Summarize(server.PeriodWeek, "2026-08-24", "2026-08-30", records)

	assert.InDelta(t, 16.5, summary.TotalHours, 0.001)
	assert.Equal(t, 4, summary.Records)
	assert.Equal(t, server.PeriodWeek, summary.Period)
}

func TestSummarizeIgnoresUnpairedEntries(t *testing.T) {
	records := []*server.ClockRecord{
		rec(server.EntryClockIn, "2026-08-24", "09:00"),
		// out on a different day does not pair with the in above
		rec(server.EntryClockOut, "2026-08-25", "17:00"),
		// out with no preceding in
		rec(server.EntryClockOut, "2026-08-26", "12:00"),
		// in with no following out
		rec(server.EntryClockIn, "2026-08-27", "09:00"),
	}

	summary := server.Summarize(server.PeriodWeek, "2026-08-24", "2026-08-30", records)

	assert.Equal(t, 0.0, summary.TotalHours)
	assert.Equal(t, 4, summary.Records)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := server.Summarize(server.PeriodDay, "2026-08-29", "2026-08-29", nil)
	assert.Equal(t, 0.0, summary.TotalHours)
	assert.Equal(t, 0, summary.Records)
}

func TestPeriodRangeDay(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)

	start, end, err := server.PeriodRange(server.PeriodDay, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-29", start)
	assert.Equal(t, "2026-08-29", end)
}

func TestPeriodRangeWeekStartsMonday(t *testing.T) {
	// 2026-08-29 is a Saturday
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)

	start, end, err := server.PeriodRange(server.PeriodWeek, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-24", start)
	assert.Equal(t, "2026-08-30", end)
}

func TestPeriodRangeMonth(t *testing.T) {
	now := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)

	start, end, err := server.PeriodRange(server.PeriodMonth, "", "", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", start)
	assert.Equal(t, "2026-02-28", end)
}

func TestPeriodRangeExplicitDatesWin(t *testing.T) {
	start, end, err := server.PeriodRange(server.PeriodMonth, "2026-01-01", "2026-01-15", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", start)
	assert.Equal(t, "2026-01-15", end)
}

func TestPeriodRangeUnknownPeriod(t *testing.T) {
	_, _, err := server.PeriodRange("quincena", "", "", time.Now())
	assert.Error(t, err)
}
