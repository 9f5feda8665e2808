package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyTrend_BucketsByCalendarDate(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 14, 9, 30, 0, 0, loc)

	executions := []*Execution{
		{ID: "e1", StartedAt: day, PassedItems: 2, FailedItems: 1},
		{ID: "e2", StartedAt: day.Add(5 * time.Hour), PassedItems: 3, FailedItems: 0},
	}

	trend := DailyTrend(executions, loc)

	require.Len(t, trend, 1)
	assert.Equal(t, "2026-03-14", trend[0].Date)
	assert.Equal(t, 5, trend[0].Passed)
	assert.Equal(t, 1, trend[0].Failed)
}

func TestDailyTrend_SortedAscending(t *testing.T) {
	loc := time.UTC
	executions := []*Execution{
		{StartedAt: time.Date(2026, 3, 16, 0, 0, 0, 0, loc), PassedItems: 1},
		{StartedAt: time.Date(2026, 3, 14, 0, 0, 0, 0, loc), PassedItems: 1},
		{StartedAt: time.Date(2026, 3, 15, 0, 0, 0, 0, loc), PassedItems: 1},
	}

	trend := DailyTrend(executions, loc)

	require.Len(t, trend, 3)
	assert.Equal(t, "2026-03-14", trend[0].Date)
	assert.Equal(t, "2026-03-15", trend[1].Date)
	assert.Equal(t, "2026-03-16", trend[2].Date)
}

func TestDailyTrend_LocationShiftsBucket(t *testing.T) {
	// 23:30 UTC on the 14th is already the 15th in UTC+2.
	utc2 := time.FixedZone("UTC+2", 2*60*60)
	executions := []*Execution{
		{StartedAt: time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC), PassedItems: 1},
	}

	trend := DailyTrend(executions, utc2)

	require.Len(t, trend, 1)
	assert.Equal(t, "2026-03-15", trend[0].Date)
}

func TestDailyTrend_Empty(t *testing.T) {
	assert.Empty(t, DailyTrend(nil, time.UTC))
}

func failedResult(itemID string) *ResultDetails {
	return &ResultDetails{
		Result: Result{ChecklistItemID: itemID, Status: ResultStatusFailed},
		Item:   &Item{ID: itemID, Title: "item " + itemID},
	}
}

func TestMostFailedItems_Ranking(t *testing.T) {
	results := []*ResultDetails{
		failedResult("b"),
		failedResult("a"),
		failedResult("a"),
		failedResult("a"),
	}

	ranked := MostFailedItems(results)

	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].Item.ID)
	assert.Equal(t, 3, ranked[0].FailCount)
	assert.Equal(t, "b", ranked[1].Item.ID)
	assert.Equal(t, 1, ranked[1].FailCount)
}

func TestMostFailedItems_TruncatesAtTen(t *testing.T) {
	var results []*ResultDetails
	for i := 0; i < 11; i++ {
		results = append(results, failedResult(fmt.Sprintf("item-%d", i)))
	}

	ranked := MostFailedItems(results)

	assert.Len(t, ranked, 10)
}

func TestMostFailedItems_TiesKeepFirstOccurrenceOrder(t *testing.T) {
	results := []*ResultDetails{
		failedResult("z"),
		failedResult("a"),
		failedResult("m"),
	}

	ranked := MostFailedItems(results)

	require.Len(t, ranked, 3)
	assert.Equal(t, "z", ranked[0].Item.ID)
	assert.Equal(t, "a", ranked[1].Item.ID)
	assert.Equal(t, "m", ranked[2].Item.ID)
}
