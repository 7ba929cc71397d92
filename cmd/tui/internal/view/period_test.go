package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/euer/internal/profile"
	"github.com/MrJamesThe3rd/euer/internal/transaction"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuarterRange(t *testing.T) {
	type testCase struct {
		name      string
		period    Period
		wantStart time.Time
		wantEnd   time.Time
	}

	tests := []testCase{
		{name: "Q1", period: PeriodQ1, wantStart: day(2025, 1, 1), wantEnd: day(2025, 3, 31)},
		{name: "Q2", period: PeriodQ2, wantStart: day(2025, 4, 1), wantEnd: day(2025, 6, 30)},
		{name: "Q3", period: PeriodQ3, wantStart: day(2025, 7, 1), wantEnd: day(2025, 9, 30)},
		{name: "Q4", period: PeriodQ4, wantStart: day(2025, 10, 1), wantEnd: day(2025, 12, 31)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end := quarterRange(2025, tc.period)
			assert.Equal(t, tc.wantStart, start)
			assert.Equal(t, tc.wantEnd, end)
		})
	}
}

func TestPeriodSelectedMsg_Contains(t *testing.T) {
	start, end := normalizeDateRange(quarterRange(2025, PeriodQ2))
	q2 := PeriodSelectedMsg{Start: start, End: end}

	assert.True(t, q2.Contains(day(2025, 4, 1)))
	assert.True(t, q2.Contains(time.Date(2025, 6, 30, 18, 0, 0, 0, time.UTC)))
	assert.False(t, q2.Contains(day(2025, 7, 1)))
	assert.False(t, q2.Contains(day(2025, 3, 31)))
	assert.True(t, PeriodSelectedMsg{All: true}.Contains(day(1999, 1, 1)))
}

func TestBatchYear(t *testing.T) {
	p := profile.CalendarYear(2024)

	type testCase struct {
		name  string
		batch *transaction.Batch
		want  int
	}

	tests := []testCase{
		{name: "Profile wins", batch: &transaction.Batch{
			Profile:      &p,
			Transactions: []transaction.Transaction{{Date: day(2025, 2, 1)}},
		}, want: 2024},
		{name: "First dated transaction", batch: &transaction.Batch{
			Transactions: []transaction.Transaction{{}, {Date: day(2023, 5, 1)}},
		}, want: 2023},
		{name: "Empty batch", batch: &transaction.Batch{}, want: time.Now().Year()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, batchYear(tc.batch))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "234,50", FormatAmount(234.5))
	assert.Equal(t, "-59,50", FormatAmount(-59.5))
	assert.Equal(t, "15.01.2025", FormatDate(day(2025, 1, 15)))
}
