package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviousMonth(t *testing.T) {
	tests := map[string]struct {
		now   time.Time
		start string
		end   string
	}{
		"first day of month": {
			now:   time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC),
			start: "2024-06-01",
			end:   "2024-07-01",
		},
		"middle of month": {
			now:   time.Date(2024, time.July, 17, 13, 45, 0, 0, time.UTC),
			start: "2024-06-01",
			end:   "2024-07-01",
		},
		"last day of a 31 day month": {
			now:   time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC),
			start: "2024-02-01",
			end:   "2024-03-01",
		},
		"january rolls back to december": {
			now:   time.Date(2025, time.January, 15, 8, 0, 0, 0, time.UTC),
			start: "2024-12-01",
			end:   "2025-01-01",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			w := PreviousMonth(tt.now)
			assert.Equal(t, tt.start, w.StartDate())
			assert.Equal(t, tt.end, w.EndDate())
			assert.Equal(t, 1, w.Start.Day())
			assert.Equal(t, 1, w.End.Day())
		})
	}
}

func TestPreviousMonthEveryDay(t *testing.T) {
	day := time.Date(2023, time.January, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 800; i++ {
		w := PreviousMonth(day)
		require.Equal(t, day.Year(), w.End.Year())
		require.Equal(t, day.Month(), w.End.Month())
		require.Equal(t, 1, w.End.Day())
		require.Equal(t, w.End, w.Start.AddDate(0, 1, 0))
		day = day.AddDate(0, 0, 1)
	}
}

func TestReportFiltered(t *testing.T) {
	r := Report{
		Records: []CostRecord{
			{AccountID: "1", Cost: decimal.RequireFromString("10.25")},
			{AccountID: "2", Cost: decimal.RequireFromString("4.75")},
		},
		Total:   decimal.RequireFromString("16.00"),
		Fetched: 3,
	}
	assert.Equal(t, 1, r.Filtered())
}

func TestDeliveryReport(t *testing.T) {
	d := DeliveryReport{Results: []DeliveryResult{
		{Recipient: "a@x.com", MessageID: "m-1"},
		{Recipient: "bad@x.com", Err: errors.New("address rejected")},
		{Recipient: "c@x.com", MessageID: "m-3"},
	}}

	assert.Equal(t, 2, d.Sent())
	assert.Equal(t, 1, d.Failed())
	require.Error(t, d.Err())
	assert.Contains(t, d.Err().Error(), "bad@x.com: address rejected")

	assert.NoError(t, DeliveryReport{Results: []DeliveryResult{{Recipient: "a@x.com"}}}.Err())
}

func TestBudgetUsedPercent(t *testing.T) {
	assert.InDelta(t, 50.0, BudgetInfo{Limit: 200, Actual: 100}.UsedPercent(), 0.001)
	assert.Equal(t, 0.0, BudgetInfo{Limit: 0, Actual: 100}.UsedPercent())
}

func TestFormatCost(t *testing.T) {
	tests := map[string]struct {
		value  string
		order  string
		expect string
	}{
		"default pads two decimals":    {value: "9.5", order: "cost", expect: "9.50"},
		"default keeps integers fixed": {value: "100", order: "cost", expect: "100.00"},
		"legacy trims zeros":           {value: "9.50", order: "legacy", expect: "9.5"},
		"legacy integer gets .0":       {value: "100", order: "legacy", expect: "100.0"},
		"legacy keeps two decimals":    {value: "10.25", order: "legacy", expect: "10.25"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expect, FormatCost(decimal.RequireFromString(tt.value), tt.order))
		})
	}
}

func TestReportBaseName(t *testing.T) {
	w := PreviousMonth(time.Date(2024, time.July, 3, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "cost-report-2024-06-01-2024-07-01", w.ReportBaseName())
}
