package service

import (
	"testing"
	"time"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func TestNextOccurrenceNone(t *testing.T) {
	_, ok := NextOccurrence(date(2026, 1, 1), model.RecurrenceNone, date(2026, 2, 1))
	assert.False(t, ok)
}

func TestNextOccurrenceFutureAnchor(t *testing.T) {
	anchor := date(2026, 6, 1)
	next, ok := NextOccurrence(anchor, model.RecurrenceDaily, date(2026, 1, 1))
	require.True(t, ok)
	assert.Equal(t, anchor, next)
}

func TestNextOccurrenceDaily(t *testing.T) {
	next, ok := NextOccurrence(date(2026, 1, 1), model.RecurrenceDaily, date(2026, 1, 10))
	require.True(t, ok)
	assert.Equal(t, date(2026, 1, 11), next)

	// after 正好落在某次发生时间上, 取下一次
	next, ok = NextOccurrence(date(2026, 1, 1), model.RecurrenceDaily, date(2026, 1, 11))
	require.True(t, ok)
	assert.Equal(t, date(2026, 1, 12), next)
}

func TestNextOccurrenceWeekly(t *testing.T) {
	// 周一锚点, 下一次仍是周一
	anchor := date(2026, 1, 5)
	next, ok := NextOccurrence(anchor, model.RecurrenceWeekly, date(2026, 1, 20))
	require.True(t, ok)
	assert.Equal(t, date(2026, 1, 26), next)
	assert.Equal(t, anchor.Weekday(), next.Weekday())
}

func TestNextOccurrenceMonthlyClamped(t *testing.T) {
	// 1月31日锚点: 2月收缩到28日
	next, ok := NextOccurrence(date(2026, 1, 31), model.RecurrenceMonthly, date(2026, 2, 1))
	require.True(t, ok)
	assert.Equal(t, date(2026, 2, 28), next)

	// 3月恢复到31日
	next, ok = NextOccurrence(date(2026, 1, 31), model.RecurrenceMonthly, date(2026, 3, 1))
	require.True(t, ok)
	assert.Equal(t, date(2026, 3, 31), next)
}

func TestNextOccurrenceMonthlyLeapYear(t *testing.T) {
	// 2028 为闰年, 2月收缩到29日
	next, ok := NextOccurrence(date(2028, 1, 31), model.RecurrenceMonthly, date(2028, 2, 1))
	require.True(t, ok)
	assert.Equal(t, date(2028, 2, 29), next)
}

func TestNextOccurrenceYearly(t *testing.T) {
	next, ok := NextOccurrence(date(2026, 3, 15), model.RecurrenceYearly, date(2026, 6, 1))
	require.True(t, ok)
	assert.Equal(t, date(2027, 3, 15), next)

	// 闰日锚点在平年收缩到2月28日
	next, ok = NextOccurrence(date(2028, 2, 29), model.RecurrenceYearly, date(2028, 3, 1))
	require.True(t, ok)
	assert.Equal(t, date(2029, 2, 28), next)
}
