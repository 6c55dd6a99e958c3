package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jstittsworth/td-scout/internal/models"
)

func trailingWeeks(touches ...int) []models.PlayerWeekStat {
	rows := make([]models.PlayerWeekStat, len(touches))
	for i, n := range touches {
		rows[i] = models.PlayerWeekStat{Carries: n}
	}
	return rows
}

func TestBaselineFrom(t *testing.T) {
	b := BaselineFrom(trailingWeeks(10, 12, 14))
	assert.Equal(t, 12.0, b.Touches)
	assert.Equal(t, 3, b.Weeks)

	empty := BaselineFrom(nil)
	assert.Equal(t, 0, empty.Weeks)
}

func TestTrendScoreNoHistoryIsNeutral(t *testing.T) {
	current := models.PlayerWeekStat{Carries: 20}
	got := TrendScore(&current, TrendBaseline{})
	assert.Equal(t, 5.0, got.Score)
	assert.Contains(t, got.Reasoning, "no trailing usage")
}

func TestTrendScoreTouchDeltas(t *testing.T) {
	baseline := BaselineFrom(trailingWeeks(10, 10, 10))

	tests := []struct {
		name     string
		carries  int
		expected float64
	}{
		{"surging", 16, 8},   // +6 touches
		{"rising", 12, 6.5},  // +2 touches
		{"steady", 10, 5},
		{"declining", 6, 3},  // -4 touches
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := models.PlayerWeekStat{Carries: tt.carries}
			got := TrendScore(&current, baseline)
			assert.Equal(t, tt.expected, got.Score)
		})
	}
}

func TestTrendScoreRedZoneShareShift(t *testing.T) {
	// Trailing weeks: 10 touches, 1 red-zone opp each (10% share).
	history := []models.PlayerWeekStat{
		{Carries: 10, RedZoneCarries: 1},
		{Carries: 10, RedZoneCarries: 1},
	}
	baseline := BaselineFrom(history)

	growing := models.PlayerWeekStat{Carries: 10, RedZoneCarries: 3}
	got := TrendScore(&growing, baseline)
	assert.Equal(t, 6.5, got.Score)
	assert.Contains(t, got.Reasoning, "red-zone share up")

	shrinking := models.PlayerWeekStat{Carries: 10}
	got = TrendScore(&shrinking, baseline)
	assert.Equal(t, 4.0, got.Score)
}

func TestTrendScoreBounds(t *testing.T) {
	// Zero current usage against a heavy baseline stays at the floor or above.
	baseline := BaselineFrom(trailingWeeks(25, 25, 25))
	current := models.PlayerWeekStat{}
	got := TrendScore(&current, baseline)
	assert.GreaterOrEqual(t, got.Score, 0.0)
	assert.LessOrEqual(t, got.Score, 10.0)
}
