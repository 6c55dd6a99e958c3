package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/td-scout/internal/models"
	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/internal/scoring"
)

func testBooster(veterans ...string) (*Booster, *nfl.WeekSchedule) {
	resolver := nfl.NewResolver()
	schedule := nfl.NewWeekSchedule(6, []models.Matchup{
		{Week: 6, AwayTeam: "Buffalo Bills", HomeTeam: "Miami Dolphins"},
	}, resolver)
	return NewBooster(NewVeteranList(veterans), resolver, testLogger()), schedule
}

func tdRow(name, team string, tds, games int, category models.StatCategory) models.SeasonTouchdown {
	return models.SeasonTouchdown{
		PlayerName: name,
		Team:       team,
		Touchdowns: tds,
		Games:      games,
		Category:   category,
	}
}

func TestBoostExistingCandidate(t *testing.T) {
	b, schedule := testBooster()

	candidates := []scoring.Recommendation{
		{PlayerName: "Breakout Back", Team: "Buffalo Bills", FinalScore: 6},
	}
	current := []models.SeasonTouchdown{tdRow("Breakout Back", "BUF", 6, 5, models.CategoryRush)}

	out := b.Boost(candidates, current, nil, schedule)

	require.Len(t, out, 1)
	// 6 + 1.2 TD/game * 1.5 = 7.8
	assert.InDelta(t, 7.8, out[0].FinalScore, 0.001)
	assert.Contains(t, out[0].Reasoning[len(out[0].Reasoning)-1], "breakout boost")
}

func TestBoostSynthesizesMissingCandidate(t *testing.T) {
	b, schedule := testBooster()

	current := []models.SeasonTouchdown{tdRow("Unknown Rookie", "BUF", 5, 5, models.CategoryRush)}
	out := b.Boost(nil, current, nil, schedule)

	require.Len(t, out, 1)
	synth := out[0]
	assert.Equal(t, "Unknown Rookie", synth.PlayerName)
	assert.Equal(t, "Buffalo Bills", synth.Team)
	assert.Equal(t, "Miami Dolphins", synth.Opponent)
	assert.Equal(t, "RB", synth.Position)
	// 5.0 baseline + 1.0 TD/game * 1.5 = 6.5
	assert.InDelta(t, 6.5, synth.FinalScore, 0.001)
	assert.Equal(t, scoring.TierSpeculative, synth.Tier)
}

func TestBoostSynthesizedPassCatcherIsWR(t *testing.T) {
	b, schedule := testBooster()

	current := []models.SeasonTouchdown{tdRow("Slot Rookie", "MIA", 5, 5, models.CategoryPass)}
	out := b.Boost(nil, current, nil, schedule)

	require.Len(t, out, 1)
	assert.Equal(t, "WR", out[0].Position)
}

func TestBoostSkipsPriorSeasonScorers(t *testing.T) {
	b, schedule := testBooster()

	current := []models.SeasonTouchdown{tdRow("Established Guy", "BUF", 8, 5, models.CategoryRush)}
	prior := []models.SeasonTouchdown{tdRow("Established Guy", "BUF", 10, 17, models.CategoryRush)}

	out := b.Boost(nil, current, prior, schedule)
	assert.Empty(t, out)
}

func TestBoostSkipsKnownVeterans(t *testing.T) {
	// A veteran who missed the prior season looks like a rookie by set
	// difference alone; the veteran list catches them.
	b, schedule := testBooster("Comeback Vet")

	current := []models.SeasonTouchdown{tdRow("Comeback Vet", "BUF", 6, 5, models.CategoryRush)}
	out := b.Boost(nil, current, nil, schedule)
	assert.Empty(t, out)
}

func TestBoostRequiresRateAndFloor(t *testing.T) {
	b, schedule := testBooster()

	// One TD in one game clears the rate but not the floor.
	fluke := []models.SeasonTouchdown{tdRow("One Hit Wonder", "BUF", 1, 1, models.CategoryRush)}
	assert.Empty(t, b.Boost(nil, fluke, nil, schedule))

	// Three TDs across five games clears the floor but not the rate.
	slow := []models.SeasonTouchdown{tdRow("Slow Burner", "BUF", 3, 5, models.CategoryRush)}
	assert.Empty(t, b.Boost(nil, slow, nil, schedule))
}

func TestBoostScoreStaysClamped(t *testing.T) {
	b, schedule := testBooster()

	candidates := []scoring.Recommendation{
		{PlayerName: "Ceiling Case", Team: "Buffalo Bills", FinalScore: 9.5},
	}
	current := []models.SeasonTouchdown{tdRow("Ceiling Case", "BUF", 10, 5, models.CategoryRush)}

	out := b.Boost(candidates, current, nil, schedule)
	require.Len(t, out, 1)
	assert.Equal(t, 10.0, out[0].FinalScore)
}
