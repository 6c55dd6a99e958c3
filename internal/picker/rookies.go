package picker

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/td-scout/internal/models"
	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/internal/scoring"
)

// VeteranChecker guards breakout detection against false positives:
// established players who missed the prior season (injury, holdout) would
// otherwise look like rookies by set difference alone.
type VeteranChecker interface {
	IsKnownVeteran(name string) bool
}

// VeteranList is a data-backed VeteranChecker.
type VeteranList map[string]bool

// NewVeteranList builds a checker from a name table.
func NewVeteranList(names []string) VeteranList {
	list := make(VeteranList, len(names))
	for _, n := range names {
		list[n] = true
	}
	return list
}

func (v VeteranList) IsKnownVeteran(name string) bool {
	return v[name]
}

// Booster config. Qualification needs both a rate and a floor so one big
// game does not mint a breakout.
const (
	breakoutMinPerGame    = 1.0
	breakoutMinTouchdowns = 2

	breakoutBaseline    = 5.0
	breakoutBoostFactor = 1.5
)

// Booster detects breakout scorers with no prior-season history and inflates
// their standing so they compete with established veterans. Runs before the
// final ranking so boosted and synthesized entries face quota selection on
// equal footing.
type Booster struct {
	veterans VeteranChecker
	resolver *nfl.Resolver
	logger   *logrus.Logger
}

// NewBooster builds a breakout booster.
func NewBooster(veterans VeteranChecker, resolver *nfl.Resolver, logger *logrus.Logger) *Booster {
	return &Booster{
		veterans: veterans,
		resolver: resolver,
		logger:   logger,
	}
}

// Boost adjusts or augments the candidate pool from two seasons of touchdown
// tables. A qualifying player already in the pool gets a score bump
// proportional to their scoring rate; one missing from the pool is
// synthesized at a baseline-plus-consistency score. Returns the adjusted
// pool; input order is preserved for existing entries.
func (b *Booster) Boost(candidates []scoring.Recommendation, current, prior []models.SeasonTouchdown, schedule *nfl.WeekSchedule) []scoring.Recommendation {
	priorScorers := make(map[string]bool, len(prior))
	for _, row := range prior {
		priorScorers[row.PlayerName] = true
	}

	byName := make(map[string]int, len(candidates))
	for i := range candidates {
		byName[candidates[i].PlayerName] = i
	}

	out := candidates
	seen := make(map[string]bool)
	for _, row := range current {
		if seen[row.PlayerName] {
			continue
		}
		seen[row.PlayerName] = true

		if priorScorers[row.PlayerName] || b.veterans.IsKnownVeteran(row.PlayerName) {
			continue
		}
		perGame := row.PerGame()
		if perGame < breakoutMinPerGame || row.Touchdowns < breakoutMinTouchdowns {
			continue
		}

		if i, ok := byName[row.PlayerName]; ok {
			boost := perGame * breakoutBoostFactor
			out[i].FinalScore = clampScore(out[i].FinalScore + boost)
			out[i].Reasoning = append(out[i].Reasoning,
				fmt.Sprintf("breakout boost: %.1f TD/game with no prior-season history", perGame))
			b.logger.Infof("Boosted breakout %s (+%.1f)", row.PlayerName, boost)
			continue
		}

		team := b.resolver.Standardize(row.Team)
		opponent, _ := schedule.OpponentOf(team)
		synth := scoring.Recommendation{
			PlayerName: row.PlayerName,
			Team:       team,
			Opponent:   opponent,
			FinalScore: clampScore(breakoutBaseline + perGame*breakoutBoostFactor),
			Tier:       scoring.TierSpeculative,
			Reasoning: []string{
				fmt.Sprintf("synthesized breakout: %d TDs in %d games, absent from prior season", row.Touchdowns, row.Games),
			},
		}
		if row.Category == models.CategoryRush {
			synth.Position = "RB"
		} else {
			synth.Position = "WR"
		}
		out = append(out, synth)
		b.logger.Infof("Synthesized breakout candidate %s (%.0f)", row.PlayerName, synth.FinalScore)
	}

	return out
}

func clampScore(v float64) float64 {
	if v > 10 {
		return 10
	}
	if v < 0 {
		return 0
	}
	return v
}
