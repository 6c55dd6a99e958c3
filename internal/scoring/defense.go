package scoring

import (
	"fmt"

	"github.com/jstittsworth/td-scout/internal/models"
)

// DefenseTables holds the two opponent touchdown-rate tables keyed by
// canonical team name. Loaded tables are injected; this package never
// reaches for files or globals.
type DefenseTables struct {
	Rush map[string]models.DefenseStat
	Pass map[string]models.DefenseStat
}

// defense tiers over touchdowns allowed per game
const (
	defenseVeryWeakTD = 2.0
	defenseWeakTD     = 1.5
	defenseAverageTD  = 1.0
	defenseSolidTD    = 0.5

	defenseNeutral = 5.0
)

// DefenseScore rates how exploitable the opponent is for this player's
// position: running backs are scored against the rushing-touchdowns-allowed
// table, everyone else against the passing table. Output is in [1, 10].
// A missing opponent row yields a neutral score, never a failure.
func DefenseScore(position, opponent string, tables DefenseTables) SignalScore {
	table := tables.Pass
	label := "pass"
	if position == "RB" {
		table = tables.Rush
		label = "rush"
	}

	stat, ok := table[opponent]
	if !ok {
		return SignalScore{
			Score:     defenseNeutral,
			Reasoning: fmt.Sprintf("no %s defense data for %s, scoring neutral", label, opponent),
		}
	}

	perGame := stat.TouchdownsPerGame
	score := perGame * 3.0

	var tier string
	switch {
	case perGame >= defenseVeryWeakTD:
		score += 2
		tier = "very weak"
	case perGame >= defenseWeakTD:
		score += 1
		tier = "weak"
	case perGame >= defenseAverageTD:
		tier = "average"
	case perGame >= defenseSolidTD:
		score -= 1
		tier = "solid"
	default:
		score -= 2
		tier = "strong"
	}

	reasoning := fmt.Sprintf("%s allows %.2f %s TDs/game (%s, rank %d)",
		opponent, perGame, label, tier, stat.Rank)

	return SignalScore{
		Score:     clamp(score, 1, 10),
		Reasoning: reasoning,
	}
}
