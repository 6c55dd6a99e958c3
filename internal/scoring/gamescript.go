package scoring

import (
	"fmt"
	"strings"
)

// game-script thresholds
const (
	impliedTotalHigh   = 27.0
	impliedTotalGood   = 24.0
	impliedTotalAvg    = 20.0
	heavyUnderdogLine  = -7.0
	heavyFavoriteLine  = 7.0
	fastPacePlays      = 65.0
)

// GameScriptScore rates the expected flow of the game for this player. High
// implied totals and favored scripts add score; a heavy underdog script
// penalizes running backs harder than pass-catchers, since a trailing team
// abandons the run before it abandons the pass. Output is in [0, 10].
func GameScriptScore(position string, ctx GameContext) SignalScore {
	var reasons []string

	var score float64
	switch {
	case ctx.ImpliedTotal >= impliedTotalHigh:
		score = 6
		reasons = append(reasons, fmt.Sprintf("high implied total (%.1f)", ctx.ImpliedTotal))
	case ctx.ImpliedTotal >= impliedTotalGood:
		score = 5
		reasons = append(reasons, fmt.Sprintf("good implied total (%.1f)", ctx.ImpliedTotal))
	case ctx.ImpliedTotal >= impliedTotalAvg:
		score = 4
		reasons = append(reasons, fmt.Sprintf("average implied total (%.1f)", ctx.ImpliedTotal))
	default:
		score = 2
		reasons = append(reasons, fmt.Sprintf("low implied total (%.1f)", ctx.ImpliedTotal))
	}

	switch {
	case ctx.Spread >= heavyFavoriteLine:
		score += 2
		reasons = append(reasons, fmt.Sprintf("heavy favorite (%.1f)", ctx.Spread))
	case ctx.Spread > 0:
		score++
		reasons = append(reasons, fmt.Sprintf("favored (%.1f)", ctx.Spread))
	case ctx.Spread <= heavyUnderdogLine:
		if position == "RB" {
			score -= 2
			reasons = append(reasons, fmt.Sprintf("heavy underdog (%.1f), rushing volume at risk", ctx.Spread))
		} else {
			score--
			reasons = append(reasons, fmt.Sprintf("heavy underdog (%.1f)", ctx.Spread))
		}
	}

	if ctx.PlaysPerGame >= fastPacePlays {
		score++
		reasons = append(reasons, fmt.Sprintf("fast pace (%.1f plays/game)", ctx.PlaysPerGame))
	}

	return SignalScore{
		Score:     clamp(score, 0, 10),
		Reasoning: strings.Join(reasons, ", "),
	}
}
