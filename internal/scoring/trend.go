package scoring

import (
	"fmt"
	"strings"

	"github.com/jstittsworth/td-scout/internal/models"
)

// trend thresholds
const (
	trendTouchSurge   = 5
	trendTouchBump    = 2
	trendTouchDecline = -3

	trendShareSurge = 0.05
)

// TrendBaseline is the trailing usage a current week is compared against,
// typically an average of the preceding weeks.
type TrendBaseline struct {
	Touches      float64 `json:"touches"`
	RedZoneShare float64 `json:"red_zone_share"`
	Weeks        int     `json:"weeks"`
}

// BaselineFrom averages trailing player-week rows into a TrendBaseline.
func BaselineFrom(history []models.PlayerWeekStat) TrendBaseline {
	if len(history) == 0 {
		return TrendBaseline{}
	}
	var touches, rzShare float64
	for i := range history {
		touches += float64(history[i].Touches())
		rzShare += redZoneShare(&history[i])
	}
	n := float64(len(history))
	return TrendBaseline{
		Touches:      touches / n,
		RedZoneShare: rzShare / n,
		Weeks:        len(history),
	}
}

func redZoneShare(stat *models.PlayerWeekStat) float64 {
	touches := stat.Touches()
	if touches == 0 {
		return 0
	}
	return float64(stat.RedZoneOpportunities()) / float64(touches)
}

// TrendScore compares the current week's usage against the trailing
// baseline. Rising touch counts and a growing red-zone share add score,
// declines subtract. Output is in [0, 10]; no history scores neutral.
func TrendScore(current *models.PlayerWeekStat, baseline TrendBaseline) SignalScore {
	if baseline.Weeks == 0 {
		return SignalScore{
			Score:     5,
			Reasoning: "no trailing usage to compare, scoring neutral",
		}
	}

	score := 5.0
	var reasons []string

	touchDelta := float64(current.Touches()) - baseline.Touches
	switch {
	case touchDelta >= trendTouchSurge:
		score += 3
		reasons = append(reasons, fmt.Sprintf("touches up %.1f over trailing %d weeks", touchDelta, baseline.Weeks))
	case touchDelta >= trendTouchBump:
		score += 1.5
		reasons = append(reasons, fmt.Sprintf("touches up %.1f", touchDelta))
	case touchDelta <= trendTouchDecline:
		score -= 2
		reasons = append(reasons, fmt.Sprintf("touches down %.1f", -touchDelta))
	default:
		reasons = append(reasons, "usage steady")
	}

	shareDelta := redZoneShare(current) - baseline.RedZoneShare
	if shareDelta >= trendShareSurge {
		score += 1.5
		reasons = append(reasons, fmt.Sprintf("red-zone share up %.1f%%", shareDelta*100))
	} else if shareDelta <= -trendShareSurge {
		score--
		reasons = append(reasons, fmt.Sprintf("red-zone share down %.1f%%", -shareDelta*100))
	}

	return SignalScore{
		Score:     clamp(score, 0, 10),
		Reasoning: strings.Join(reasons, ", "),
	}
}
