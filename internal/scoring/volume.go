package scoring

import (
	"fmt"

	"github.com/jstittsworth/td-scout/internal/models"
)

// Volume scoring constants. Thresholds are inclusive on the lower bound.
const (
	volumeEliteTouches    = 20
	volumeGoodTouches     = 15
	volumeModerateTouches = 10
	volumeLowTouches      = 5

	volumeMax = 10.0
)

// VolumeScore rates a player-week on raw opportunity: total touches, red-zone
// usage, and dual-threat involvement. Output is in [0, 10].
func VolumeScore(stat *models.PlayerWeekStat) SignalScore {
	touches := stat.Touches()
	rzOpps := stat.RedZoneOpportunities()

	var score float64
	var detail string
	switch {
	case touches >= volumeEliteTouches:
		score = 5
		detail = fmt.Sprintf("elite workload (%d touches)", touches)
	case touches >= volumeGoodTouches:
		score = 4
		detail = fmt.Sprintf("strong workload (%d touches)", touches)
	case touches >= volumeModerateTouches:
		score = 3
		detail = fmt.Sprintf("moderate workload (%d touches)", touches)
	case touches >= volumeLowTouches:
		score = 2
		detail = fmt.Sprintf("limited workload (%d touches)", touches)
	default:
		score = 1
		detail = fmt.Sprintf("minimal workload (%d touches)", touches)
	}

	// Red-zone opportunities carry the most touchdown signal of any single
	// stat, so they add an independent tiered bonus.
	switch {
	case rzOpps >= 3:
		score += 3
		detail += fmt.Sprintf(", %d red-zone opportunities", rzOpps)
	case rzOpps >= 2:
		score += 2
		detail += fmt.Sprintf(", %d red-zone opportunities", rzOpps)
	case rzOpps >= 1:
		score += 1
		detail += ", 1 red-zone opportunity"
	}

	// Dual-threat usage: involved in both the run and pass game.
	if stat.Carries >= 5 && stat.Targets >= 3 {
		score++
		detail += ", dual-threat usage"
	}

	return SignalScore{
		Score:     clamp(score, 0, volumeMax),
		Reasoning: detail,
	}
}
