package scoring

import (
	"fmt"
)

// HistoricalScore rates trailing touchdown production over the last three
// weeks, tiered. Output is in [0, 10].
func HistoricalScore(trailingTouchdowns int) SignalScore {
	var score float64
	switch {
	case trailingTouchdowns >= 3:
		score = 9
	case trailingTouchdowns >= 2:
		score = 7
	case trailingTouchdowns >= 1:
		score = 4
	default:
		score = 0
	}

	return SignalScore{
		Score:     score,
		Reasoning: fmt.Sprintf("%d touchdowns over trailing 3 weeks", trailingTouchdowns),
	}
}
