package scoring

// SignalScore pairs a numeric score with the reasoning behind it. Scorers
// never return a bare number; the reasoning trail is what makes a final
// list auditable.
type SignalScore struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// Signal names the independent scoring dimensions a weight profile can
// reference.
type Signal string

const (
	SignalVolume     Signal = "volume"
	SignalDefense    Signal = "defense"
	SignalGameScript Signal = "gamescript"
	SignalTrend      Signal = "trend"
	SignalHistorical Signal = "historical"
)

// GameContext carries the market view of one game from a team's
// perspective: the team's implied scoring total, the point spread (negative
// when the team is an underdog), and its offensive pace.
type GameContext struct {
	ImpliedTotal float64 `json:"implied_total"`
	Spread       float64 `json:"spread"`
	PlaysPerGame float64 `json:"plays_per_game"`
}

// Eligibility is a candidate's status after the filter passes.
type Eligibility string

const (
	EligibilityActive     Eligibility = "active"
	EligibilityBye        Eligibility = "bye"
	EligibilityInjured    Eligibility = "injured"
	EligibilityUnverified Eligibility = "unverified"
)

// Tier labels how strongly a recommendation is held.
type Tier string

const (
	TierStrong      Tier = "Strong Play"
	TierSolid       Tier = "Solid Play"
	TierSpeculative Tier = "Speculative"
	TierDart        Tier = "Dart Throw"
)

// Recommendation is one ranked candidate. Built once by the combiner,
// adjusted only by the rookie booster (score bump) and the selector
// (eligibility), immutable after the engine returns its list.
type Recommendation struct {
	PlayerName      string      `json:"player_name"`
	Team            string      `json:"team"`
	Opponent        string      `json:"opponent"`
	Position        string      `json:"position"`
	VolumeScore     float64     `json:"volume_score"`
	DefenseScore    float64     `json:"defense_score"`
	GameScriptScore float64     `json:"game_script_score"`
	UsageTrendScore float64     `json:"usage_trend_score"`
	HistoricalScore float64     `json:"historical_score"`
	FinalScore      float64     `json:"final_score"`
	Tier            Tier        `json:"tier"`
	Eligibility     Eligibility `json:"eligibility"`
	RedZoneOpps     int         `json:"red_zone_opportunities"`
	Reasoning       []string    `json:"reasoning"`
}

// signalValue returns the stored sub-score for a named signal.
func (r *Recommendation) signalValue(s Signal) float64 {
	switch s {
	case SignalVolume:
		return r.VolumeScore
	case SignalDefense:
		return r.DefenseScore
	case SignalGameScript:
		return r.GameScriptScore
	case SignalTrend:
		return r.UsageTrendScore
	case SignalHistorical:
		return r.HistoricalScore
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
