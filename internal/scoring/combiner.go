package scoring

import (
	"fmt"
	"math"
	"sort"
)

// SignalWeight is one (signal, weight) entry in a profile.
type SignalWeight struct {
	Signal Signal  `json:"signal"`
	Weight float64 `json:"weight"`
}

// WeightProfile is a named, ordered weighting over signals. Weights must sum
// to 1.0; the combiner is agnostic to which signals a profile includes.
type WeightProfile struct {
	Name    string         `json:"name"`
	Weights []SignalWeight `json:"weights"`
}

const weightSumTolerance = 1e-6

// Validate checks that the profile's weights sum to 1.0.
func (p WeightProfile) Validate() error {
	if len(p.Weights) == 0 {
		return fmt.Errorf("profile %q has no weights", p.Name)
	}
	var sum float64
	for _, w := range p.Weights {
		if w.Weight < 0 {
			return fmt.Errorf("profile %q: negative weight for %s", p.Name, w.Signal)
		}
		sum += w.Weight
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("profile %q: weights sum to %.4f, want 1.0", p.Name, sum)
	}
	return nil
}

// Built-in profiles. "classic" is the original 60/30/10 three-signal view;
// "balanced" folds in usage trend and trailing production.
var profiles = map[string]WeightProfile{
	"classic": {
		Name: "classic",
		Weights: []SignalWeight{
			{Signal: SignalVolume, Weight: 0.60},
			{Signal: SignalDefense, Weight: 0.30},
			{Signal: SignalGameScript, Weight: 0.10},
		},
	},
	"balanced": {
		Name: "balanced",
		Weights: []SignalWeight{
			{Signal: SignalVolume, Weight: 0.50},
			{Signal: SignalDefense, Weight: 0.25},
			{Signal: SignalTrend, Weight: 0.15},
			{Signal: SignalHistorical, Weight: 0.10},
		},
	},
}

// ProfileByName returns a built-in weight profile.
func ProfileByName(name string) (WeightProfile, error) {
	p, ok := profiles[name]
	if !ok {
		return WeightProfile{}, fmt.Errorf("unknown weight profile %q", name)
	}
	return p, nil
}

// Combine computes the final score for a recommendation under the given
// profile and assigns its tier. The tier gate is a composite: "Strong Play"
// requires red-zone opportunities on top of the score threshold, since a
// high score built on volume alone is a weaker touchdown signal.
func Combine(rec *Recommendation, profile WeightProfile) {
	var final float64
	for _, w := range profile.Weights {
		final += w.Weight * rec.signalValue(w.Signal)
	}
	rec.FinalScore = math.Round(final)
	rec.Tier = tierFor(rec.FinalScore, rec.RedZoneOpps)
}

func tierFor(finalScore float64, redZoneOpps int) Tier {
	switch {
	case finalScore >= 8 && redZoneOpps >= 2:
		return TierStrong
	case finalScore >= 6:
		return TierSolid
	case finalScore >= 4:
		return TierSpeculative
	default:
		return TierDart
	}
}

// Rank orders recommendations best-first. Ties break on volume score, then
// name, so a fixed input always yields the same order.
func Rank(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].FinalScore != recs[j].FinalScore {
			return recs[i].FinalScore > recs[j].FinalScore
		}
		if recs[i].VolumeScore != recs[j].VolumeScore {
			return recs[i].VolumeScore > recs[j].VolumeScore
		}
		return recs[i].PlayerName < recs[j].PlayerName
	})
}
