package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoricalScoreTiers(t *testing.T) {
	assert.Equal(t, 9.0, HistoricalScore(4).Score)
	assert.Equal(t, 9.0, HistoricalScore(3).Score)
	assert.Equal(t, 7.0, HistoricalScore(2).Score)
	assert.Equal(t, 4.0, HistoricalScore(1).Score)
	assert.Equal(t, 0.0, HistoricalScore(0).Score)
}

func TestProfileByName(t *testing.T) {
	classic, err := ProfileByName("classic")
	assert.NoError(t, err)
	assert.NoError(t, classic.Validate())
	assert.Len(t, classic.Weights, 3)

	balanced, err := ProfileByName("balanced")
	assert.NoError(t, err)
	assert.NoError(t, balanced.Validate())

	_, err = ProfileByName("aggressive")
	assert.Error(t, err)
}

func TestWeightProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		weights []SignalWeight
		wantErr bool
	}{
		{"sums to one", []SignalWeight{{SignalVolume, 0.7}, {SignalDefense, 0.3}}, false},
		{"sums low", []SignalWeight{{SignalVolume, 0.5}, {SignalDefense, 0.3}}, true},
		{"sums high", []SignalWeight{{SignalVolume, 0.8}, {SignalDefense, 0.3}}, true},
		{"negative weight", []SignalWeight{{SignalVolume, 1.5}, {SignalDefense, -0.5}}, true},
		{"empty", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := WeightProfile{Name: "test", Weights: tt.weights}
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCombineClassicProfile(t *testing.T) {
	classic, _ := ProfileByName("classic")

	rec := Recommendation{
		VolumeScore:     8,
		DefenseScore:    6,
		GameScriptScore: 5,
		RedZoneOpps:     3,
	}
	Combine(&rec, classic)

	// 0.6*8 + 0.3*6 + 0.1*5 = 7.1, rounded to 7.
	assert.Equal(t, 7.0, rec.FinalScore)
	assert.Equal(t, TierSolid, rec.Tier)
}

func TestCombineIgnoresUnweightedSignals(t *testing.T) {
	classic, _ := ProfileByName("classic")

	rec := Recommendation{
		VolumeScore:     8,
		DefenseScore:    6,
		GameScriptScore: 5,
		UsageTrendScore: 10,
		HistoricalScore: 10,
	}
	Combine(&rec, classic)
	assert.Equal(t, 7.0, rec.FinalScore)
}

func TestTierGates(t *testing.T) {
	tests := []struct {
		name     string
		final    float64
		rzOpps   int
		expected Tier
	}{
		{"strong needs score and red zone", 8, 2, TierStrong},
		{"high score without red zone stays solid", 9, 1, TierSolid},
		{"solid", 6, 0, TierSolid},
		{"speculative", 4, 5, TierSpeculative},
		{"dart", 3, 0, TierDart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tierFor(tt.final, tt.rzOpps))
		})
	}
}

func TestRankOrdering(t *testing.T) {
	recs := []Recommendation{
		{PlayerName: "C", FinalScore: 6, VolumeScore: 5},
		{PlayerName: "A", FinalScore: 8, VolumeScore: 7},
		{PlayerName: "B", FinalScore: 8, VolumeScore: 9},
		{PlayerName: "D", FinalScore: 6, VolumeScore: 5},
	}
	Rank(recs)

	// Final score first, volume breaks the 8s, name breaks the identical 6s.
	assert.Equal(t, "B", recs[0].PlayerName)
	assert.Equal(t, "A", recs[1].PlayerName)
	assert.Equal(t, "C", recs[2].PlayerName)
	assert.Equal(t, "D", recs[3].PlayerName)
}
