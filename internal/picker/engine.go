package picker

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/td-scout/internal/models"
	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/internal/scoring"
)

// Inputs carries every table one engine run reads. Tables are loaded by the
// caller and passed in; the engine itself never touches storage, which keeps
// a run reproducible given fixed inputs and fixed validation outcomes.
type Inputs struct {
	Season   int
	Week     int
	Matchups []models.Matchup

	// Current-week usage plus trailing weeks per player for the trend signal.
	PlayerWeeks []models.PlayerWeekStat
	History     map[string][]models.PlayerWeekStat

	Defense scoring.DefenseTables

	// Market context per canonical team name.
	GameContexts map[string]scoring.GameContext

	// Trailing 3-week touchdown totals per player.
	TrailingTouchdowns map[string]int

	// Season touchdown tables for breakout detection.
	CurrentSeasonTDs []models.SeasonTouchdown
	PriorSeasonTDs   []models.SeasonTouchdown

	// Injury report keyed by player name.
	Injuries map[string]Status
}

// Result is one completed run.
type Result struct {
	Season          int                      `json:"season"`
	Week            int                      `json:"week"`
	WeightProfile   string                   `json:"weight_profile"`
	Recommendations []scoring.Recommendation `json:"recommendations"`
	Candidates      int                      `json:"candidates"`
	Rejected        int                      `json:"rejected"`
	Duration        time.Duration            `json:"-"`
}

// Engine runs the full weekly pipeline: matchup resolution, signal scoring,
// breakout boosting, weighted ranking, and quota selection.
type Engine struct {
	resolver *nfl.Resolver
	profile  scoring.WeightProfile
	booster  *Booster
	selector *Selector
	logger   *logrus.Logger
}

// NewEngine wires the pipeline. The profile must validate; a bad profile is
// a configuration error, not a data-quality one.
func NewEngine(resolver *nfl.Resolver, profile scoring.WeightProfile, booster *Booster, selector *Selector, logger *logrus.Logger) (*Engine, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weight profile: %w", err)
	}
	return &Engine{
		resolver: resolver,
		profile:  profile,
		booster:  booster,
		selector: selector,
		logger:   logger,
	}, nil
}

// Run produces the final recommendation list for one week. Empty input
// tables yield an empty list, not an error, so callers can tell "nothing to
// report" from a failed run.
func (e *Engine) Run(ctx context.Context, in Inputs) (*Result, error) {
	start := time.Now()
	result := &Result{
		Season:        in.Season,
		Week:          in.Week,
		WeightProfile: e.profile.Name,
	}

	if len(in.PlayerWeeks) == 0 {
		e.logger.Warnf("No volume data for week %d, returning empty list", in.Week)
		result.Recommendations = []scoring.Recommendation{}
		result.Duration = time.Since(start)
		return result, nil
	}

	schedule := nfl.NewWeekSchedule(in.Week, in.Matchups, e.resolver)
	byeTeams := schedule.TeamsOnBye()

	candidates := make([]scoring.Recommendation, 0, len(in.PlayerWeeks))
	for i := range in.PlayerWeeks {
		stat := &in.PlayerWeeks[i]
		team := e.resolver.Standardize(stat.Team)

		opponent, ok := schedule.OpponentOf(team)
		if !ok {
			// Unresolved name or bye; a normal skip, logged for operators.
			e.logger.Infof("No opponent for %s (%s) in week %d, skipping", stat.PlayerName, stat.Team, in.Week)
			continue
		}

		rec := e.scoreCandidate(stat, team, opponent, in)
		candidates = append(candidates, rec)
	}

	// Breakout pass runs before ranking so boosted and synthesized entries
	// compete for quota slots on equal footing.
	candidates = e.booster.Boost(candidates, in.CurrentSeasonTDs, in.PriorSeasonTDs, schedule)
	scoring.Rank(candidates)
	result.Candidates = len(candidates)

	selected, err := e.selector.Select(ctx, candidates, byeTeams, in.Injuries)
	if err != nil {
		return nil, err
	}

	result.Recommendations = selected
	result.Rejected = result.Candidates - len(selected)
	result.Duration = time.Since(start)
	e.logger.Infof("Week %d run complete: %d candidates, %d selected, %s",
		in.Week, result.Candidates, len(selected), result.Duration.Round(time.Millisecond))
	return result, nil
}

func (e *Engine) scoreCandidate(stat *models.PlayerWeekStat, team, opponent string, in Inputs) scoring.Recommendation {
	volume := scoring.VolumeScore(stat)
	defense := scoring.DefenseScore(stat.Position, opponent, in.Defense)
	gameScript := scoring.GameScriptScore(stat.Position, in.GameContexts[team])
	trend := scoring.TrendScore(stat, scoring.BaselineFrom(in.History[stat.PlayerName]))
	historical := scoring.HistoricalScore(in.TrailingTouchdowns[stat.PlayerName])

	rec := scoring.Recommendation{
		PlayerName:      stat.PlayerName,
		Team:            team,
		Opponent:        opponent,
		Position:        stat.Position,
		VolumeScore:     volume.Score,
		DefenseScore:    defense.Score,
		GameScriptScore: gameScript.Score,
		UsageTrendScore: trend.Score,
		HistoricalScore: historical.Score,
		RedZoneOpps:     stat.RedZoneOpportunities(),
		Reasoning: []string{
			"volume: " + volume.Reasoning,
			"defense: " + defense.Reasoning,
			"game script: " + gameScript.Reasoning,
			"trend: " + trend.Reasoning,
			"historical: " + historical.Reasoning,
		},
	}
	scoring.Combine(&rec, e.profile)
	return rec
}
