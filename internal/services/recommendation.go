package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/jstittsworth/td-scout/internal/models"
	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/internal/picker"
	"github.com/jstittsworth/td-scout/internal/scoring"
	"github.com/jstittsworth/td-scout/pkg/config"
	"github.com/jstittsworth/td-scout/pkg/database"
)

// trailingWindow is how many weeks back the historical signal looks.
const trailingWindow = 3

// RecommendationService loads the weekly tables, runs the engine, persists
// the run for audit, and fans results out to cache, websocket, and SMS.
type RecommendationService struct {
	db        *database.DB
	cache     *CacheService
	cfg       *config.Config
	resolver  *nfl.Resolver
	validator picker.StatusValidator
	hub       *WebSocketHub
	notifier  *Notifier
	logger    *logrus.Logger
}

// NewRecommendationService wires the weekly pipeline. hub and notifier may
// be nil; progress streaming and the SMS digest are optional.
func NewRecommendationService(
	db *database.DB,
	cache *CacheService,
	cfg *config.Config,
	resolver *nfl.Resolver,
	validator picker.StatusValidator,
	hub *WebSocketHub,
	notifier *Notifier,
	logger *logrus.Logger,
) *RecommendationService {
	return &RecommendationService{
		db:        db,
		cache:     cache,
		cfg:       cfg,
		resolver:  resolver,
		validator: validator,
		hub:       hub,
		notifier:  notifier,
		logger:    logger,
	}
}

// GenerateRequest are the options one run is invoked with.
type GenerateRequest struct {
	Week          int    `json:"week" binding:"required,min=1,max=18"`
	WeightProfile string `json:"weight_profile"`
	ListSize      int    `json:"list_size"`
	MaxPerTeam    int    `json:"max_per_team"`
}

// Generate runs the engine for one week and persists the result.
func (s *RecommendationService) Generate(ctx context.Context, req GenerateRequest) (*picker.Result, error) {
	profileName := req.WeightProfile
	if profileName == "" {
		profileName = s.cfg.WeightProfile
	}
	profile, err := scoring.ProfileByName(profileName)
	if err != nil {
		return nil, err
	}
	listSize := req.ListSize
	if listSize <= 0 {
		listSize = s.cfg.ListSize
	}
	maxPerTeam := req.MaxPerTeam
	if maxPerTeam <= 0 {
		maxPerTeam = s.cfg.MaxPerTeam
	}

	inputs, err := s.loadInputs(req.Week)
	if err != nil {
		return nil, fmt.Errorf("failed to load inputs for week %d: %w", req.Week, err)
	}

	selector := picker.NewSelector(s.validator, maxPerTeam, listSize, s.cfg.ValidationRateLimit, s.logger)
	if s.hub != nil {
		selector.Notify = func(ev picker.SelectionEvent) {
			s.hub.Broadcast(RunEvent{Type: "candidate", Week: req.Week, Payload: ev})
		}
	}
	booster := picker.NewBooster(picker.NewVeteranList(knownVeterans), s.resolver, s.logger)

	engine, err := picker.NewEngine(s.resolver, profile, booster, selector, s.logger)
	if err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(RunEvent{Type: "run_started", Week: req.Week})
	}

	result, err := engine.Run(ctx, inputs)
	if err != nil {
		return nil, err
	}

	if err := s.persistRun(result, req); err != nil {
		// The run itself is good; a failed audit write is logged only.
		s.logger.Errorf("Failed to store recommendation run: %v", err)
	}

	cacheKey := RecommendationsCacheKey(s.cfg.Season, req.Week, profileName)
	s.cache.Set(ctx, cacheKey, result, time.Duration(s.cfg.RecCacheSeconds)*time.Second)

	if s.hub != nil {
		s.hub.Broadcast(RunEvent{Type: "run_complete", Week: req.Week, Payload: runSummary(result)})
	}
	if s.notifier != nil && s.cfg.EnableSMSDigest {
		s.notifier.SendDigest(result)
	}

	return result, nil
}

// GetCached returns the cached result for a week, if one exists.
func (s *RecommendationService) GetCached(ctx context.Context, week int, profileName string) (*picker.Result, bool) {
	if profileName == "" {
		profileName = s.cfg.WeightProfile
	}
	var result picker.Result
	key := RecommendationsCacheKey(s.cfg.Season, week, profileName)
	if err := s.cache.Get(ctx, key, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// History returns recent runs, newest first.
func (s *RecommendationService) History(limit int) ([]models.RecommendationRun, error) {
	var runs []models.RecommendationRun
	query := s.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch run history: %w", err)
	}
	return runs, nil
}

func (s *RecommendationService) persistRun(result *picker.Result, req GenerateRequest) error {
	requestData, _ := json.Marshal(req)
	responseData, _ := json.Marshal(result.Recommendations)

	run := models.RecommendationRun{
		RunID:         uuid.NewString(),
		Season:        s.cfg.Season,
		Week:          result.Week,
		WeightProfile: result.WeightProfile,
		Request:       datatypes.JSON(requestData),
		Response:      datatypes.JSON(responseData),
		Candidates:    result.Candidates,
		Selected:      len(result.Recommendations),
		Rejected:      result.Rejected,
		DurationMs:    result.Duration.Milliseconds(),
	}
	return s.db.Create(&run).Error
}

// loadInputs assembles every table the engine reads for one week.
func (s *RecommendationService) loadInputs(week int) (picker.Inputs, error) {
	season := s.cfg.Season
	in := picker.Inputs{
		Season:   season,
		Week:     week,
		Injuries: map[string]picker.Status{},
	}

	if err := s.db.Where("season = ? AND week = ?", season, week).Find(&in.Matchups).Error; err != nil {
		return in, fmt.Errorf("matchups: %w", err)
	}
	if err := s.db.Where("season = ? AND week = ?", season, week).Find(&in.PlayerWeeks).Error; err != nil {
		return in, fmt.Errorf("player weeks: %w", err)
	}

	var history []models.PlayerWeekStat
	if err := s.db.Where("season = ? AND week >= ? AND week < ?", season, week-trailingWindow, week).
		Find(&history).Error; err != nil {
		return in, fmt.Errorf("history: %w", err)
	}
	in.History = make(map[string][]models.PlayerWeekStat)
	for _, row := range history {
		in.History[row.PlayerName] = append(in.History[row.PlayerName], row)
	}

	defense, err := s.loadDefenseTables(season)
	if err != nil {
		return in, err
	}
	in.Defense = defense

	in.GameContexts = s.deriveGameContexts(in.PlayerWeeks, history, in.Matchups, week)

	current, prior, trailing, err := s.loadTouchdownTables(season, week)
	if err != nil {
		return in, err
	}
	in.CurrentSeasonTDs = current
	in.PriorSeasonTDs = prior
	in.TrailingTouchdowns = trailing

	return in, nil
}

func (s *RecommendationService) loadDefenseTables(season int) (scoring.DefenseTables, error) {
	tables := scoring.DefenseTables{
		Rush: make(map[string]models.DefenseStat),
		Pass: make(map[string]models.DefenseStat),
	}
	var rows []models.DefenseStat
	if err := s.db.Where("season = ?", season).Find(&rows).Error; err != nil {
		return tables, fmt.Errorf("defense stats: %w", err)
	}
	for _, row := range rows {
		team := s.resolver.Standardize(row.Team)
		if row.Category == models.CategoryRush {
			tables.Rush[team] = row
		} else {
			tables.Pass[team] = row
		}
	}
	return tables, nil
}

// deriveGameContexts builds a market-free game context per team from stored
// volume data: implied total from recent team points, pace from team play
// counts, spread from the scoring differential against this week's opponent.
func (s *RecommendationService) deriveGameContexts(current, history []models.PlayerWeekStat, matchups []models.Matchup, week int) map[string]scoring.GameContext {
	type teamAgg struct {
		points float64
		plays  float64
		weeks  map[int]bool
	}
	aggs := make(map[string]*teamAgg)
	observe := func(rows []models.PlayerWeekStat) {
		for _, row := range rows {
			team := s.resolver.Standardize(row.Team)
			agg, ok := aggs[team]
			if !ok {
				agg = &teamAgg{weeks: make(map[int]bool)}
				aggs[team] = agg
			}
			// One sample per team-week; every player row carries the same
			// team totals.
			if agg.weeks[row.Week] {
				continue
			}
			agg.weeks[row.Week] = true
			agg.points += float64(row.TeamPoints)
			agg.plays += float64(row.TeamPassAttempts + row.TeamRushAttempts)
		}
	}
	observe(history)
	observe(current)

	avgFor := func(team string) (points, plays float64) {
		agg, ok := aggs[team]
		if !ok || len(agg.weeks) == 0 {
			return 0, 0
		}
		n := float64(len(agg.weeks))
		return agg.points / n, agg.plays / n
	}

	schedule := nfl.NewWeekSchedule(week, matchups, s.resolver)
	contexts := make(map[string]scoring.GameContext, len(aggs))
	for team := range aggs {
		points, plays := avgFor(team)
		ctx := scoring.GameContext{
			ImpliedTotal: points,
			PlaysPerGame: plays,
		}
		if opponent, ok := schedule.OpponentOf(team); ok {
			oppPoints, _ := avgFor(opponent)
			ctx.Spread = points - oppPoints
		}
		contexts[team] = ctx
	}
	return contexts
}

func (s *RecommendationService) loadTouchdownTables(season, week int) (current, prior []models.SeasonTouchdown, trailing map[string]int, err error) {
	// Latest snapshot of the current season for breakout detection.
	if err = s.db.Where("season = ? AND through_week <= ?", season, week).
		Order("through_week DESC").Find(&current).Error; err != nil {
		err = fmt.Errorf("current season touchdowns: %w", err)
		return
	}
	current = latestSnapshot(current)

	if err = s.db.Where("season = ?", s.cfg.PriorSeason).
		Order("through_week DESC").Find(&prior).Error; err != nil {
		err = fmt.Errorf("prior season touchdowns: %w", err)
		return
	}
	prior = latestSnapshot(prior)

	// Trailing window: diff the snapshot through last week against the one
	// from trailingWindow weeks earlier.
	var older []models.SeasonTouchdown
	if err = s.db.Where("season = ? AND through_week <= ?", season, week-1-trailingWindow).
		Order("through_week DESC").Find(&older).Error; err != nil {
		err = fmt.Errorf("trailing touchdowns: %w", err)
		return
	}
	older = latestSnapshot(older)

	olderTotals := make(map[string]int)
	for _, row := range older {
		olderTotals[row.PlayerName] += row.Touchdowns
	}
	trailing = make(map[string]int)
	for _, row := range current {
		trailing[row.PlayerName] += row.Touchdowns
	}
	for name, total := range olderTotals {
		trailing[name] -= total
		if trailing[name] < 0 {
			trailing[name] = 0
		}
	}
	return
}

// latestSnapshot keeps only the rows from the most recent through_week per
// category. Rows arrive sorted by through_week descending.
func latestSnapshot(rows []models.SeasonTouchdown) []models.SeasonTouchdown {
	latest := make(map[models.StatCategory]int)
	for _, row := range rows {
		if wk, ok := latest[row.Category]; !ok || row.ThroughWeek > wk {
			latest[row.Category] = row.ThroughWeek
		}
	}
	out := rows[:0]
	for _, row := range rows {
		if row.ThroughWeek == latest[row.Category] {
			out = append(out, row)
		}
	}
	return out
}

// runSummary trims a result for broadcast; full payloads go over the
// REST surface.
func runSummary(result *picker.Result) map[string]interface{} {
	return map[string]interface{}{
		"week":       result.Week,
		"selected":   len(result.Recommendations),
		"candidates": result.Candidates,
		"rejected":   result.Rejected,
	}
}

// knownVeterans guards the breakout detector against established players
// who simply missed the prior season. Kept as data so the policy is
// swappable without touching detection logic.
var knownVeterans = []string{
	"Aaron Jones",
	"Alvin Kamara",
	"Austin Ekeler",
	"Christian McCaffrey",
	"Cooper Kupp",
	"Davante Adams",
	"Derrick Henry",
	"James Conner",
	"Joe Mixon",
	"Keenan Allen",
	"Mike Evans",
	"Nick Chubb",
	"Travis Kelce",
	"Tyreek Hill",
}
