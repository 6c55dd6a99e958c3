package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/td-scout/internal/models"
	"github.com/jstittsworth/td-scout/pkg/database"
)

// ScheduleProvider fetches one week's matchup slate from an external source.
type ScheduleProvider interface {
	GetWeekSchedule(season, week int) ([]models.Matchup, error)
}

// DataFetcherService keeps the matchup table current on a cron schedule.
// Stat tables (volume, touchdowns, defense) arrive through the ingestion
// API; only the schedule is pulled autonomously, since it is the one input
// with a free public source.
type DataFetcherService struct {
	db        *database.DB
	cache     *CacheService
	provider  ScheduleProvider
	logger    *logrus.Logger
	cron      *cron.Cron
	spec      string
	season    int
	mu        sync.Mutex
	isRunning bool
	lastFetch time.Time
}

// NewDataFetcherService creates a schedule fetcher. spec is a cron
// expression, typically Tuesday morning after the week's stats settle.
func NewDataFetcherService(
	db *database.DB,
	cache *CacheService,
	provider ScheduleProvider,
	season int,
	spec string,
	logger *logrus.Logger,
) *DataFetcherService {
	return &DataFetcherService{
		db:       db,
		cache:    cache,
		provider: provider,
		logger:   logger,
		cron:     cron.New(),
		spec:     spec,
		season:   season,
	}
}

// Start begins the scheduled fetching.
func (s *DataFetcherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("data fetcher is already running")
	}

	if _, err := s.cron.AddFunc(s.spec, s.fetchCurrentWeek); err != nil {
		return fmt.Errorf("failed to schedule data fetcher: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	// Run initial fetch
	go s.fetchCurrentWeek()

	s.logger.Info("Data fetcher service started")
	return nil
}

// Stop halts the scheduled fetching.
func (s *DataFetcherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.logger.Info("Data fetcher service stopped")
}

// FetchWeek pulls and stores one week's schedule, replacing any stale rows.
func (s *DataFetcherService) FetchWeek(week int) error {
	matchups, err := s.provider.GetWeekSchedule(s.season, week)
	if err != nil {
		return fmt.Errorf("failed to fetch week %d schedule: %w", week, err)
	}
	if len(matchups) == 0 {
		s.logger.Warnf("Schedule source returned no matchups for week %d", week)
		return nil
	}

	if err := s.db.Where("season = ? AND week = ?", s.season, week).
		Delete(&models.Matchup{}).Error; err != nil {
		return fmt.Errorf("failed to clear week %d matchups: %w", week, err)
	}
	if err := s.db.Create(&matchups).Error; err != nil {
		return fmt.Errorf("failed to store week %d matchups: %w", week, err)
	}

	s.cache.SetSimple(ScheduleCacheKey(s.season, week), matchups, 6*time.Hour)

	s.mu.Lock()
	s.lastFetch = time.Now()
	s.mu.Unlock()

	s.logger.Infof("Stored %d matchups for week %d", len(matchups), week)
	return nil
}

func (s *DataFetcherService) fetchCurrentWeek() {
	week := s.currentWeek()
	if week == 0 {
		s.logger.Info("Outside the NFL season window, skipping schedule fetch")
		return
	}
	if err := s.FetchWeek(week); err != nil {
		s.logger.Errorf("Scheduled fetch failed: %v", err)
	}
}

// currentWeek estimates the NFL week from the calendar: week 1 starts the
// first Thursday of September. Returns 0 outside the season.
func (s *DataFetcherService) currentWeek() int {
	now := time.Now()
	seasonStart := firstThursdayOfSeptember(s.season)
	if now.Before(seasonStart) {
		return 0
	}
	week := int(now.Sub(seasonStart).Hours()/(24*7)) + 1
	if week > 18 {
		return 0
	}
	return week
}

func firstThursdayOfSeptember(year int) time.Time {
	d := time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Thursday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

// GetFetchStatus returns the current status of the fetcher.
func (s *DataFetcherService) GetFetchStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	nextRuns := make([]time.Time, 0, len(entries))
	for _, entry := range entries {
		nextRuns = append(nextRuns, entry.Next)
	}

	return map[string]interface{}{
		"is_running": s.isRunning,
		"schedule":   s.spec,
		"last_fetch": s.lastFetch,
		"next_runs":  nextRuns,
	}
}
