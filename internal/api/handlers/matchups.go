package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/td-scout/internal/models"
	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/internal/services"
	"github.com/jstittsworth/td-scout/pkg/database"
	"github.com/jstittsworth/td-scout/pkg/utils"
)

type MatchupHandler struct {
	db       *database.DB
	cache    *services.CacheService
	fetcher  *services.DataFetcherService
	resolver *nfl.Resolver
	season   int
	logger   *logrus.Logger
}

func NewMatchupHandler(db *database.DB, cache *services.CacheService, fetcher *services.DataFetcherService, resolver *nfl.Resolver, season int, logger *logrus.Logger) *MatchupHandler {
	return &MatchupHandler{
		db:       db,
		cache:    cache,
		fetcher:  fetcher,
		resolver: resolver,
		season:   season,
		logger:   logger,
	}
}

// GetWeekMatchups returns the slate for one week, with the bye teams
// derived from who is missing from it.
func (h *MatchupHandler) GetWeekMatchups(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 || week > 18 {
		utils.SendValidationError(c, "invalid week", "week must be between 1 and 18")
		return
	}

	var matchups []models.Matchup
	key := services.ScheduleCacheKey(h.season, week)
	if h.cache.GetSimple(key, &matchups) != nil || len(matchups) == 0 {
		if err := h.db.Where("season = ? AND week = ?", h.season, week).
			Order("kickoff").Find(&matchups).Error; err != nil {
			h.logger.Errorf("Failed to load week %d matchups: %v", week, err)
			utils.SendInternalError(c, "failed to load matchups")
			return
		}
		h.cache.SetSimple(key, matchups, 6*time.Hour)
	}

	schedule := nfl.NewWeekSchedule(week, matchups, h.resolver)
	byes := make([]string, 0)
	for team := range schedule.TeamsOnBye() {
		byes = append(byes, team)
	}

	utils.SendSuccess(c, gin.H{
		"week":     week,
		"matchups": matchups,
		"byes":     byes,
	})
}

// RefreshWeek forces a schedule re-pull from the external source.
func (h *MatchupHandler) RefreshWeek(c *gin.Context) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 || week > 18 {
		utils.SendValidationError(c, "invalid week", "week must be between 1 and 18")
		return
	}

	if h.fetcher == nil {
		utils.SendServiceUnavailable(c, "background jobs are disabled")
		return
	}

	if err := h.fetcher.FetchWeek(week); err != nil {
		h.logger.Errorf("On-demand fetch for week %d failed: %v", week, err)
		utils.SendInternalError(c, "schedule refresh failed")
		return
	}

	utils.SendSuccess(c, gin.H{"week": week, "refreshed": true})
}
