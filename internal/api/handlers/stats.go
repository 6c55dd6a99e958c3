package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jstittsworth/td-scout/internal/models"
	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/pkg/database"
	"github.com/jstittsworth/td-scout/pkg/utils"
)

// StatsHandler ingests the stat tables the scoring engine reads. Team
// names are standardized on the way in so every table speaks the same
// canonical names.
type StatsHandler struct {
	db       *database.DB
	resolver *nfl.Resolver
	logger   *logrus.Logger
}

func NewStatsHandler(db *database.DB, resolver *nfl.Resolver, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		db:       db,
		resolver: resolver,
		logger:   logger,
	}
}

// IngestPlayerWeeks loads one week of player usage rows, replacing the
// week's existing rows.
func (h *StatsHandler) IngestPlayerWeeks(c *gin.Context) {
	var rows []models.PlayerWeekStat
	if err := c.ShouldBindJSON(&rows); err != nil {
		utils.SendValidationError(c, "invalid payload", err.Error())
		return
	}
	if len(rows) == 0 {
		utils.SendValidationError(c, "empty payload", "at least one row is required")
		return
	}

	season, week := rows[0].Season, rows[0].Week
	for i := range rows {
		if rows[i].Season != season || rows[i].Week != week {
			utils.SendValidationError(c, "mixed weeks", "all rows must share one season and week")
			return
		}
		rows[i].Team = h.resolver.Standardize(rows[i].Team)
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("season = ? AND week = ?", season, week).
			Delete(&models.PlayerWeekStat{}).Error; err != nil {
			return err
		}
		return tx.Create(&rows).Error
	}); err != nil {
		h.logger.Errorf("Failed to ingest player weeks: %v", err)
		utils.SendInternalError(c, "failed to store player stats")
		return
	}

	c.JSON(http.StatusCreated, utils.Response{
		Success: true,
		Data:    gin.H{"season": season, "week": week, "rows": len(rows)},
	})
}

// IngestSeasonTouchdowns upserts cumulative touchdown snapshots.
func (h *StatsHandler) IngestSeasonTouchdowns(c *gin.Context) {
	var rows []models.SeasonTouchdown
	if err := c.ShouldBindJSON(&rows); err != nil {
		utils.SendValidationError(c, "invalid payload", err.Error())
		return
	}
	for i := range rows {
		if rows[i].Category != models.CategoryRush && rows[i].Category != models.CategoryPass {
			utils.SendValidationError(c, "invalid category",
				fmt.Sprintf("row %d: category must be %q or %q", i, models.CategoryRush, models.CategoryPass))
			return
		}
		rows[i].Team = h.resolver.Standardize(rows[i].Team)
	}

	if err := h.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "season"}, {Name: "through_week"}, {Name: "category"}, {Name: "player_name"},
		},
		UpdateAll: true,
	}).Create(&rows).Error; err != nil {
		h.logger.Errorf("Failed to ingest season touchdowns: %v", err)
		utils.SendInternalError(c, "failed to store touchdown totals")
		return
	}

	c.JSON(http.StatusCreated, utils.Response{Success: true, Data: gin.H{"rows": len(rows)}})
}

// IngestDefenseStats upserts the defensive touchdowns-allowed tables.
func (h *StatsHandler) IngestDefenseStats(c *gin.Context) {
	var rows []models.DefenseStat
	if err := c.ShouldBindJSON(&rows); err != nil {
		utils.SendValidationError(c, "invalid payload", err.Error())
		return
	}
	for i := range rows {
		rows[i].Team = h.resolver.Standardize(rows[i].Team)
	}

	if err := h.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "season"}, {Name: "category"}, {Name: "team"}},
		UpdateAll: true,
	}).Create(&rows).Error; err != nil {
		h.logger.Errorf("Failed to ingest defense stats: %v", err)
		utils.SendInternalError(c, "failed to store defense stats")
		return
	}

	c.JSON(http.StatusCreated, utils.Response{Success: true, Data: gin.H{"rows": len(rows)}})
}
