package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/td-scout/internal/api/handlers"
	"github.com/jstittsworth/td-scout/internal/api/middleware"
	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/internal/services"
	"github.com/jstittsworth/td-scout/pkg/config"
	"github.com/jstittsworth/td-scout/pkg/database"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(
	group *gin.RouterGroup,
	db *database.DB,
	cache *services.CacheService,
	recService *services.RecommendationService,
	dataFetcher *services.DataFetcherService,
	resolver *nfl.Resolver,
	cfg *config.Config,
	logger *logrus.Logger,
) {
	recHandler := handlers.NewRecommendationHandler(recService, logger)
	matchupHandler := handlers.NewMatchupHandler(db, cache, dataFetcher, resolver, cfg.Season, logger)
	teamHandler := handlers.NewTeamHandler(resolver)
	statsHandler := handlers.NewStatsHandler(db, resolver, logger)
	healthHandler := handlers.NewHealthHandler(db, dataFetcher)

	// Health endpoints
	group.GET("/health", healthHandler.GetHealth)
	group.GET("/ready", healthHandler.GetReady)
	group.GET("/fetch-status", healthHandler.GetFetchStatus)

	// Read endpoints
	group.GET("/recommendations", recHandler.GetRecommendations)
	group.GET("/runs", recHandler.GetRuns)
	group.GET("/matchups/:week", matchupHandler.GetWeekMatchups)
	group.GET("/teams", teamHandler.ListTeams)
	group.GET("/teams/resolve", teamHandler.ResolveTeam)

	// Mutation endpoints
	auth := group.Group("")
	auth.Use(middleware.AuthRequired(cfg.JWTSecret))
	{
		auth.POST("/recommendations/generate", recHandler.GenerateRecommendations)
		auth.POST("/matchups/:week/refresh", matchupHandler.RefreshWeek)
		auth.POST("/stats/player-weeks", statsHandler.IngestPlayerWeeks)
		auth.POST("/stats/touchdowns", statsHandler.IngestSeasonTouchdowns)
		auth.POST("/stats/defense", statsHandler.IngestDefenseStats)
	}
}
