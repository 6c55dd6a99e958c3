package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/td-scout/internal/models"
	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/pkg/config"
	"github.com/jstittsworth/td-scout/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db, cfg.Season); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	// Enable UUID extension for PostgreSQL
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return fmt.Errorf("failed to create UUID extension: %w", err)
	}

	// Auto migrate all models
	if err := db.AutoMigrate(
		&models.TeamInfo{},
		&models.Matchup{},
		&models.PlayerWeekStat{},
		&models.SeasonTouchdown{},
		&models.DefenseStat{},
		&models.RecommendationRun{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	// Create indexes
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_player_week_stats_team ON player_week_stats(team)",
		"CREATE INDEX IF NOT EXISTS idx_season_touchdowns_team ON season_touchdowns(team)",
		"CREATE INDEX IF NOT EXISTS idx_recommendation_runs_created ON recommendation_runs(created_at DESC)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	tables := []string{
		"recommendation_runs",
		"defense_stats",
		"season_touchdowns",
		"player_week_stats",
		"matchups",
		"team_infos",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

func seedData(db *database.DB, season int) error {
	// Seed the franchise table from the static resolver data
	teams := make([]models.TeamInfo, 0, 32)
	for _, t := range nfl.AllTeams() {
		teams = append(teams, models.TeamInfo{
			Abbreviation: t.Abbreviation,
			FullName:     t.Name,
			Timezone:     "America/New_York",
		})
	}
	if err := db.Create(&teams).Error; err != nil {
		logrus.Warnf("Failed to seed teams (may already exist): %v", err)
	}

	// A small demo slate so a fresh environment produces recommendations
	kickoff := time.Date(season, time.October, 12, 17, 0, 0, 0, time.UTC)
	matchups := []models.Matchup{
		{Season: season, Week: 6, AwayTeam: "Buffalo Bills", HomeTeam: "Miami Dolphins", Kickoff: kickoff},
		{Season: season, Week: 6, AwayTeam: "San Francisco 49ers", HomeTeam: "Dallas Cowboys", Kickoff: kickoff.Add(3 * time.Hour)},
		{Season: season, Week: 6, AwayTeam: "Detroit Lions", HomeTeam: "Green Bay Packers", Kickoff: kickoff},
	}
	if err := db.Create(&matchups).Error; err != nil {
		logrus.Warnf("Failed to seed matchups: %v", err)
	}

	stats := []models.PlayerWeekStat{
		{Season: season, Week: 6, PlayerName: "James Cook", Team: "Buffalo Bills", Position: "RB", Carries: 18, Targets: 4, RedZoneCarries: 3, TeamPoints: 31, TeamPassAttempts: 33, TeamRushAttempts: 28},
		{Season: season, Week: 6, PlayerName: "Stefon Diggs", Team: "Buffalo Bills", Position: "WR", Targets: 11, RedZoneTargets: 2, TeamPoints: 31, TeamPassAttempts: 33, TeamRushAttempts: 28},
		{Season: season, Week: 6, PlayerName: "Christian McCaffrey", Team: "San Francisco 49ers", Position: "RB", Carries: 20, Targets: 6, RedZoneCarries: 4, RedZoneTargets: 1, TeamPoints: 28, TeamPassAttempts: 30, TeamRushAttempts: 31},
		{Season: season, Week: 6, PlayerName: "CeeDee Lamb", Team: "Dallas Cowboys", Position: "WR", Targets: 12, RedZoneTargets: 3, TeamPoints: 24, TeamPassAttempts: 38, TeamRushAttempts: 22},
		{Season: season, Week: 6, PlayerName: "Amon-Ra St. Brown", Team: "Detroit Lions", Position: "WR", Targets: 10, RedZoneTargets: 2, TeamPoints: 27, TeamPassAttempts: 35, TeamRushAttempts: 26},
	}
	if err := db.Create(&stats).Error; err != nil {
		logrus.Warnf("Failed to seed player stats: %v", err)
	}

	defense := []models.DefenseStat{
		{Season: season, Category: models.CategoryRush, Team: "Miami Dolphins", TouchdownsPerGame: 1.6, Rank: 28},
		{Season: season, Category: models.CategoryPass, Team: "Miami Dolphins", TouchdownsPerGame: 1.8, Rank: 30},
		{Season: season, Category: models.CategoryRush, Team: "Dallas Cowboys", TouchdownsPerGame: 0.8, Rank: 6},
		{Season: season, Category: models.CategoryPass, Team: "Dallas Cowboys", TouchdownsPerGame: 1.2, Rank: 14},
		{Season: season, Category: models.CategoryRush, Team: "Green Bay Packers", TouchdownsPerGame: 1.1, Rank: 15},
		{Season: season, Category: models.CategoryPass, Team: "Green Bay Packers", TouchdownsPerGame: 1.4, Rank: 20},
	}
	if err := db.Create(&defense).Error; err != nil {
		logrus.Warnf("Failed to seed defense stats: %v", err)
	}

	touchdowns := []models.SeasonTouchdown{
		{Season: season, ThroughWeek: 5, Category: models.CategoryRush, PlayerName: "James Cook", Team: "Buffalo Bills", Touchdowns: 4, Games: 5},
		{Season: season, ThroughWeek: 5, Category: models.CategoryRush, PlayerName: "Christian McCaffrey", Team: "San Francisco 49ers", Touchdowns: 6, Games: 5},
		{Season: season, ThroughWeek: 5, Category: models.CategoryPass, PlayerName: "Stefon Diggs", Team: "Buffalo Bills", Touchdowns: 3, Games: 5},
		{Season: season, ThroughWeek: 5, Category: models.CategoryPass, PlayerName: "CeeDee Lamb", Team: "Dallas Cowboys", Touchdowns: 4, Games: 5},
		{Season: season, ThroughWeek: 5, Category: models.CategoryPass, PlayerName: "Amon-Ra St. Brown", Team: "Detroit Lions", Touchdowns: 5, Games: 5},
	}
	if err := db.Create(&touchdowns).Error; err != nil {
		logrus.Warnf("Failed to seed touchdown totals: %v", err)
	}

	logrus.Infof("Seeded %d teams and a week 6 demo slate", len(teams))
	return nil
}
