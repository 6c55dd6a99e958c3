package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jstittsworth/td-scout/internal/api"
	"github.com/jstittsworth/td-scout/internal/models"
	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/internal/picker"
	"github.com/jstittsworth/td-scout/internal/services"
	"github.com/jstittsworth/td-scout/pkg/config"
	"github.com/jstittsworth/td-scout/pkg/database"
)

// allActiveValidator answers every status check without network I/O.
type allActiveValidator struct{}

func (allActiveValidator) PlayerStatus(ctx context.Context, playerName, team string) (picker.Status, error) {
	return picker.StatusActive, nil
}

type RecommendationIntegrationTestSuite struct {
	suite.Suite
	db      *database.DB
	router  *gin.Engine
	service *services.RecommendationService
	cfg     *config.Config
}

func (s *RecommendationIntegrationTestSuite) SetupSuite() {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)

	s.db = &database.DB{DB: gormDB}
	err = s.db.AutoMigrate(
		&models.TeamInfo{},
		&models.Matchup{},
		&models.PlayerWeekStat{},
		&models.SeasonTouchdown{},
		&models.DefenseStat{},
		&models.RecommendationRun{},
	)
	s.Require().NoError(err)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	s.cfg = &config.Config{
		Season:              2025,
		PriorSeason:         2024,
		WeightProfile:       "classic",
		ListSize:            20,
		MaxPerTeam:          2,
		ValidationRateLimit: 1000,
		RecCacheSeconds:     60,
		JWTSecret:           "integration-test-secret",
	}

	cache := services.NewCacheService(nil)
	resolver := nfl.NewResolver()
	s.service = services.NewRecommendationService(
		s.db, cache, s.cfg, resolver, allActiveValidator{}, nil, nil, logger,
	)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	group := s.router.Group("/api/v1")
	api.SetupRoutes(group, s.db, cache, s.service, nil, resolver, s.cfg, logger)

	s.seed()
}

func (s *RecommendationIntegrationTestSuite) seed() {
	matchups := []models.Matchup{
		{Season: 2025, Week: 6, AwayTeam: "Buffalo Bills", HomeTeam: "Miami Dolphins", Kickoff: time.Now()},
		{Season: 2025, Week: 6, AwayTeam: "San Francisco 49ers", HomeTeam: "Dallas Cowboys", Kickoff: time.Now()},
	}
	s.Require().NoError(s.db.Create(&matchups).Error)

	stats := []models.PlayerWeekStat{
		{Season: 2025, Week: 6, PlayerName: "Workhorse Back", Team: "BUF", Position: "RB",
			Carries: 19, Targets: 4, RedZoneCarries: 3, TeamPoints: 30, TeamPassAttempts: 32, TeamRushAttempts: 29},
		{Season: 2025, Week: 6, PlayerName: "Alpha Receiver", Team: "Dallas Cowboys", Position: "WR",
			Targets: 12, RedZoneTargets: 2, TeamPoints: 24, TeamPassAttempts: 38, TeamRushAttempts: 21},
		{Season: 2025, Week: 5, PlayerName: "Workhorse Back", Team: "BUF", Position: "RB",
			Carries: 14, Targets: 3, RedZoneCarries: 1, TeamPoints: 27, TeamPassAttempts: 30, TeamRushAttempts: 27},
	}
	s.Require().NoError(s.db.Create(&stats).Error)

	defense := []models.DefenseStat{
		{Season: 2025, Category: models.CategoryRush, Team: "Miami Dolphins", TouchdownsPerGame: 1.7, Rank: 29},
		{Season: 2025, Category: models.CategoryPass, Team: "San Francisco 49ers", TouchdownsPerGame: 1.1, Rank: 16},
	}
	s.Require().NoError(s.db.Create(&defense).Error)

	touchdowns := []models.SeasonTouchdown{
		{Season: 2025, ThroughWeek: 5, Category: models.CategoryRush, PlayerName: "Workhorse Back", Team: "BUF", Touchdowns: 5, Games: 5},
		{Season: 2025, ThroughWeek: 2, Category: models.CategoryRush, PlayerName: "Workhorse Back", Team: "BUF", Touchdowns: 2, Games: 2},
		{Season: 2024, ThroughWeek: 18, Category: models.CategoryRush, PlayerName: "Workhorse Back", Team: "BUF", Touchdowns: 9, Games: 17},
	}
	s.Require().NoError(s.db.Create(&touchdowns).Error)
}

func (s *RecommendationIntegrationTestSuite) adminToken() string {
	claims := jwt.RegisteredClaims{
		Subject:   "integration-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	s.Require().NoError(err)
	return signed
}

func (s *RecommendationIntegrationTestSuite) TestGenerateEndToEnd() {
	result, err := s.service.Generate(context.Background(), services.GenerateRequest{Week: 6})
	s.Require().NoError(err)

	s.Require().Len(result.Recommendations, 2)
	top := result.Recommendations[0]
	s.Equal("Workhorse Back", top.PlayerName)
	s.Equal("Miami Dolphins", top.Opponent)
	s.NotEmpty(top.Reasoning)

	// Trailing touchdowns: 5 through week 5 minus 2 through week 2.
	s.NotZero(top.HistoricalScore)

	// The run lands in the audit table.
	var runs []models.RecommendationRun
	s.Require().NoError(s.db.Find(&runs).Error)
	s.Require().NotEmpty(runs)
	last := runs[len(runs)-1]
	s.Equal(6, last.Week)
	s.Equal(2, last.Selected)
	s.NotEmpty(last.RunID)
}

func (s *RecommendationIntegrationTestSuite) TestGenerateEmptyWeek() {
	result, err := s.service.Generate(context.Background(), services.GenerateRequest{Week: 12})
	s.Require().NoError(err)
	s.Empty(result.Recommendations)
}

func (s *RecommendationIntegrationTestSuite) TestGenerateUnknownProfile() {
	_, err := s.service.Generate(context.Background(), services.GenerateRequest{Week: 6, WeightProfile: "bogus"})
	s.Error(err)
}

func (s *RecommendationIntegrationTestSuite) TestRecommendationsEndpoint() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?week=6", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Recommendations []struct {
				PlayerName string `json:"player_name"`
			} `json:"recommendations"`
		} `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.True(body.Success)
	s.NotEmpty(body.Data.Recommendations)
}

func (s *RecommendationIntegrationTestSuite) TestRecommendationsEndpointRejectsBadWeek() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?week=40", nil)
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RecommendationIntegrationTestSuite) TestGenerateEndpointRequiresAuth() {
	payload := bytes.NewBufferString(`{"week": 6}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/generate", payload)
	req.Header.Set("Content-Type", "application/json")
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RecommendationIntegrationTestSuite) TestGenerateEndpointWithToken() {
	payload := bytes.NewBufferString(`{"week": 6}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations/generate", payload)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.adminToken())
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusCreated, w.Code)
}

func (s *RecommendationIntegrationTestSuite) TestTeamResolveEndpoint() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/teams/resolve?name=Oakland+Raiders", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	assert.Contains(s.T(), w.Body.String(), "Las Vegas Raiders")
}

func (s *RecommendationIntegrationTestSuite) TestMatchupsEndpoint() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/matchups/6", nil)
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "Buffalo Bills")
	s.Contains(w.Body.String(), "byes")
}

func TestRecommendationIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RecommendationIntegrationTestSuite))
}
