package providers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/td-scout/internal/models"
)

const espnScoreboardURL = "https://site.api.espn.com/apis/site/v2/sports/football/nfl/scoreboard"

// CacheProvider is the cache surface providers need.
type CacheProvider interface {
	SetSimple(key string, value interface{}, expiration time.Duration) error
	GetSimple(key string, dest interface{}) error
}

// ESPNClient fetches the weekly NFL schedule from ESPN's public scoreboard.
type ESPNClient struct {
	httpClient *http.Client
	cache      CacheProvider
	logger     *logrus.Logger
	baseURL    string
}

// NewESPNClient creates a new ESPN schedule client.
func NewESPNClient(cache CacheProvider, logger *logrus.Logger) *ESPNClient {
	return &ESPNClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache:   cache,
		logger:  logger,
		baseURL: espnScoreboardURL,
	}
}

// ESPN API response structures
type espnScoreboardResponse struct {
	Events []struct {
		ID           string `json:"id"`
		Date         string `json:"date"`
		Name         string `json:"name"`
		Competitions []struct {
			ID          string `json:"id"`
			Competitors []struct {
				ID       string   `json:"id"`
				HomeAway string   `json:"homeAway"`
				Team     espnTeam `json:"team"`
			} `json:"competitors"`
		} `json:"competitions"`
	} `json:"events"`
	Week struct {
		Number int `json:"number"`
	} `json:"week"`
	Season struct {
		Year int `json:"year"`
	} `json:"season"`
}

type espnTeam struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
}

// GetWeekSchedule fetches the matchup slate for one week.
func (c *ESPNClient) GetWeekSchedule(season, week int) ([]models.Matchup, error) {
	cacheKey := fmt.Sprintf("espn:schedule:%d:%d", season, week)

	var cached []models.Matchup
	if c.cache != nil {
		if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	url := fmt.Sprintf("%s?seasontype=2&week=%d", c.baseURL, week)
	var scoreboard espnScoreboardResponse
	if err := c.makeRequest(url, &scoreboard); err != nil {
		return nil, fmt.Errorf("failed to fetch week %d scoreboard: %w", week, err)
	}

	matchups := make([]models.Matchup, 0, len(scoreboard.Events))
	for _, event := range scoreboard.Events {
		if len(event.Competitions) == 0 {
			continue
		}
		var home, away string
		for _, comp := range event.Competitions[0].Competitors {
			if comp.HomeAway == "home" {
				home = comp.Team.DisplayName
			} else {
				away = comp.Team.DisplayName
			}
		}
		if home == "" || away == "" {
			c.logger.Warnf("Skipping event %s: incomplete competitor data", event.ID)
			continue
		}
		kickoff, err := time.Parse("2006-01-02T15:04Z", event.Date)
		if err != nil {
			kickoff = time.Time{}
		}
		matchups = append(matchups, models.Matchup{
			Season:   season,
			Week:     week,
			AwayTeam: away,
			HomeTeam: home,
			Kickoff:  kickoff,
		})
	}

	// Schedules barely move inside a week; cache generously.
	if c.cache != nil && len(matchups) > 0 {
		c.cache.SetSimple(cacheKey, matchups, 6*time.Hour)
	}

	return matchups, nil
}

// makeRequest performs an HTTP GET with exponential backoff.
func (c *ESPNClient) makeRequest(url string, target interface{}) error {
	var resp *http.Response
	var err error

	for attempt := 0; attempt < 3; attempt++ {
		resp, err = c.httpClient.Get(url)
		if err == nil && resp.StatusCode == http.StatusOK {
			break
		}

		if resp != nil {
			err = fmt.Errorf("unexpected status %d", resp.StatusCode)
			resp.Body.Close()
			resp = nil
		}

		waitTime := time.Duration(math.Pow(2, float64(attempt))) * time.Second
		c.logger.Warnf("ESPN request failed (attempt %d), waiting %v: %v", attempt+1, waitTime, err)
		time.Sleep(waitTime)
	}

	if resp == nil {
		return fmt.Errorf("request failed after retries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(target)
}
