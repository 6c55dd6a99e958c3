package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/internal/picker"
)

const sportsDataBaseURL = "https://api.sportsdata.io/v3/nfl/scores/json"

// fuzzy distance allowed when matching report names to our player names
// ("D.K. Metcalf" vs "DK Metcalf" and similar)
const maxNameDistance = 3

// Injury reports change mid-week, so cached copies stay short-lived.
const injuryCacheTTL = 5 * time.Minute

// SportsDataClient checks player active status against the SportsData.io
// injury feed. Calls go through a circuit breaker so a degraded upstream
// fails fast instead of stalling the quota walk on every candidate.
type SportsDataClient struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	cache      CacheProvider
	resolver   *nfl.Resolver
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewSportsDataClient creates a status client. threshold is the consecutive
// failure count that opens the breaker.
func NewSportsDataClient(apiKey string, timeout time.Duration, threshold int, cache CacheProvider, resolver *nfl.Resolver, logger *logrus.Logger) *SportsDataClient {
	settings := gobreaker.Settings{
		Name:    "sportsdata-status",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf("Circuit breaker %s: %s -> %s", name, from, to)
		},
	}
	return &SportsDataClient{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		baseURL:    sportsDataBaseURL,
		cache:      cache,
		resolver:   resolver,
		breaker:    gobreaker.NewCircuitBreaker(settings),
		logger:     logger,
	}
}

type injuryRow struct {
	Name     string `json:"Name"`
	Team     string `json:"Team"`
	Position string `json:"Position"`
	Status   string `json:"Status"`
}

// PlayerStatus implements picker.StatusValidator. A player missing from the
// team's injury report is Active; an unreachable upstream is an error the
// selector treats as "cannot verify."
func (c *SportsDataClient) PlayerStatus(ctx context.Context, playerName, team string) (picker.Status, error) {
	t, ok := c.resolver.Lookup(team)
	if !ok {
		return "", fmt.Errorf("unknown team %q", team)
	}

	rows, err := c.teamInjuries(ctx, t.Abbreviation)
	if err != nil {
		return "", err
	}

	if row, ok := matchReportRow(rows, playerName); ok {
		return normalizeStatus(row.Status), nil
	}
	return picker.StatusActive, nil
}

func (c *SportsDataClient) teamInjuries(ctx context.Context, teamAbbr string) ([]injuryRow, error) {
	cacheKey := fmt.Sprintf("sportsdata:injuries:%s", teamAbbr)
	if c.cache != nil {
		var cached []injuryRow
		if err := c.cache.GetSimple(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		url := fmt.Sprintf("%s/Injuries/%s?key=%s", c.baseURL, teamAbbr, c.apiKey)
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("injury feed returned status %d", resp.StatusCode)
		}
		var rows []injuryRow
		if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
			return nil, fmt.Errorf("failed to decode injury feed: %w", err)
		}
		return rows, nil
	})
	if err != nil {
		return nil, fmt.Errorf("injury lookup for %s: %w", teamAbbr, err)
	}

	rows := result.([]injuryRow)
	if c.cache != nil {
		if err := c.cache.SetSimple(cacheKey, rows, injuryCacheTTL); err != nil {
			c.logger.Warnf("Failed to cache injury report for %s: %v", teamAbbr, err)
		}
	}
	return rows, nil
}

// matchReportRow finds the report row for a player, exact first, then a
// bounded Levenshtein match for punctuation and initial variants.
func matchReportRow(rows []injuryRow, playerName string) (injuryRow, bool) {
	want := strings.ToLower(playerName)
	for _, row := range rows {
		if strings.ToLower(row.Name) == want {
			return row, true
		}
	}
	best := -1
	var bestRow injuryRow
	for _, row := range rows {
		d := fuzzy.LevenshteinDistance(want, strings.ToLower(row.Name))
		if d <= maxNameDistance && (best == -1 || d < best) {
			best = d
			bestRow = row
		}
	}
	return bestRow, best != -1
}

func normalizeStatus(raw string) picker.Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "out":
		return picker.StatusOut
	case "injured reserve", "ir", "physically unable to perform", "pup":
		return picker.StatusIR
	case "doubtful":
		return picker.StatusDoubtful
	case "questionable":
		return picker.StatusQuestionable
	default:
		return picker.StatusActive
	}
}
