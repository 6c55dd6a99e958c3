package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/td-scout/internal/nfl"
	"github.com/jstittsworth/td-scout/internal/picker"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*SportsDataClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client := NewSportsDataClient("test-key", 5*time.Second, 3, nil, nfl.NewResolver(), logger)
	client.baseURL = server.URL
	return client, server
}

func TestPlayerStatusFromReport(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/Injuries/BUF")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`[
			{"Name": "James Cook", "Team": "BUF", "Position": "RB", "Status": "Questionable"},
			{"Name": "Hurt Lineman", "Team": "BUF", "Position": "OT", "Status": "Out"}
		]`))
	})

	status, err := client.PlayerStatus(context.Background(), "James Cook", "Buffalo Bills")
	require.NoError(t, err)
	assert.Equal(t, picker.StatusQuestionable, status)
}

func TestPlayerStatusMissingFromReportIsActive(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	status, err := client.PlayerStatus(context.Background(), "Healthy Starter", "Buffalo Bills")
	require.NoError(t, err)
	assert.Equal(t, picker.StatusActive, status)
}

func TestPlayerStatusFuzzyNameMatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"Name": "D.K. Metcalf", "Team": "PIT", "Position": "WR", "Status": "Doubtful"}]`))
	})

	// Punctuation variant of the report name still matches.
	status, err := client.PlayerStatus(context.Background(), "DK Metcalf", "Pittsburgh Steelers")
	require.NoError(t, err)
	assert.Equal(t, picker.StatusDoubtful, status)
}

func TestPlayerStatusUpstreamFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.PlayerStatus(context.Background(), "Anyone", "Buffalo Bills")
	assert.Error(t, err)
}

func TestPlayerStatusUnknownTeam(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an unresolvable team")
	})

	_, err := client.PlayerStatus(context.Background(), "Anyone", "XFL Dragons")
	assert.Error(t, err)
}

func TestCircuitBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 5; i++ {
		client.PlayerStatus(context.Background(), "Anyone", "Buffalo Bills")
	}

	// Threshold is 3; once open, later calls fail without hitting upstream.
	assert.Equal(t, 3, hits)
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		raw      string
		expected picker.Status
	}{
		{"Out", picker.StatusOut},
		{"Injured Reserve", picker.StatusIR},
		{"PUP", picker.StatusIR},
		{"Doubtful", picker.StatusDoubtful},
		{"questionable", picker.StatusQuestionable},
		{"Probable", picker.StatusActive},
		{"", picker.StatusActive},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, normalizeStatus(tt.raw), "raw %q", tt.raw)
	}
}
