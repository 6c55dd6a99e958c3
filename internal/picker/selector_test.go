package picker

import (
	"context"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/td-scout/internal/scoring"
)

// stubValidator answers from a fixed table; unknown players are Active.
type stubValidator struct {
	statuses map[string]Status
	failures map[string]bool
	calls    []string
}

func (v *stubValidator) PlayerStatus(ctx context.Context, playerName, team string) (Status, error) {
	v.calls = append(v.calls, playerName)
	if v.failures[playerName] {
		return "", fmt.Errorf("upstream timeout")
	}
	if s, ok := v.statuses[playerName]; ok {
		return s, nil
	}
	return StatusActive, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func candidate(name, team string, score float64) scoring.Recommendation {
	return scoring.Recommendation{PlayerName: name, Team: team, FinalScore: score}
}

// validation calls are paced; tests run them effectively unthrottled
const testRate = 1000.0

func TestSelectRespectsTeamQuota(t *testing.T) {
	// Top five all from one team with a quota of one: only the best survives
	// and the list backfills from other teams.
	ranked := []scoring.Recommendation{
		candidate("A1", "Buffalo Bills", 9),
		candidate("A2", "Buffalo Bills", 9),
		candidate("A3", "Buffalo Bills", 8),
		candidate("A4", "Buffalo Bills", 8),
		candidate("A5", "Buffalo Bills", 7),
		candidate("B1", "Miami Dolphins", 6),
		candidate("C1", "Detroit Lions", 5),
	}

	v := &stubValidator{}
	s := NewSelector(v, 1, 10, testRate, testLogger())

	final, err := s.Select(context.Background(), ranked, nil, nil)
	require.NoError(t, err)

	require.Len(t, final, 3)
	assert.Equal(t, "A1", final[0].PlayerName)
	assert.Equal(t, "B1", final[1].PlayerName)
	assert.Equal(t, "C1", final[2].PlayerName)

	// Quota rejections never burn a validation call.
	assert.Equal(t, []string{"A1", "B1", "C1"}, v.calls)
}

func TestSelectStopsAtListSize(t *testing.T) {
	ranked := make([]scoring.Recommendation, 0, 8)
	for i := 0; i < 8; i++ {
		ranked = append(ranked, candidate(fmt.Sprintf("P%d", i), fmt.Sprintf("T%d", i), 8))
	}

	s := NewSelector(&stubValidator{}, 2, 3, testRate, testLogger())
	final, err := s.Select(context.Background(), ranked, nil, nil)
	require.NoError(t, err)
	assert.Len(t, final, 3)
}

func TestSelectFiltersByesAndInjuries(t *testing.T) {
	ranked := []scoring.Recommendation{
		candidate("Bye Guy", "Chicago Bears", 9),
		candidate("Hurt Guy", "Miami Dolphins", 8),
		candidate("Healthy Guy", "Buffalo Bills", 7),
	}
	byes := map[string]bool{"Chicago Bears": true}
	injuries := map[string]Status{"Hurt Guy": StatusOut}

	v := &stubValidator{}
	s := NewSelector(v, 2, 5, testRate, testLogger())
	final, err := s.Select(context.Background(), ranked, byes, injuries)
	require.NoError(t, err)

	require.Len(t, final, 1)
	assert.Equal(t, "Healthy Guy", final[0].PlayerName)
	assert.Equal(t, scoring.EligibilityActive, final[0].Eligibility)
	// Static filters run before any validation spend.
	assert.Equal(t, []string{"Healthy Guy"}, v.calls)
}

func TestSelectValidationFailureExcludesAndBackfills(t *testing.T) {
	ranked := []scoring.Recommendation{
		candidate("Unreachable", "Buffalo Bills", 9),
		candidate("Next Up", "Miami Dolphins", 8),
	}

	var events []SelectionEvent
	v := &stubValidator{failures: map[string]bool{"Unreachable": true}}
	s := NewSelector(v, 2, 1, testRate, testLogger())
	s.Notify = func(ev SelectionEvent) { events = append(events, ev) }

	final, err := s.Select(context.Background(), ranked, nil, nil)
	require.NoError(t, err)

	require.Len(t, final, 1)
	assert.Equal(t, "Next Up", final[0].PlayerName)

	// The failure carries its own reasoning, distinct from confirmed-out.
	require.Len(t, events, 2)
	assert.False(t, events[0].Accepted)
	assert.Equal(t, "could not verify active status, excluded", events[0].Reason)
	assert.True(t, events[1].Accepted)
}

func TestSelectConfirmedOutIsRejected(t *testing.T) {
	ranked := []scoring.Recommendation{
		candidate("Late Scratch", "Buffalo Bills", 9),
		candidate("Backup Plan", "Miami Dolphins", 8),
	}

	v := &stubValidator{statuses: map[string]Status{"Late Scratch": StatusOut}}
	s := NewSelector(v, 2, 5, testRate, testLogger())
	final, err := s.Select(context.Background(), ranked, nil, nil)
	require.NoError(t, err)

	require.Len(t, final, 1)
	assert.Equal(t, "Backup Plan", final[0].PlayerName)
}

func TestSelectQuestionableIsKept(t *testing.T) {
	ranked := []scoring.Recommendation{candidate("Game Timer", "Buffalo Bills", 7)}

	v := &stubValidator{statuses: map[string]Status{"Game Timer": StatusQuestionable}}
	s := NewSelector(v, 2, 5, testRate, testLogger())
	final, err := s.Select(context.Background(), ranked, nil, nil)
	require.NoError(t, err)

	require.Len(t, final, 1)
	assert.Contains(t, final[0].Reasoning, "status Questionable confirmed")
}

func TestSelectEmptyInput(t *testing.T) {
	s := NewSelector(&stubValidator{}, 2, 5, testRate, testLogger())
	final, err := s.Select(context.Background(), nil, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, final)
}

func TestSelectCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ranked := []scoring.Recommendation{candidate("Anyone", "Buffalo Bills", 7)}
	s := NewSelector(&stubValidator{}, 2, 5, 0.001, testLogger())
	_, err := s.Select(ctx, ranked, nil, nil)
	assert.Error(t, err)
}
