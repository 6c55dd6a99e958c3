package picker

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/jstittsworth/td-scout/internal/scoring"
)

// Status is a player's availability designation from the injury report.
type Status string

const (
	StatusActive       Status = "Active"
	StatusQuestionable Status = "Questionable"
	StatusDoubtful     Status = "Doubtful"
	StatusOut          Status = "Out"
	StatusIR           Status = "IR"
)

// StatusValidator confirms a player's active status against an external
// source. Implementations may do network I/O; the selector paces calls.
type StatusValidator interface {
	PlayerStatus(ctx context.Context, playerName, team string) (Status, error)
}

// SelectionEvent reports one quota-walk decision, for progress streaming.
type SelectionEvent struct {
	PlayerName string `json:"player_name"`
	Team       string `json:"team"`
	Accepted   bool   `json:"accepted"`
	Reason     string `json:"reason"`
	Selected   int    `json:"selected"`
	Target     int    `json:"target"`
}

// Selector trims a ranked candidate list to the final recommendation list:
// bye and injury filtering, then a sequential quota walk with external
// active-status validation per accepted candidate.
type Selector struct {
	validator  StatusValidator
	limiter    *rate.Limiter
	logger     *logrus.Logger
	maxPerTeam int
	listSize   int

	// Notify, when set, receives one event per walk decision.
	Notify func(SelectionEvent)
}

// NewSelector builds a selector. ratePerSec paces validator calls to respect
// the upstream's rate limit; validations are strictly sequential because
// quota bookkeeping depends on each decision landing before the next
// candidate is considered.
func NewSelector(validator StatusValidator, maxPerTeam, listSize int, ratePerSec float64, logger *logrus.Logger) *Selector {
	return &Selector{
		validator:  validator,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSec), 1),
		logger:     logger,
		maxPerTeam: maxPerTeam,
		listSize:   listSize,
	}
}

// Select walks candidates in rank order and returns the final list. byeTeams
// holds canonical team names with no game this week; injuries is the static
// injury report keyed by player name. Candidates ruled out up front never
// consume a validation call.
func (s *Selector) Select(ctx context.Context, ranked []scoring.Recommendation, byeTeams map[string]bool, injuries map[string]Status) ([]scoring.Recommendation, error) {
	final := make([]scoring.Recommendation, 0, s.listSize)
	teamCounts := make(map[string]int)

	for i := range ranked {
		if len(final) >= s.listSize {
			break
		}
		cand := ranked[i]

		if byeTeams[cand.Team] {
			s.reject(cand, "team on bye", len(final))
			continue
		}

		if status, ok := injuries[cand.PlayerName]; ok && (status == StatusOut || status == StatusIR) {
			s.reject(cand, fmt.Sprintf("ruled %s", status), len(final))
			continue
		}

		if teamCounts[cand.Team] >= s.maxPerTeam {
			s.reject(cand, "team quota reached", len(final))
			continue
		}

		// External confirmation, one candidate at a time. A failed lookup is
		// treated as inactive: conservative exclusion, never silent
		// inclusion, but with its own reasoning string so logs keep the two
		// cases apart.
		if err := s.limiter.Wait(ctx); err != nil {
			return final, fmt.Errorf("selection aborted: %w", err)
		}
		status, err := s.validator.PlayerStatus(ctx, cand.PlayerName, cand.Team)
		if err != nil {
			s.logger.Warnf("Could not verify status for %s: %v", cand.PlayerName, err)
			cand.Eligibility = scoring.EligibilityUnverified
			s.reject(cand, "could not verify active status, excluded", len(final))
			continue
		}
		if status == StatusOut || status == StatusIR {
			s.reject(cand, fmt.Sprintf("confirmed %s", status), len(final))
			continue
		}

		cand.Eligibility = scoring.EligibilityActive
		cand.Reasoning = append(cand.Reasoning, fmt.Sprintf("status %s confirmed", status))
		final = append(final, cand)
		teamCounts[cand.Team]++
		s.notify(SelectionEvent{
			PlayerName: cand.PlayerName,
			Team:       cand.Team,
			Accepted:   true,
			Reason:     "accepted",
			Selected:   len(final),
			Target:     s.listSize,
		})
	}

	return final, nil
}

func (s *Selector) reject(cand scoring.Recommendation, reason string, selected int) {
	s.logger.Debugf("Skipping %s (%s): %s", cand.PlayerName, cand.Team, reason)
	s.notify(SelectionEvent{
		PlayerName: cand.PlayerName,
		Team:       cand.Team,
		Accepted:   false,
		Reason:     reason,
		Selected:   selected,
		Target:     s.listSize,
	})
}

func (s *Selector) notify(ev SelectionEvent) {
	if s.Notify != nil {
		s.Notify(ev)
	}
}
