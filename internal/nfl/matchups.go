package nfl

import (
	"github.com/jstittsworth/td-scout/internal/models"
)

// WeekSchedule answers opponent lookups for one week's slate. A team absent
// from every matchup is on bye; that is a normal terminal result, not an
// error.
type WeekSchedule struct {
	week     int
	resolver *Resolver
	matchups []models.Matchup
}

// NewWeekSchedule indexes one week's matchup rows.
func NewWeekSchedule(week int, matchups []models.Matchup, resolver *Resolver) *WeekSchedule {
	rows := make([]models.Matchup, 0, len(matchups))
	for _, m := range matchups {
		if m.Week == week {
			rows = append(rows, m)
		}
	}
	return &WeekSchedule{
		week:     week,
		resolver: resolver,
		matchups: rows,
	}
}

// Week returns the schedule's week number.
func (s *WeekSchedule) Week() int {
	return s.week
}

// OpponentOf returns the canonical opponent for team this week. The second
// return is false when the team has no game (bye) or cannot be matched
// against the slate.
func (s *WeekSchedule) OpponentOf(team string) (string, bool) {
	canonical := s.resolver.Standardize(team)

	// Exact pass against canonicalized home/away names.
	for _, m := range s.matchups {
		home := s.resolver.Standardize(m.HomeTeam)
		away := s.resolver.Standardize(m.AwayTeam)
		if home == canonical {
			return away, true
		}
		if away == canonical {
			return home, true
		}
	}

	// Coarse pass on city keys. Recovers slates where the schedule source
	// and the stat source disagree on exactly how a city is written.
	key := s.resolver.CityKey(team)
	if key == "" {
		return "", false
	}
	for _, m := range s.matchups {
		if s.resolver.CityKey(m.HomeTeam) == key {
			return s.resolver.Standardize(m.AwayTeam), true
		}
		if s.resolver.CityKey(m.AwayTeam) == key {
			return s.resolver.Standardize(m.HomeTeam), true
		}
	}

	return "", false
}

// TeamsOnBye lists canonical teams with no game this week.
func (s *WeekSchedule) TeamsOnBye() map[string]bool {
	playing := make(map[string]bool, len(s.matchups)*2)
	for _, m := range s.matchups {
		playing[s.resolver.Standardize(m.HomeTeam)] = true
		playing[s.resolver.Standardize(m.AwayTeam)] = true
	}
	bye := make(map[string]bool)
	for _, t := range AllTeams() {
		if !playing[t.Name] {
			bye[t.Name] = true
		}
	}
	return bye
}
