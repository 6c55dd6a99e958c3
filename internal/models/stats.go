package models

import (
	"time"
)

// StatCategory splits touchdown tables into rushing and receiving/passing.
type StatCategory string

const (
	CategoryRush StatCategory = "rush"
	CategoryPass StatCategory = "pass"
)

// PlayerWeekStat is one player's usage line for one week, as ingested from
// the weekly volume table. Share fields are derived at read time, never
// written back.
type PlayerWeekStat struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Season           int       `gorm:"not null;index:idx_player_week,priority:1" json:"season"`
	Week             int       `gorm:"not null;index:idx_player_week,priority:2" json:"week"`
	PlayerName       string    `gorm:"size:100;not null;index" json:"player_name"`
	Team             string    `gorm:"size:100;not null" json:"team"`
	Position         string    `gorm:"size:10;not null" json:"position"`
	Targets          int       `json:"targets"`
	Carries          int       `json:"carries"`
	RedZoneTargets   int       `json:"red_zone_targets"`
	RedZoneCarries   int       `json:"red_zone_carries"`
	TeamPoints       int       `json:"team_points"`
	TeamPassAttempts int       `json:"team_pass_attempts"`
	TeamRushAttempts int       `json:"team_rush_attempts"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (PlayerWeekStat) TableName() string {
	return "player_week_stats"
}

// Touches is total opportunities (targets plus carries).
func (s *PlayerWeekStat) Touches() int {
	return s.Targets + s.Carries
}

// RedZoneOpportunities is total red-zone usage.
func (s *PlayerWeekStat) RedZoneOpportunities() int {
	return s.RedZoneTargets + s.RedZoneCarries
}

// TouchShare is the player's share of team offensive plays, 0 when the team
// totals are missing.
func (s *PlayerWeekStat) TouchShare() float64 {
	teamPlays := s.TeamPassAttempts + s.TeamRushAttempts
	if teamPlays == 0 {
		return 0
	}
	return float64(s.Touches()) / float64(teamPlays)
}

// SeasonTouchdown is one row of a season touchdown table: a player's
// touchdown count in one category, cumulative through a week. Weekly
// snapshots let trailing windows be computed by diffing two weeks.
type SeasonTouchdown struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Season     int          `gorm:"not null;uniqueIndex:idx_season_td,priority:1" json:"season"`
	ThroughWeek int         `gorm:"not null;uniqueIndex:idx_season_td,priority:2" json:"through_week"`
	Category   StatCategory `gorm:"size:10;not null;uniqueIndex:idx_season_td,priority:3" json:"category"`
	PlayerName string       `gorm:"size:100;not null;uniqueIndex:idx_season_td,priority:4" json:"player_name"`
	Team       string       `gorm:"size:100;not null" json:"team"`
	Touchdowns int          `gorm:"not null" json:"touchdowns"`
	Games      int          `json:"games"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (SeasonTouchdown) TableName() string {
	return "season_touchdowns"
}

// PerGame is trailing touchdowns per game, 0 when no games are recorded.
func (t *SeasonTouchdown) PerGame() float64 {
	if t.Games == 0 {
		return 0
	}
	return float64(t.Touchdowns) / float64(t.Games)
}

// DefenseStat is one team's touchdowns-allowed rate in one category
// (rush defense or pass defense), with its league rank.
type DefenseStat struct {
	ID                 uint         `gorm:"primaryKey" json:"id"`
	Season             int          `gorm:"not null;uniqueIndex:idx_def_season_cat,priority:1" json:"season"`
	Category           StatCategory `gorm:"size:10;not null;uniqueIndex:idx_def_season_cat,priority:2" json:"category"`
	Team               string       `gorm:"size:100;not null;uniqueIndex:idx_def_season_cat,priority:3" json:"team"`
	TouchdownsPerGame  float64      `gorm:"not null" json:"touchdowns_per_game"`
	Rank               int          `json:"rank"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func (DefenseStat) TableName() string {
	return "defense_stats"
}
