package models

import (
	"time"
)

// Matchup is one scheduled game. Team names are stored as the source wrote
// them; canonicalization happens in the nfl package at lookup time.
type Matchup struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Season    int       `gorm:"not null;index:idx_matchup_week,priority:1" json:"season"`
	Week      int       `gorm:"not null;index:idx_matchup_week,priority:2" json:"week"`
	AwayTeam  string    `gorm:"size:100;not null" json:"away_team"`
	HomeTeam  string    `gorm:"size:100;not null" json:"home_team"`
	Kickoff   time.Time `json:"kickoff"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Matchup) TableName() string {
	return "matchups"
}

// TeamInfo stores full team information keyed by abbreviation.
type TeamInfo struct {
	Abbreviation string    `gorm:"primaryKey;size:10" json:"abbreviation"`
	FullName     string    `gorm:"size:100;not null" json:"full_name"`
	Stadium      string    `gorm:"size:100" json:"stadium"`
	Outdoor      bool      `json:"outdoor"`
	Timezone     string    `gorm:"size:50" json:"timezone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (TeamInfo) TableName() string {
	return "team_infos"
}
