package models

import (
	"time"

	"gorm.io/datatypes"
)

// RecommendationRun stores one engine run for audit. Request holds the
// options the run was invoked with, Response the full ranked list including
// per-candidate reasoning trails.
type RecommendationRun struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	RunID         string         `gorm:"size:36;uniqueIndex;not null" json:"run_id"`
	Season        int            `gorm:"not null" json:"season"`
	Week          int            `gorm:"not null;index" json:"week"`
	WeightProfile string         `gorm:"size:50;not null" json:"weight_profile"`
	Request       datatypes.JSON `json:"request"`
	Response      datatypes.JSON `json:"response"`
	Candidates    int            `json:"candidates"`
	Selected      int            `json:"selected"`
	Rejected      int            `json:"rejected"`
	DurationMs    int64          `json:"duration_ms"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (RecommendationRun) TableName() string {
	return "recommendation_runs"
}
