package model

import (
	"time"

	"gorm.io/datatypes"
)

// ScreenSnapshot records one full watchlist scan: which criteria were
// enabled and the per-ticker verdicts, kept as JSONB so past runs stay
// readable after the verdict shape evolves.
type ScreenSnapshot struct {
	ID           uint           `gorm:"primarykey"`
	Criteria     datatypes.JSON `gorm:"type:jsonb"`
	Results      datatypes.JSON `gorm:"type:jsonb"`
	TickerCount  int            `gorm:"not null"`
	PassingCount int            `gorm:"not null"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (ScreenSnapshot) TableName() string {
	return "screen_snapshots"
}
