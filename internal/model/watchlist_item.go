package model

import "time"

// WatchlistItem is one tracked ticker. Tickers are stored upper-cased and
// unique; re-adding an existing ticker replaces its asset type and resets
// added_at.
type WatchlistItem struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	Ticker    string    `gorm:"uniqueIndex;not null" json:"ticker"`
	AssetType string    `gorm:"not null;default:Stock" json:"asset_type"`
	AddedAt   time.Time `gorm:"not null" json:"added_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (WatchlistItem) TableName() string {
	return "watchlist_items"
}
