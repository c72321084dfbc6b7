package repository

import (
	"context"

	"gorm.io/gorm"

	"ticker-screener/internal/model"
)

type ScreenSnapshotRepository interface {
	Create(ctx context.Context, snapshot *model.ScreenSnapshot) error
	GetLatest(ctx context.Context, limit int) ([]model.ScreenSnapshot, error)
}

type screenSnapshotRepository struct {
	db *gorm.DB
}

func NewScreenSnapshotRepository(db *gorm.DB) ScreenSnapshotRepository {
	return &screenSnapshotRepository{db: db}
}

func (s *screenSnapshotRepository) Create(ctx context.Context, snapshot *model.ScreenSnapshot) error {
	return s.db.WithContext(ctx).Create(snapshot).Error
}

func (s *screenSnapshotRepository) GetLatest(ctx context.Context, limit int) ([]model.ScreenSnapshot, error) {
	var snapshots []model.ScreenSnapshot
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
