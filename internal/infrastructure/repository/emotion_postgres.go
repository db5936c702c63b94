package repository

import (
	"context"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/OWAISARSHED/LearnPak/internal/domain"
)

type EmotionRepository struct {
	db *gorm.DB
}

func NewEmotionRepository(db *gorm.DB) *EmotionRepository {
	return &EmotionRepository{db: db}
}

func (r *EmotionRepository) Create(ctx context.Context, entry *domain.EmotionLog) error {
	return pkgerrors.Wrap(r.db.WithContext(ctx).Create(entry).Error, "log emotion")
}
