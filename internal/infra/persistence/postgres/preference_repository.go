// Package postgres contains the PostgreSQL implementation of the preference store using GORM.
package postgres

import (
	"context"
	"time"

	domainerrors "cafefinder/internal/domain/errors"
	"cafefinder/internal/domain/repository"
	"cafefinder/internal/infra/persistence/model"

	"cafefinder/internal/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// preferenceRepository implements repository.PreferenceRepository.
type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository is the constructor for preferenceRepository.
func NewPreferenceRepository(db *gorm.DB) repository.PreferenceRepository {
	return &preferenceRepository{db: db}
}

// Get retrieves the preference blob stored under key.
func (repo *preferenceRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var prefM model.PreferenceModel

	err := repo.db.WithContext(ctx).
		Where("key = ?", key).
		First(&prefM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPreferenceNotFound
		}

		return nil, domainerrors.NewStorageError(err, "failed to find preferences by key")
	}

	return []byte(prefM.Value), nil
}

// Put upserts the preference blob stored under key.
func (repo *preferenceRepository) Put(ctx context.Context, key string, value []byte) error {
	prefM := &model.PreferenceModel{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now(),
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(prefM).Error
	if err != nil {
		return domainerrors.NewStorageError(err, "failed to upsert preferences")
	}

	return nil
}
