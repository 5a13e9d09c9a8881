package repository

import (
	"context"
	"fmt"

	"gamehub/internal/api/models"

	"gorm.io/gorm"
)

type DeveloperRepository interface {
	List(ctx context.Context) ([]models.Developer, error)
	FindByName(ctx context.Context, name string) (*models.Developer, error)
	Create(ctx context.Context, developer *models.Developer) error
	Delete(ctx context.Context, id int64) (int64, []int64, error)
}

type developerRepository struct {
	db *gorm.DB
}

func NewDeveloperRepository(db *gorm.DB) DeveloperRepository {
	return &developerRepository{db: db}
}

func (r *developerRepository) List(ctx context.Context) ([]models.Developer, error) {
	var list []models.Developer
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}
	return list, nil
}

func (r *developerRepository) FindByName(ctx context.Context, name string) (*models.Developer, error) {
	var developer models.Developer
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).Take(&developer).Error
	if err != nil {
		return nil, err
	}
	return &developer, nil
}

func (r *developerRepository) Create(ctx context.Context, developer *models.Developer) error {
	if err := r.db.WithContext(ctx).Create(developer).Error; err != nil {
		if isUniqueViolation(err) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("create developer: %w", err)
	}
	return nil
}

// Delete removes a developer and returns the ids of games whose
// developer_id the store clears, so their cached details can be dropped.
func (r *developerRepository) Delete(ctx context.Context, id int64) (int64, []int64, error) {
	var rows int64
	var gameIDs []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Game{}).Where("developer_id = ?", id).Pluck("id", &gameIDs).Error
		if err != nil {
			return fmt.Errorf("collect games for developer %d: %w", id, err)
		}
		res := tx.Delete(&models.Developer{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete developer %d: %w", id, res.Error)
		}
		rows = res.RowsAffected
		return nil
	})
	return rows, gameIDs, err
}
