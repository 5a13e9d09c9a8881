package repository

import (
	"context"
	"fmt"

	"gamehub/internal/api/models"

	"gorm.io/gorm"
)

type PublisherRepository interface {
	List(ctx context.Context) ([]models.Publisher, error)
	FindByName(ctx context.Context, name string) (*models.Publisher, error)
	Create(ctx context.Context, publisher *models.Publisher) error
	Delete(ctx context.Context, id int64) (int64, []int64, error)
}

type publisherRepository struct {
	db *gorm.DB
}

func NewPublisherRepository(db *gorm.DB) PublisherRepository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) List(ctx context.Context) ([]models.Publisher, error) {
	var list []models.Publisher
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list publishers: %w", err)
	}
	return list, nil
}

// FindByName matches case-insensitively; catalog filters accept publisher
// names as typed by users.
func (r *publisherRepository) FindByName(ctx context.Context, name string) (*models.Publisher, error) {
	var publisher models.Publisher
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).Take(&publisher).Error
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

func (r *publisherRepository) Create(ctx context.Context, publisher *models.Publisher) error {
	if err := r.db.WithContext(ctx).Create(publisher).Error; err != nil {
		if isUniqueViolation(err) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("create publisher: %w", err)
	}
	return nil
}

// Delete removes a publisher; referencing games keep their row and get a
// cleared publisher_id via ON DELETE SET NULL. The ids of those games are
// returned so the caller can drop their cached details.
func (r *publisherRepository) Delete(ctx context.Context, id int64) (int64, []int64, error) {
	var rows int64
	var gameIDs []int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Game{}).Where("publisher_id = ?", id).Pluck("id", &gameIDs).Error
		if err != nil {
			return fmt.Errorf("collect games for publisher %d: %w", id, err)
		}
		res := tx.Delete(&models.Publisher{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete publisher %d: %w", id, res.Error)
		}
		rows = res.RowsAffected
		return nil
	})
	return rows, gameIDs, err
}
