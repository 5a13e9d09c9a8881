package repository

import (
	"errors"
	"fmt"

	"gamehub/internal/api/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByLogin(login string) (*models.User, error)
	FindByID(id int64) (*models.User, error)
	List() ([]models.User, error)
	UpdateStatus(id int64, status string) (int64, error)
	Delete(id int64) (int64, []int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByLogin(login string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("login = ?", login).Take(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id int64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users without password hashes.
func (r *userRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Select("id", "login", "role", "status").Order("id ASC").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) UpdateStatus(id int64, status string) (int64, error) {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return 0, fmt.Errorf("update user %d status: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes a user and, via ON DELETE CASCADE, all their reviews.
// Games whose approved-review set shrinks get their rating recomputed in
// the same transaction; their ids are returned so the caller can drop
// their cached details.
func (r *userRepository) Delete(id int64) (int64, []int64, error) {
	var rows int64
	var gameIDs []int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Review{}).
			Distinct("game_id").
			Where("user_id = ? AND status = ?", id, models.StatusApproved).
			Pluck("game_id", &gameIDs).Error
		if err != nil {
			return fmt.Errorf("collect rated games for user %d: %w", id, err)
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user %d: %w", id, res.Error)
		}
		rows = res.RowsAffected
		if rows == 0 {
			return nil
		}

		for _, gameID := range gameIDs {
			if err := recomputeGameRating(tx, gameID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil, nil
	}
	return rows, gameIDs, err
}
