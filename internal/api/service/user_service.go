package service

import (
	"context"
	"errors"

	"gamehub/internal/api/dto"
	"gamehub/internal/api/models"
	"gamehub/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidUserStatus = errors.New("status must be 'active' or 'blocked'")
)

type UserService interface {
	ListUsers() ([]models.User, error)
	UpdateStatus(userID int64, status string) error
	GetProfile(userID int64) (*dto.UserProfileResponse, error)
	DeleteUser(userID int64) error
}

type userService struct {
	userRepo  repository.UserRepository
	gameCache GameCache
}

func NewUserService(userRepo repository.UserRepository, gameCache GameCache) UserService {
	return &userService{userRepo: userRepo, gameCache: gameCache}
}

func (s *userService) ListUsers() ([]models.User, error) {
	return s.userRepo.List()
}

// UpdateStatus blocks or unblocks a user. Blocked users cannot log in;
// their existing reviews are untouched.
func (s *userService) UpdateStatus(userID int64, status string) error {
	if status != models.UserActive && status != models.UserBlocked {
		return ErrInvalidUserStatus
	}
	rows, err := s.userRepo.UpdateStatus(userID, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *userService) GetProfile(userID int64) (*dto.UserProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &dto.UserProfileResponse{Login: user.Login, Status: user.Status}, nil
}

// DeleteUser removes a user; the store cascades deletion of their reviews
// and recomputes affected game ratings in the same transaction. Cached
// details of those games carry the old rating, so they are dropped.
func (s *userService) DeleteUser(userID int64) error {
	rows, gameIDs, err := s.userRepo.Delete(userID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	for _, gameID := range gameIDs {
		s.gameCache.Invalidate(context.Background(), gameID)
	}
	return nil
}
