package service

import (
	"context"
	"errors"

	"gamehub/internal/api/models"
	"gamehub/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrReviewExists        = errors.New("user has already reviewed this game")
	ErrReviewNotFound      = errors.New("review not found")
	ErrGameNotFound        = errors.New("game not found")
	ErrRankOutOfRange      = errors.New("rank must be an integer between 1 and 10")
	ErrInvalidReviewStatus = errors.New("status must be one of: approved, rejected, review")
	ErrNothingToUpdate     = errors.New("nothing to update")
)

type ReviewService interface {
	Submit(userID, gameID int64, rank int, text string) (*models.Review, error)
	GetOwn(userID, gameID int64) (*models.Review, error)
	UpdateOwn(userID, gameID int64, rank *int, text *string) (*models.Review, error)
	ListPending() ([]models.PendingReview, error)
	ListApprovedByGame(gameID int64) ([]models.GameReview, error)
	SetStatus(reviewID int64, status string) (changed bool, err error)
	Remove(reviewID int64) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	gameRepo   repository.GameRepository
	gameCache  GameCache
}

func NewReviewService(reviewRepo repository.ReviewRepository, gameRepo repository.GameRepository, gameCache GameCache) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		gameRepo:   gameRepo,
		gameCache:  gameCache,
	}
}

// Submit creates a pending review. One review per (user, game): a fast
// existence check answers the common case, the unique index answers the
// concurrent one.
func (s *reviewService) Submit(userID, gameID int64, rank int, text string) (*models.Review, error) {
	if rank < 1 || rank > 10 {
		return nil, ErrRankOutOfRange
	}

	ctx := context.Background()
	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if _, err := s.reviewRepo.GetByUserAndGame(userID, gameID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		UserID:     userID,
		GameID:     gameID,
		Rank:       rank,
		ReviewText: text,
		Status:     models.StatusPending,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	return review, nil
}

func (s *reviewService) GetOwn(userID, gameID int64) (*models.Review, error) {
	review, err := s.reviewRepo.GetByUserAndGame(userID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return review, nil
}

// UpdateOwn applies the given fields to the caller's review and always
// resets it to pending: any prior moderation decision is discarded. If the
// review was approved the reset shrinks the approved set, so the save and
// the rating recompute share one transaction in the repository.
func (s *reviewService) UpdateOwn(userID, gameID int64, rank *int, text *string) (*models.Review, error) {
	if rank == nil && text == nil {
		return nil, ErrNothingToUpdate
	}
	if rank != nil && (*rank < 1 || *rank > 10) {
		return nil, ErrRankOutOfRange
	}

	review, err := s.reviewRepo.GetByUserAndGame(userID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}

	if rank != nil {
		review.Rank = *rank
	}
	if text != nil {
		review.ReviewText = *text
	}
	review.Status = models.StatusPending

	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	s.gameCache.Invalidate(context.Background(), gameID)
	return review, nil
}

func (s *reviewService) ListPending() ([]models.PendingReview, error) {
	return s.reviewRepo.ListPending()
}

func (s *reviewService) ListApprovedByGame(gameID int64) ([]models.GameReview, error) {
	return s.reviewRepo.ListApprovedByGame(gameID)
}

// SetStatus moves a review between moderation states. Returns changed =
// false without error when the review already had the requested status.
func (s *reviewService) SetStatus(reviewID int64, status string) (bool, error) {
	if !models.ValidReviewStatus(status) {
		return false, ErrInvalidReviewStatus
	}

	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrReviewNotFound
		}
		return false, err
	}

	rows, err := s.reviewRepo.UpdateStatus(reviewID, status)
	if err != nil {
		return false, err
	}
	if rows == 0 {
		// Already in the requested state; nothing recomputed.
		return false, nil
	}
	s.gameCache.Invalidate(context.Background(), review.GameID)
	return true, nil
}

func (s *reviewService) Remove(reviewID int64) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	rows, err := s.reviewRepo.Delete(reviewID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrReviewNotFound
	}
	s.gameCache.Invalidate(context.Background(), review.GameID)
	return nil
}
