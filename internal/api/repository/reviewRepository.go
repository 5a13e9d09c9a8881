package repository

import (
	"errors"
	"fmt"

	"gamehub/internal/api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateReview is returned when the (user_id, game_id) unique index
// rejects an insert. The service layer also pre-checks for an existing
// review, but the constraint is what closes the concurrent-submit race.
var ErrDuplicateReview = errors.New("duplicate review")

type ReviewRepository interface {
	Create(review *models.Review) error
	Update(review *models.Review) error
	UpdateStatus(reviewID int64, status string) (int64, error)
	Delete(reviewID int64) (int64, error)
	GetByID(reviewID int64) (*models.Review, error)
	GetByUserAndGame(userID, gameID int64) (*models.Review, error)
	ListPending() ([]models.PendingReview, error)
	ListApprovedByGame(gameID int64) ([]models.GameReview, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a review and recomputes the game's rating in the same
// transaction. New reviews start pending, so the recompute is normally a
// no-op, but the insert and the aggregate can never diverge.
func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateReview
			}
			return fmt.Errorf("create review: %w", err)
		}
		return recomputeGameRating(tx, review.GameID)
	})
}

// Update saves rank/text/status changes for an existing review. An owner
// edit can pull a previously approved review out of the approved set, so
// the rating recompute runs in the same transaction.
func (r *reviewRepository) Update(review *models.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Review{}).Where("id = ?", review.ID).
			Updates(map[string]any{
				"rank":        review.Rank,
				"review_text": review.ReviewText,
				"status":      review.Status,
			})
		if res.Error != nil {
			return fmt.Errorf("update review %d: %w", review.ID, res.Error)
		}
		return recomputeGameRating(tx, review.GameID)
	})
}

// UpdateStatus moves a review between moderation states and recomputes the
// game's rating atomically. Returns the number of rows changed: 0 means
// the review is missing or already in the requested state, which the
// caller tells apart with a separate existence check.
func (r *reviewRepository) UpdateStatus(reviewID int64, status string) (int64, error) {
	var rows int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // rows stays 0
			}
			return fmt.Errorf("load review %d: %w", reviewID, err)
		}

		res := tx.Model(&models.Review{}).
			Where("id = ? AND status <> ?", reviewID, status).
			Update("status", status)
		if res.Error != nil {
			return fmt.Errorf("update review %d status: %w", reviewID, res.Error)
		}
		rows = res.RowsAffected
		if rows == 0 {
			return nil
		}
		return recomputeGameRating(tx, review.GameID)
	})
	return rows, err
}

// Delete removes a review and recomputes the game's rating atomically.
// Returns 0 rows when the review does not exist.
func (r *reviewRepository) Delete(reviewID int64) (int64, error) {
	var rows int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := tx.First(&review, reviewID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("load review %d: %w", reviewID, err)
		}

		res := tx.Delete(&models.Review{}, reviewID)
		if res.Error != nil {
			return fmt.Errorf("delete review %d: %w", reviewID, res.Error)
		}
		rows = res.RowsAffected
		if rows == 0 {
			return nil
		}
		return recomputeGameRating(tx, review.GameID)
	})
	return rows, err
}

func (r *reviewRepository) GetByID(reviewID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, reviewID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByUserAndGame(userID, gameID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("user_id = ? AND game_id = ?", userID, gameID).First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListPending returns the moderation queue, most recent first, with the
// owning user's login and the game's name joined in.
func (r *reviewRepository) ListPending() ([]models.PendingReview, error) {
	var list []models.PendingReview
	err := r.db.Table("reviews r").
		Select("r.id, r.rank, r.review_text, r.status, r.created_at, u.login AS user_login, g.name AS game_title, r.user_id, r.game_id").
		Joins("JOIN users u ON r.user_id = u.id").
		Joins("JOIN games g ON r.game_id = g.id").
		Where("r.status = ?", models.StatusPending).
		Order("r.created_at DESC").
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list pending reviews: %w", err)
	}
	return list, nil
}

// ListApprovedByGame returns a game's publicly visible reviews, most
// recent first, each carrying the reviewer's login.
func (r *reviewRepository) ListApprovedByGame(gameID int64) ([]models.GameReview, error) {
	var list []models.GameReview
	err := r.db.Table("reviews r").
		Select("r.id, r.rank, r.review_text, r.created_at, u.login AS user_login, r.user_id").
		Joins("JOIN users u ON r.user_id = u.id").
		Where("r.game_id = ? AND r.status = ?", gameID, models.StatusApproved).
		Order("r.created_at DESC").
		Scan(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews for game %d: %w", gameID, err)
	}
	return list, nil
}

// recomputeGameRating sets the game's rating to the mean rank over its
// approved reviews, or 0 when none exist. Idempotent; must run inside the
// transaction that mutated the review set.
func recomputeGameRating(tx *gorm.DB, gameID int64) error {
	err := tx.Exec(`
		UPDATE games
		SET rating = COALESCE((
			SELECT AVG(rank)::float8
			FROM reviews
			WHERE game_id = ? AND status = ?
		), 0)
		WHERE id = ?`, gameID, models.StatusApproved, gameID).Error
	if err != nil {
		return fmt.Errorf("recompute rating for game %d: %w", gameID, err)
	}
	return nil
}

// isUniqueViolation reports whether err is a postgres unique constraint
// failure (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
