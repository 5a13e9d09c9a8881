package models

import "time"

// Review moderation states. "review" is the initial, awaiting-moderation
// state; only approved reviews count toward a game's rating.
const (
	StatusPending  = "review"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidReviewStatus reports whether s is one of the moderation states.
func ValidReviewStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID     int64     `json:"user_id" gorm:"not null;index;uniqueIndex:idx_reviews_user_game"`
	GameID     int64     `json:"game_id" gorm:"not null;index;uniqueIndex:idx_reviews_user_game"`
	Rank       int       `json:"rank" gorm:"not null;check:rank >= 1 AND rank <= 10"`
	ReviewText string    `json:"review_text" gorm:"type:text"`
	Status     string    `json:"status" gorm:"not null;default:'review'"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Game Game `json:"-" gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}

// GameReview is the public read shape for a game's approved reviews.
type GameReview struct {
	ID         int64     `json:"id"`
	Rank       int       `json:"rank"`
	ReviewText string    `json:"review_text"`
	CreatedAt  time.Time `json:"created_at"`
	UserLogin  string    `json:"userLogin"`
	UserID     int64     `json:"user_id"`
}

// PendingReview is the moderation queue read shape: a review joined with
// the owning user's login and the game's name.
type PendingReview struct {
	ID         int64     `json:"id"`
	Rank       int       `json:"rank"`
	ReviewText string    `json:"review_text"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UserLogin  string    `json:"userLogin"`
	GameTitle  string    `json:"gameTitle"`
	UserID     int64     `json:"user_id"`
	GameID     int64     `json:"game_id"`
}
