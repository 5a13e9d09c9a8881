package models

// Game is a catalog entry. Rating is derived from approved reviews and is
// never written by clients; only the review repository recomputes it.
type Game struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"not null;index"`
	Genre       string  `json:"genre"` // comma-delimited display list, e.g. "Action, RPG"
	Year        int     `json:"year" gorm:"not null"`
	Platforms   string  `json:"platforms" gorm:"not null"` // comma-delimited
	PublisherID *int64  `json:"publisher_id,omitempty" gorm:"index"`
	DeveloperID *int64  `json:"developer_id,omitempty" gorm:"index"`
	Description string  `json:"description" gorm:"type:text"`
	Rating      float64 `json:"rating" gorm:"not null;default:0"`

	// Associations
	Publisher *Publisher `json:"-" gorm:"foreignKey:PublisherID;constraint:OnDelete:SET NULL;"`
	Developer *Developer `json:"-" gorm:"foreignKey:DeveloperID;constraint:OnDelete:SET NULL;"`
}

func (Game) TableName() string {
	return "games"
}

// GameRow is the read shape for catalog listings and detail views:
// a games row joined with its publisher/developer names.
type GameRow struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Genre         string  `json:"genre"`
	Year          int     `json:"year"`
	Platforms     string  `json:"platforms"`
	PublisherID   *int64  `json:"publisher_id,omitempty"`
	DeveloperID   *int64  `json:"developer_id,omitempty"`
	Description   string  `json:"description"`
	Rating        float64 `json:"rating"`
	PublisherName *string `json:"publisher_name"`
	DeveloperName *string `json:"developer_name"`
}
