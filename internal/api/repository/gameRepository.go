package repository

import (
	"context"
	"fmt"
	"strings"

	"gamehub/internal/api/models"

	"gorm.io/gorm"
)

// GameFilter carries resolved, typed catalog filters. Optional filters are
// nil pointers; they are ANDed together. PublisherID/DeveloperID of -1
// means "a name was given but did not resolve", which selects zero rows.
type GameFilter struct {
	Search      string
	Year        *int
	Genres      []string
	PublisherID *int64
	DeveloperID *int64
	MinRating   *float64
	MaxRating   *float64
}

// sortColumns is the allow-list of catalog sort keys. The mapped values
// are the only identifiers that ever reach the ORDER BY clause; client
// input is used solely to look them up.
var sortColumns = map[string]string{
	"name":      "g.name",
	"year":      "g.year",
	"rating":    "g.rating",
	"publisher": "p.name",
	"developer": "d.name",
}

// OrderClause resolves a client-supplied sort key and direction to a
// server-controlled ORDER BY expression. Unknown keys fall back to name
// ascending; the direction is DESC only for the literal "DESC".
func OrderClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[strings.ToLower(sortBy)]
	if !ok {
		column = "g.name"
		sortOrder = "ASC"
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "DESC") {
		direction = "DESC"
	}
	return column + " " + direction
}

type GameRepository interface {
	List(ctx context.Context, filter GameFilter, sortBy, sortOrder string, limit, offset int) ([]models.GameRow, error)
	Count(ctx context.Context, filter GameFilter) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.GameRow, error)
	Create(ctx context.Context, game *models.Game) error
	Update(ctx context.Context, id int64, fields map[string]any) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) List(ctx context.Context, filter GameFilter, sortBy, sortOrder string, limit, offset int) ([]models.GameRow, error) {
	var rows []models.GameRow
	q := r.db.WithContext(ctx).
		Table("games g").
		Select("g.id, g.name, g.genre, g.year, g.platforms, g.publisher_id, g.developer_id, g.description, g.rating, p.name AS publisher_name, d.name AS developer_name").
		Joins("LEFT JOIN publishers p ON g.publisher_id = p.id").
		Joins("LEFT JOIN developers d ON g.developer_id = d.id")
	q = applyGameFilter(q, filter)
	err := q.Order(OrderClause(sortBy, sortOrder)).
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return rows, nil
}

// Count shares the filter predicate with List but skips joins, sorting and
// pagination; every filtered column lives on the games table.
func (r *gameRepository) Count(ctx context.Context, filter GameFilter) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).Table("games g")
	q = applyGameFilter(q, filter)
	if err := q.Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count games: %w", err)
	}
	return total, nil
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (*models.GameRow, error) {
	var row models.GameRow
	err := r.db.WithContext(ctx).
		Table("games g").
		Select("g.id, g.name, g.genre, g.year, g.platforms, g.publisher_id, g.developer_id, g.description, g.rating, p.name AS publisher_name, d.name AS developer_name").
		Joins("LEFT JOIN publishers p ON g.publisher_id = p.id").
		Joins("LEFT JOIN developers d ON g.developer_id = d.id").
		Where("g.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

// Update applies the given column values. Rating is not an updatable
// column here; the review repository owns it.
func (r *gameRepository) Update(ctx context.Context, id int64, fields map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Game{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, fmt.Errorf("update game %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes a game; its reviews go with it via ON DELETE CASCADE.
func (r *gameRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&models.Game{}, id)
	if res.Error != nil {
		return 0, fmt.Errorf("delete game %d: %w", id, res.Error)
	}
	return res.RowsAffected, nil
}

// applyGameFilter accumulates the parameterized WHERE predicates shared by
// List and Count. Values are always bound, never interpolated.
func applyGameFilter(q *gorm.DB, f GameFilter) *gorm.DB {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		q = q.Where("(g.name ILIKE ? OR g.description ILIKE ?)", pattern, pattern)
	}
	if f.Year != nil {
		q = q.Where("g.year = ?", *f.Year)
	}
	if len(f.Genres) > 0 {
		lowered := make([]string, 0, len(f.Genres))
		for _, genre := range f.Genres {
			lowered = append(lowered, strings.ToLower(strings.TrimSpace(genre)))
		}
		// The stored genre field is a comma-delimited list; a game matches
		// when any of its genre tokens equals any requested value.
		q = q.Where(
			"EXISTS (SELECT 1 FROM unnest(string_to_array(lower(g.genre), ',')) AS genre_token WHERE btrim(genre_token) IN ?)",
			lowered,
		)
	}
	if f.PublisherID != nil {
		q = q.Where("g.publisher_id = ?", *f.PublisherID)
	}
	if f.DeveloperID != nil {
		q = q.Where("g.developer_id = ?", *f.DeveloperID)
	}
	if f.MinRating != nil {
		q = q.Where("g.rating >= ?", *f.MinRating)
	}
	if f.MaxRating != nil {
		q = q.Where("g.rating <= ?", *f.MaxRating)
	}
	return q
}
