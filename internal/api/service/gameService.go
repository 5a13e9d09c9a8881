package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"gamehub/internal/api/dto"
	"gamehub/internal/api/models"
	"gamehub/internal/api/repository"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

var (
	ErrPublisherExists   = errors.New("publisher already exists")
	ErrPublisherNotFound = errors.New("publisher not found")
	ErrDeveloperExists   = errors.New("developer already exists")
	ErrDeveloperNotFound = errors.New("developer not found")
)

// CatalogQuery carries the raw catalog query parameters as received from
// the client. Parsing is tolerant: an unparseable numeric filter behaves
// as if it were absent.
type CatalogQuery struct {
	Search    string
	Year      string
	Genres    []string
	Publisher string
	Developer string
	MinRating string
	MaxRating string
	SortBy    string
	SortOrder string
	Page      string
	Limit     string
}

type GameService interface {
	ListGames(ctx context.Context, query CatalogQuery) (*dto.GameListResponse, error)
	GetGameByID(ctx context.Context, id int64) (*models.GameRow, error)
	CreateGame(ctx context.Context, req dto.CreateGameDTO) (*models.GameRow, error)
	UpdateGame(ctx context.Context, id int64, req dto.UpdateGameDTO) error
	DeleteGame(ctx context.Context, id int64) error

	ListPublishers(ctx context.Context) ([]models.Publisher, error)
	CreatePublisher(ctx context.Context, name string) (*models.Publisher, error)
	DeletePublisher(ctx context.Context, id int64) error
	ListDevelopers(ctx context.Context) ([]models.Developer, error)
	CreateDeveloper(ctx context.Context, name string) (*models.Developer, error)
	DeleteDeveloper(ctx context.Context, id int64) error
}

type gameService struct {
	gameRepo      repository.GameRepository
	publisherRepo repository.PublisherRepository
	developerRepo repository.DeveloperRepository
	gameCache     GameCache
}

func NewGameService(
	gameRepo repository.GameRepository,
	publisherRepo repository.PublisherRepository,
	developerRepo repository.DeveloperRepository,
	gameCache GameCache,
) GameService {
	return &gameService{
		gameRepo:      gameRepo,
		publisherRepo: publisherRepo,
		developerRepo: developerRepo,
		gameCache:     gameCache,
	}
}

// ListGames resolves the raw query into a typed filter, runs the matching
// count and page queries, and shapes the paginated response.
func (s *gameService) ListGames(ctx context.Context, query CatalogQuery) (*dto.GameListResponse, error) {
	filter := repository.GameFilter{Search: strings.TrimSpace(query.Search)}

	if year, err := strconv.Atoi(query.Year); err == nil {
		filter.Year = &year
	}
	if min, err := strconv.ParseFloat(query.MinRating, 64); err == nil {
		filter.MinRating = &min
	}
	if max, err := strconv.ParseFloat(query.MaxRating, 64); err == nil {
		filter.MaxRating = &max
	}
	filter.Genres = splitGenres(query.Genres)
	filter.PublisherID = s.resolvePublisher(ctx, query.Publisher)
	filter.DeveloperID = s.resolveDeveloper(ctx, query.Developer)

	page := 1
	if p, err := strconv.Atoi(query.Page); err == nil && p > 0 {
		page = p
	}
	limit := defaultPageSize
	if l, err := strconv.Atoi(query.Limit); err == nil && l > 0 {
		limit = l
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := (page - 1) * limit

	totalGames, err := s.gameRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	games, err := s.gameRepo.List(ctx, filter, query.SortBy, query.SortOrder, limit, offset)
	if err != nil {
		return nil, err
	}

	totalPages := int(totalGames) / limit
	if int(totalGames)%limit != 0 {
		totalPages++
	}

	if games == nil {
		games = []models.GameRow{}
	}
	return &dto.GameListResponse{
		Games:       games,
		TotalGames:  totalGames,
		TotalPages:  totalPages,
		CurrentPage: page,
	}, nil
}

func (s *gameService) GetGameByID(ctx context.Context, id int64) (*models.GameRow, error) {
	if id <= 0 {
		return nil, ErrGameNotFound
	}
	if row := s.gameCache.Get(ctx, id); row != nil {
		return row, nil
	}
	row, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	s.gameCache.Set(ctx, row)
	return row, nil
}

func (s *gameService) CreateGame(ctx context.Context, req dto.CreateGameDTO) (*models.GameRow, error) {
	game := &models.Game{
		Name:        req.Name,
		Genre:       req.Genre,
		Year:        req.Year,
		Platforms:   req.Platforms,
		PublisherID: req.PublisherID,
		DeveloperID: req.DeveloperID,
		Description: req.Description,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}
	return s.gameRepo.GetByID(ctx, game.ID)
}

func (s *gameService) UpdateGame(ctx context.Context, id int64, req dto.UpdateGameDTO) error {
	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Genre != nil {
		fields["genre"] = *req.Genre
	}
	if req.Year != nil {
		fields["year"] = *req.Year
	}
	if req.Platforms != nil {
		fields["platforms"] = *req.Platforms
	}
	if req.PublisherID != nil {
		fields["publisher_id"] = *req.PublisherID
	}
	if req.DeveloperID != nil {
		fields["developer_id"] = *req.DeveloperID
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if len(fields) == 0 {
		return ErrNothingToUpdate
	}

	rows, err := s.gameRepo.Update(ctx, id, fields)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGameNotFound
	}
	s.gameCache.Invalidate(ctx, id)
	return nil
}

// DeleteGame removes a game; the store cascades deletion of its reviews.
func (s *gameService) DeleteGame(ctx context.Context, id int64) error {
	rows, err := s.gameRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGameNotFound
	}
	s.gameCache.Invalidate(ctx, id)
	return nil
}

func (s *gameService) ListPublishers(ctx context.Context) ([]models.Publisher, error) {
	return s.publisherRepo.List(ctx)
}

func (s *gameService) CreatePublisher(ctx context.Context, name string) (*models.Publisher, error) {
	publisher := &models.Publisher{Name: strings.TrimSpace(name)}
	if err := s.publisherRepo.Create(ctx, publisher); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrPublisherExists
		}
		return nil, err
	}
	return publisher, nil
}

// DeletePublisher removes a publisher. Referencing games get their
// publisher_id cleared by the store, so their cached details go stale and
// are dropped.
func (s *gameService) DeletePublisher(ctx context.Context, id int64) error {
	rows, gameIDs, err := s.publisherRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrPublisherNotFound
	}
	for _, gameID := range gameIDs {
		s.gameCache.Invalidate(ctx, gameID)
	}
	return nil
}

func (s *gameService) ListDevelopers(ctx context.Context) ([]models.Developer, error) {
	return s.developerRepo.List(ctx)
}

func (s *gameService) CreateDeveloper(ctx context.Context, name string) (*models.Developer, error) {
	developer := &models.Developer{Name: strings.TrimSpace(name)}
	if err := s.developerRepo.Create(ctx, developer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDeveloperExists
		}
		return nil, err
	}
	return developer, nil
}

func (s *gameService) DeleteDeveloper(ctx context.Context, id int64) error {
	rows, gameIDs, err := s.developerRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDeveloperNotFound
	}
	for _, gameID := range gameIDs {
		s.gameCache.Invalidate(ctx, gameID)
	}
	return nil
}

// resolvePublisher turns the publisher query value into an id filter. A
// name that resolves to nothing pins the filter to -1 so the query matches
// zero rows rather than dropping the filter.
func (s *gameService) resolvePublisher(ctx context.Context, value string) *int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		return &id
	}
	missing := int64(-1)
	publisher, err := s.publisherRepo.FindByName(ctx, value)
	if err != nil {
		return &missing
	}
	return &publisher.ID
}

func (s *gameService) resolveDeveloper(ctx context.Context, value string) *int64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if id, err := strconv.ParseInt(value, 10, 64); err == nil {
		return &id
	}
	missing := int64(-1)
	developer, err := s.developerRepo.FindByName(ctx, value)
	if err != nil {
		return &missing
	}
	return &developer.ID
}

// splitGenres flattens repeated genre params and comma-separated values
// into distinct filter terms.
func splitGenres(values []string) []string {
	var genres []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				genres = append(genres, part)
			}
		}
	}
	return genres
}
