package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamehub/internal/api/dto"
	"gamehub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService service.GameService
}

func NewGameHandler(gameService service.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// RegisterRoutes registers catalog routes
func (h *GameHandler) RegisterRoutes(router *gin.RouterGroup, authRequired, adminOnly gin.HandlerFunc) {
	games := router.Group("/games")
	{
		// Public catalog
		games.GET("", h.List)
		games.GET("/:id", h.GetByID)

		// Administrative flows
		games.POST("", authRequired, adminOnly, h.Create)
		games.PUT("/:id", authRequired, adminOnly, h.Update)
		games.DELETE("/:id", authRequired, adminOnly, h.Delete)
	}

	publishers := router.Group("/publishers")
	{
		publishers.GET("", h.ListPublishers)
		publishers.POST("", authRequired, adminOnly, h.CreatePublisher)
		publishers.DELETE("/:id", authRequired, adminOnly, h.DeletePublisher)
	}

	developers := router.Group("/developers")
	{
		developers.GET("", h.ListDevelopers)
		developers.POST("", authRequired, adminOnly, h.CreateDeveloper)
		developers.DELETE("/:id", authRequired, adminOnly, h.DeleteDeveloper)
	}
}

// List returns a filtered, sorted, paginated catalog page
// GET /api/games?search&year&genre&publisher&developer&minRating&maxRating&sortBy&sortOrder&page&limit
func (h *GameHandler) List(c *gin.Context) {
	query := service.CatalogQuery{
		Search:    c.Query("search"),
		Year:      c.Query("year"),
		Genres:    c.QueryArray("genre"),
		Publisher: c.Query("publisher"),
		Developer: c.Query("developer"),
		MinRating: c.Query("minRating"),
		MaxRating: c.Query("maxRating"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
	}

	result, err := h.gameService.ListGames(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load games"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetByID returns one game with its derived rating and joined names
// GET /api/games/:id
func (h *GameHandler) GetByID(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	game, err := h.gameService.GetGameByID(c.Request.Context(), gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load game"})
		return
	}
	c.JSON(http.StatusOK, game)
}

// Create adds a game to the catalog
// POST /api/games
func (h *GameHandler) Create(c *gin.Context) {
	var req dto.CreateGameDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.CreateGame(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create game"})
		return
	}
	c.JSON(http.StatusCreated, game)
}

// Update edits catalog fields of a game; rating is not editable
// PUT /api/games/:id
func (h *GameHandler) Update(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	var req dto.UpdateGameDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.gameService.UpdateGame(c.Request.Context(), gameID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
		case errors.Is(err, service.ErrNothingToUpdate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update game"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "game updated"})
}

// Delete removes a game and, by cascade, its reviews
// DELETE /api/games/:id
func (h *GameHandler) Delete(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game ID"})
		return
	}

	if err := h.gameService.DeleteGame(c.Request.Context(), gameID); err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete game"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "game deleted"})
}

// ListPublishers returns all publishers
// GET /api/publishers
func (h *GameHandler) ListPublishers(c *gin.Context) {
	publishers, err := h.gameService.ListPublishers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load publishers"})
		return
	}
	c.JSON(http.StatusOK, publishers)
}

// CreatePublisher adds a publisher
// POST /api/publishers
func (h *GameHandler) CreatePublisher(c *gin.Context) {
	var req dto.CreateNameDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	publisher, err := h.gameService.CreatePublisher(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrPublisherExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create publisher"})
		return
	}
	c.JSON(http.StatusCreated, publisher)
}

// DeletePublisher removes a publisher; referencing games keep their rows
// DELETE /api/publishers/:id
func (h *GameHandler) DeletePublisher(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid publisher ID"})
		return
	}

	if err := h.gameService.DeletePublisher(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrPublisherNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete publisher"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "publisher deleted"})
}

// ListDevelopers returns all developers
// GET /api/developers
func (h *GameHandler) ListDevelopers(c *gin.Context) {
	developers, err := h.gameService.ListDevelopers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load developers"})
		return
	}
	c.JSON(http.StatusOK, developers)
}

// CreateDeveloper adds a developer
// POST /api/developers
func (h *GameHandler) CreateDeveloper(c *gin.Context) {
	var req dto.CreateNameDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	developer, err := h.gameService.CreateDeveloper(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrDeveloperExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create developer"})
		return
	}
	c.JSON(http.StatusCreated, developer)
}

// DeleteDeveloper removes a developer
// DELETE /api/developers/:id
func (h *GameHandler) DeleteDeveloper(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid developer ID"})
		return
	}

	if err := h.gameService.DeleteDeveloper(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrDeveloperNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete developer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "developer deleted"})
}
