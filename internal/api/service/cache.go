package service

import (
	"context"

	"gamehub/internal/api/models"
)

// GameCache is the game-detail cache the services read through and
// invalidate. The redis implementation lives in internal/cache; its nil
// pointer satisfies the interface and disables caching.
type GameCache interface {
	Get(ctx context.Context, gameID int64) *models.GameRow
	Set(ctx context.Context, row *models.GameRow)
	Invalidate(ctx context.Context, gameID int64)
}
