// Package items provides persistence for to-do items. Every query is
// filtered by the owning user id, so an item owned by someone else is
// indistinguishable from a missing one.
package items

import (
	"context"

	"github.com/dmitrijs2005/todolist/internal/server/models"
)

type Repository interface {
	List(ctx context.Context, userID int64) ([]*models.Item, error)
	Get(ctx context.Context, userID int64, id int64) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	Update(ctx context.Context, item *models.Item) (*models.Item, error)
	Delete(ctx context.Context, userID int64, id int64) error
}
