package client

import (
	"context"

	"github.com/dmitrijs2005/todolist/internal/client/models"
)

type Client interface {
	Close() error
	SetToken(token string)
	Register(ctx context.Context, username string, password []byte) (*models.AuthResult, error)
	Login(ctx context.Context, username string, password []byte) (*models.AuthResult, error)
	Me(ctx context.Context) (*models.AuthResult, error)
	ListItems(ctx context.Context) ([]*models.Item, error)
	GetItem(ctx context.Context, id int64) (*models.Item, error)
	AddItem(ctx context.Context, name string) (*models.Item, error)
	UpdateItem(ctx context.Context, id int64, name *string, isComplete bool) (*models.Item, error)
	DeleteItem(ctx context.Context, id int64) error
}
