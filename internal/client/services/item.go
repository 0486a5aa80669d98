package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/todolist/internal/client/client"
	"github.com/dmitrijs2005/todolist/internal/client/models"
	"github.com/dmitrijs2005/todolist/internal/client/repositories/session"
)

// ItemService defines the item operations for the CLI.
type ItemService interface {
	List(ctx context.Context) ([]*models.Item, error)
	Get(ctx context.Context, id int64) (*models.Item, error)
	Add(ctx context.Context, name string) (*models.Item, error)
	SetComplete(ctx context.Context, id int64, isComplete bool) (*models.Item, error)
	Rename(ctx context.Context, id int64, name string) (*models.Item, error)
	Delete(ctx context.Context, id int64) error
}

type itemService struct {
	client client.Client
	db     *sql.DB
}

func NewItemService(client client.Client, db *sql.DB) ItemService {
	return &itemService{client: client, db: db}
}

// checkAuth drops the stored session when the server rejects the token,
// so the next run prompts for a fresh login instead of retrying it.
func (s *itemService) checkAuth(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		s.client.SetToken("")
		_ = session.NewSQLiteRepository(s.db).Clear(ctx)
	}
	return err
}

func (s *itemService) List(ctx context.Context) ([]*models.Item, error) {
	items, err := s.client.ListItems(ctx)
	if err != nil {
		return nil, s.checkAuth(ctx, err)
	}
	return items, nil
}

func (s *itemService) Get(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.client.GetItem(ctx, id)
	if err != nil {
		return nil, s.checkAuth(ctx, err)
	}
	return item, nil
}

func (s *itemService) Add(ctx context.Context, name string) (*models.Item, error) {
	item, err := s.client.AddItem(ctx, name)
	if err != nil {
		return nil, s.checkAuth(ctx, err)
	}
	return item, nil
}

func (s *itemService) SetComplete(ctx context.Context, id int64, isComplete bool) (*models.Item, error) {
	// omitting the name keeps the stored one
	item, err := s.client.UpdateItem(ctx, id, nil, isComplete)
	if err != nil {
		return nil, s.checkAuth(ctx, err)
	}
	return item, nil
}

func (s *itemService) Rename(ctx context.Context, id int64, name string) (*models.Item, error) {
	// fetch first: the completion flag must be resent or it resets
	current, err := s.client.GetItem(ctx, id)
	if err != nil {
		return nil, s.checkAuth(ctx, err)
	}

	item, err := s.client.UpdateItem(ctx, id, &name, current.IsComplete)
	if err != nil {
		return nil, s.checkAuth(ctx, err)
	}
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, id int64) error {
	if err := s.client.DeleteItem(ctx, id); err != nil {
		return s.checkAuth(ctx, err)
	}
	return nil
}
