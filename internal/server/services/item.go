package services

import (
	"context"
	"database/sql"
	"errors"
	"unicode/utf8"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/repomanager"
)

// ItemNameMaxLen bounds the item name on create and update.
const ItemNameMaxLen = 100

// ItemService provides CRUD on to-do items. The caller's user id is an
// explicit parameter on every operation and scopes all reads and writes;
// items owned by other users answer common.ErrorNotFound, never a distinct
// "forbidden".
type ItemService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewItemService constructs an ItemService backed by the given repositories.
func NewItemService(db *sql.DB, m repomanager.RepositoryManager) *ItemService {
	return &ItemService{db: db, repomanager: m}
}

// List returns all items owned by userID.
func (s *ItemService) List(ctx context.Context, userID int64) ([]*models.Item, error) {
	repo := s.repomanager.Items(s.db)

	items, err := repo.List(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return items, nil
}

// Get returns the item with the given id if userID owns it.
func (s *ItemService) Get(ctx context.Context, userID int64, id int64) (*models.Item, error) {
	repo := s.repomanager.Items(s.db)

	item, err := repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return item, nil
}

// Create adds a new incomplete item owned by userID. The name must be
// non-empty and at most 100 characters, otherwise common.ErrorValidation.
func (s *ItemService) Create(ctx context.Context, userID int64, name string) (*models.Item, error) {
	// bound is in characters, not bytes
	if n := utf8.RuneCountInString(name); n == 0 || n > ItemNameMaxLen {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Items(s.db)

	item, err := repo.Create(ctx, &models.Item{Name: name, IsComplete: false, UserID: userID})
	if err != nil {
		return nil, common.ErrorInternal
	}
	return item, nil
}

// Update overwrites the item's completion flag and, when name is non-nil,
// its name. The flag always overwrites: callers that omit it get false, the
// same default the original API applied. Missing or foreign items yield
// common.ErrorNotFound.
func (s *ItemService) Update(ctx context.Context, userID int64, id int64, name *string, isComplete bool) (*models.Item, error) {
	if name != nil {
		if n := utf8.RuneCountInString(*name); n == 0 || n > ItemNameMaxLen {
			return nil, common.ErrorValidation
		}
	}

	repo := s.repomanager.Items(s.db)

	item, err := repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if name != nil {
		item.Name = *name
	}
	item.IsComplete = isComplete

	item, err = repo.Update(ctx, item)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return item, nil
}

// Delete removes the item if userID owns it. A repeated delete of the same id
// yields common.ErrorNotFound.
func (s *ItemService) Delete(ctx context.Context, userID int64, id int64) error {
	repo := s.repomanager.Items(s.db)

	if err := repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}
