package items

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/dbx"
	"github.com/dmitrijs2005/todolist/internal/server/models"
)

// PostgresRepository implements item storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns all items owned by userID in insertion order.
func (r *PostgresRepository) List(ctx context.Context, userID int64) ([]*models.Item, error) {
	query :=
		`SELECT id, name, is_complete, created_at, user_id FROM items
		 WHERE user_id = $1
		 ORDER BY id
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Item, 0)
	for rows.Next() {
		item := &models.Item{}
		if err := rows.Scan(&item.ID, &item.Name, &item.IsComplete, &item.CreatedAt, &item.UserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Get returns the item with the given id owned by userID, or
// common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, userID int64, id int64) (*models.Item, error) {
	query :=
		`SELECT id, name, is_complete, created_at, user_id FROM items
		 WHERE id = $1 AND user_id = $2
		 `

	item := &models.Item{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(&item.ID, &item.Name, &item.IsComplete, &item.CreatedAt, &item.UserID)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Create inserts a new item row and fills in the generated id and timestamp.
func (r *PostgresRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	query :=
		`INSERT INTO items (name, is_complete, user_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.IsComplete, item.UserID).Scan(&item.ID, &item.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Update overwrites name and completion flag of the item owned by
// item.UserID. A row owned by another user is not touched and reports
// common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	query :=
		`UPDATE items SET name = $1, is_complete = $2
		 WHERE id = $3 AND user_id = $4
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.IsComplete, item.ID, item.UserID).Scan(&item.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

// Delete removes the item owned by userID. Deleting a missing (or foreign)
// item reports common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, userID int64, id int64) error {
	query :=
		`DELETE FROM items
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}
