package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/server/models"
)

type fakeItemsRepo struct {
	listOut []*models.Item
	listErr error

	getOut *models.Item
	getErr error

	createErr error
	updateErr error
	deleteErr error

	createdItem *models.Item
	updatedItem *models.Item
	deletedID   int64
}

func (f *fakeItemsRepo) List(ctx context.Context, userID int64) ([]*models.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listOut, nil
}

func (f *fakeItemsRepo) Get(ctx context.Context, userID int64, id int64) (*models.Item, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeItemsRepo) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createdItem = item
	item.ID = 1
	item.CreatedAt = time.Now()
	return item, nil
}

func (f *fakeItemsRepo) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updatedItem = item
	return item, nil
}

func (f *fakeItemsRepo) Delete(ctx context.Context, userID int64, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = id
	return nil
}

func newItemService(t *testing.T, repo *fakeItemsRepo) *ItemService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { db.Close() })
	return NewItemService(db, &fakeRepoManager{i: repo})
}

func TestItemService_Create_Defaults(t *testing.T) {
	repo := &fakeItemsRepo{}
	s := newItemService(t, repo)

	item, err := s.Create(context.Background(), 10, "buy milk")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if item.IsComplete {
		t.Fatalf("new item must start incomplete")
	}
	if repo.createdItem.UserID != 10 {
		t.Fatalf("owner not threaded through: %+v", repo.createdItem)
	}
}

func TestItemService_Create_Validation(t *testing.T) {
	s := newItemService(t, &fakeItemsRepo{})

	for _, name := range []string{"", strings.Repeat("x", 101)} {
		_, err := s.Create(context.Background(), 10, name)
		if !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("name %q: want common.ErrorValidation, got %v", name, err)
		}
	}
}

func TestItemService_NameBoundCountsCharacters(t *testing.T) {
	repo := &fakeItemsRepo{}
	s := newItemService(t, repo)

	// 100 Cyrillic characters are 200 bytes and must still fit the cap
	name := strings.Repeat("я", 100)
	if _, err := s.Create(context.Background(), 10, name); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	_, err := s.Create(context.Background(), 10, strings.Repeat("я", 101))
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}

	repo.getOut = &models.Item{ID: 1, Name: "old", UserID: 10}
	if _, err := s.Update(context.Background(), 10, 1, &name, false); err != nil {
		t.Fatalf("Update error: %v", err)
	}

	long := strings.Repeat("я", 101)
	_, err = s.Update(context.Background(), 10, 1, &long, false)
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("want common.ErrorValidation, got %v", err)
	}
}

func TestItemService_Get_NotFoundPassesThrough(t *testing.T) {
	s := newItemService(t, &fakeItemsRepo{getErr: common.ErrorNotFound})

	_, err := s.Get(context.Background(), 10, 1)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestItemService_List(t *testing.T) {
	want := []*models.Item{{ID: 1, Name: "a", UserID: 10}}
	s := newItemService(t, &fakeItemsRepo{listOut: want})

	got, err := s.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "a" {
		t.Fatalf("unexpected items: %+v", got)
	}
}

func TestItemService_Update_NameOptionalFlagOverwrites(t *testing.T) {
	repo := &fakeItemsRepo{getOut: &models.Item{ID: 1, Name: "old", IsComplete: true, UserID: 10}}
	s := newItemService(t, repo)

	// nil name keeps the stored one; the flag overwrites unconditionally
	item, err := s.Update(context.Background(), 10, 1, nil, false)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if item.Name != "old" || item.IsComplete {
		t.Fatalf("unexpected item: %+v", item)
	}

	name := "new"
	repo.getOut = &models.Item{ID: 1, Name: "old", UserID: 10}
	item, err = s.Update(context.Background(), 10, 1, &name, true)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if item.Name != "new" || !item.IsComplete {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestItemService_Update_Validation(t *testing.T) {
	s := newItemService(t, &fakeItemsRepo{getOut: &models.Item{ID: 1, UserID: 10}})

	empty := ""
	long := strings.Repeat("x", 101)
	for _, name := range []*string{&empty, &long} {
		_, err := s.Update(context.Background(), 10, 1, name, false)
		if !errors.Is(err, common.ErrorValidation) {
			t.Fatalf("want common.ErrorValidation, got %v", err)
		}
	}
}

func TestItemService_Update_NotFound(t *testing.T) {
	s := newItemService(t, &fakeItemsRepo{getErr: common.ErrorNotFound})

	_, err := s.Update(context.Background(), 10, 1, nil, true)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestItemService_Delete(t *testing.T) {
	repo := &fakeItemsRepo{}
	s := newItemService(t, repo)

	if err := s.Delete(context.Background(), 10, 1); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if repo.deletedID != 1 {
		t.Fatalf("unexpected deleted id: %d", repo.deletedID)
	}
}

func TestItemService_Delete_SecondTimeNotFound(t *testing.T) {
	s := newItemService(t, &fakeItemsRepo{deleteErr: common.ErrorNotFound})

	err := s.Delete(context.Background(), 10, 1)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestItemService_RepoFailuresAreInternal(t *testing.T) {
	boom := errors.New("db down")

	s := newItemService(t, &fakeItemsRepo{listErr: boom, getErr: boom, createErr: boom, deleteErr: boom})

	if _, err := s.List(context.Background(), 10); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("List: want common.ErrorInternal, got %v", err)
	}
	if _, err := s.Get(context.Background(), 10, 1); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("Get: want common.ErrorInternal, got %v", err)
	}
	if _, err := s.Create(context.Background(), 10, "x"); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("Create: want common.ErrorInternal, got %v", err)
	}
	if err := s.Delete(context.Background(), 10, 1); !errors.Is(err, common.ErrorInternal) {
		t.Fatalf("Delete: want common.ErrorInternal, got %v", err)
	}
}
