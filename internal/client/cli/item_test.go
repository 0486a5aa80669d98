package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/todolist/internal/client/client"
	"github.com/dmitrijs2005/todolist/internal/client/models"
)

type fakeItemSvc struct {
	listRet []*models.Item
	listErr error

	getRet *models.Item
	getErr error

	addName string
	addRet  *models.Item
	addErr  error

	completeID   int64
	completeFlag bool
	completeRet  *models.Item
	completeErr  error

	renameID   int64
	renameName string
	renameRet  *models.Item
	renameErr  error

	deleteID  int64
	deleteErr error
}

func (f *fakeItemSvc) List(context.Context) ([]*models.Item, error) { return f.listRet, f.listErr }
func (f *fakeItemSvc) Get(_ context.Context, id int64) (*models.Item, error) {
	return f.getRet, f.getErr
}
func (f *fakeItemSvc) Add(_ context.Context, name string) (*models.Item, error) {
	f.addName = name
	return f.addRet, f.addErr
}
func (f *fakeItemSvc) SetComplete(_ context.Context, id int64, isComplete bool) (*models.Item, error) {
	f.completeID, f.completeFlag = id, isComplete
	return f.completeRet, f.completeErr
}
func (f *fakeItemSvc) Rename(_ context.Context, id int64, name string) (*models.Item, error) {
	f.renameID, f.renameName = id, name
	return f.renameRet, f.renameErr
}
func (f *fakeItemSvc) Delete(_ context.Context, id int64) error {
	f.deleteID = id
	return f.deleteErr
}

func TestAdd_JoinsArgsIntoName(t *testing.T) {
	f := &fakeItemSvc{addRet: &models.Item{ID: 1, Name: "buy milk"}}
	a := &App{itemService: f}

	if err := a.Add(context.Background(), []string{"buy", "milk"}); err != nil {
		t.Fatalf("Add err: %v", err)
	}
	if f.addName != "buy milk" {
		t.Fatalf("name = %q", f.addName)
	}
}

func TestDone_ParsesID(t *testing.T) {
	f := &fakeItemSvc{completeRet: &models.Item{ID: 7, Name: "task", IsComplete: true}}
	a := &App{itemService: f}

	if err := a.Done(context.Background(), []string{"7"}); err != nil {
		t.Fatalf("Done err: %v", err)
	}
	if f.completeID != 7 || !f.completeFlag {
		t.Fatalf("completeID=%d flag=%v", f.completeID, f.completeFlag)
	}
}

func TestUndone_ClearsFlag(t *testing.T) {
	f := &fakeItemSvc{completeRet: &models.Item{ID: 7, Name: "task"}}
	a := &App{itemService: f}

	if err := a.Undone(context.Background(), []string{"7"}); err != nil {
		t.Fatalf("Undone err: %v", err)
	}
	if f.completeID != 7 || f.completeFlag {
		t.Fatalf("completeID=%d flag=%v", f.completeID, f.completeFlag)
	}
}

func TestDone_BadIDDoesNotCallService(t *testing.T) {
	f := &fakeItemSvc{}
	a := &App{itemService: f}

	if err := a.Done(context.Background(), []string{"abc"}); err != nil {
		t.Fatalf("Done err: %v", err)
	}
	if f.completeID != 0 {
		t.Fatalf("service called with id %d", f.completeID)
	}
}

func TestRename_PassesIDAndName(t *testing.T) {
	f := &fakeItemSvc{renameRet: &models.Item{ID: 3, Name: "buy bread"}}
	a := &App{itemService: f}

	if err := a.Rename(context.Background(), []string{"3", "buy", "bread"}); err != nil {
		t.Fatalf("Rename err: %v", err)
	}
	if f.renameID != 3 || f.renameName != "buy bread" {
		t.Fatalf("renameID=%d name=%q", f.renameID, f.renameName)
	}
}

func TestRemove_PassesID(t *testing.T) {
	f := &fakeItemSvc{}
	a := &App{itemService: f}

	if err := a.Remove(context.Background(), []string{"5"}); err != nil {
		t.Fatalf("Remove err: %v", err)
	}
	if f.deleteID != 5 {
		t.Fatalf("deleteID=%d", f.deleteID)
	}
}

func TestList_UnauthorizedResetsUsername(t *testing.T) {
	f := &fakeItemSvc{listErr: client.ErrUnauthorized}
	a := &App{itemService: f, userName: "alice"}

	if err := a.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if a.userName != "" {
		t.Fatalf("userName = %q, want empty", a.userName)
	}
}
