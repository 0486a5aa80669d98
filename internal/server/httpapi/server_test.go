package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/logging"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/services"
)

// ---- test logger ----

type nopLogger struct{}

func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeUsers struct {
	regResp *services.AuthResult
	regErr  error

	loginResp *services.AuthResult
	loginErr  error
}

func (f *fakeUsers) Register(ctx context.Context, username, password string) (*services.AuthResult, error) {
	return f.regResp, f.regErr
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (*services.AuthResult, error) {
	return f.loginResp, f.loginErr
}

// fakeItems keeps per-user items in memory so scenario tests can run the
// full create/list/update/delete flow through the HTTP surface.
type fakeItems struct {
	nextID int64
	store  map[int64]*models.Item

	lastUpdateName       *string
	lastUpdateIsComplete bool
}

func newFakeItems() *fakeItems {
	return &fakeItems{nextID: 1, store: map[int64]*models.Item{}}
}

func (f *fakeItems) List(ctx context.Context, userID int64) ([]*models.Item, error) {
	result := make([]*models.Item, 0)
	for _, item := range f.store {
		if item.UserID == userID {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeItems) Get(ctx context.Context, userID int64, id int64) (*models.Item, error) {
	item, ok := f.store[id]
	if !ok || item.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return item, nil
}

func (f *fakeItems) Create(ctx context.Context, userID int64, name string) (*models.Item, error) {
	if len(name) == 0 || len(name) > 100 {
		return nil, common.ErrorValidation
	}
	item := &models.Item{ID: f.nextID, Name: name, UserID: userID}
	f.store[f.nextID] = item
	f.nextID++
	return item, nil
}

func (f *fakeItems) Update(ctx context.Context, userID int64, id int64, name *string, isComplete bool) (*models.Item, error) {
	f.lastUpdateName = name
	f.lastUpdateIsComplete = isComplete

	item, ok := f.store[id]
	if !ok || item.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if name != nil {
		item.Name = *name
	}
	item.IsComplete = isComplete
	return item, nil
}

func (f *fakeItems) Delete(ctx context.Context, userID int64, id int64) error {
	item, ok := f.store[id]
	if !ok || item.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.store, id)
	return nil
}

// ---- helpers ----

const testSecret = "test-secret"

func newTestServer(u userSvc, i itemSvc) *HTTPServer {
	return &HTTPServer{
		address:    "127.0.0.1:0",
		users:      u,
		items:      i,
		logger:     nopLogger{},
		jwtSecret:  []byte(testSecret),
		corsOrigin: "http://localhost:3000",
	}
}

func doRequest(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}
