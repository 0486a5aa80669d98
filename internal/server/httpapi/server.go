// Package httpapi exposes the todo service over HTTP+JSON. Paths, methods,
// status codes and payload shapes form the wire contract consumed by the
// browser client and must not change.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/todolist/internal/logging"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/services"
)

// userSvc is the slice of UserService the transport needs.
type userSvc interface {
	Register(ctx context.Context, username, password string) (*services.AuthResult, error)
	Login(ctx context.Context, username, password string) (*services.AuthResult, error)
}

// itemSvc is the slice of ItemService the transport needs.
type itemSvc interface {
	List(ctx context.Context, userID int64) ([]*models.Item, error)
	Get(ctx context.Context, userID int64, id int64) (*models.Item, error)
	Create(ctx context.Context, userID int64, name string) (*models.Item, error)
	Update(ctx context.Context, userID int64, id int64, name *string, isComplete bool) (*models.Item, error)
	Delete(ctx context.Context, userID int64, id int64) error
}

type HTTPServer struct {
	address    string
	users      userSvc
	items      itemSvc
	logger     logging.Logger
	jwtSecret  []byte
	corsOrigin string
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, is *services.ItemService, secretKey string, corsOrigin string) (*HTTPServer, error) {
	return &HTTPServer{
		address:    a,
		logger:     l.With("module", "http_server"),
		users:      us,
		items:      is,
		jwtSecret:  []byte(secretKey),
		corsOrigin: corsOrigin,
	}, nil
}

// routes builds the request mux. Item endpoints sit behind the bearer-token
// middleware; auth and health endpoints are public.
func (s *HTTPServer) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.Handle("GET /api/auth/me", s.requireAuth(http.HandlerFunc(s.handleMe)))

	mux.Handle("GET /api/items", s.requireAuth(http.HandlerFunc(s.handleListItems)))
	mux.Handle("POST /api/items", s.requireAuth(http.HandlerFunc(s.handleCreateItem)))
	mux.Handle("GET /api/items/{id}", s.requireAuth(http.HandlerFunc(s.handleGetItem)))
	mux.Handle("PUT /api/items/{id}", s.requireAuth(http.HandlerFunc(s.handleUpdateItem)))
	mux.Handle("DELETE /api/items/{id}", s.requireAuth(http.HandlerFunc(s.handleDeleteItem)))

	return s.withRecover(s.withLogging(s.withCORS(mux)))
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
