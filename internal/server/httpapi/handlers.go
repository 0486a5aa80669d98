package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/todolist/internal/common"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"message": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

// writeServiceError maps service sentinel errors to HTTP status codes.
// Anything unexpected is logged and answered with a generic 500.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, "validation error")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "Username already exists")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		s.logger.Error(r.Context(), "internal error", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// GET /health
func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "Healthy",
		"timestamp": time.Now().UTC(),
	})
}

// POST /api/auth/register
func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.logger.Info(r.Context(), "Registration attempt", "username", in.Username)

	result, err := s.users.Register(r.Context(), in.Username, in.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Registered", "username", result.Username, "userID", result.UserID)
	writeJSON(w, http.StatusOK, authResponse{ID: result.UserID, Username: result.Username, Token: result.Token})
}

// POST /api/auth/login
func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in credentialsRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	s.logger.Info(r.Context(), "Login attempt", "username", in.Username)

	result, err := s.users.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{ID: result.UserID, Username: result.Username, Token: result.Token})
}

// GET /api/auth/me — echoes the identity embedded in the validated token.
func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, username, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	// the id is echoed back as the string claim it was carried in
	writeJSON(w, http.StatusOK, map[string]any{
		"id":       strconv.FormatInt(userID, 10),
		"username": username,
	})
}

// GET /api/items
func (s *HTTPServer) handleListItems(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	items, err := s.items.List(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// itemID parses the {id} path segment; negative or non-numeric ids answer 404
// like any other missing item.
func itemID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// GET /api/items/{id}
func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := itemID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	item, err := s.items.Get(r.Context(), userID, id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

type createItemRequest struct {
	Name string `json:"name"`
}

// POST /api/items
func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var in createItemRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, err := s.items.Create(r.Context(), userID, in.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Created item", "itemID", item.ID, "userID", userID)
	writeJSON(w, http.StatusCreated, item)
}

type updateItemRequest struct {
	Name *string `json:"name"`
	// An absent flag decodes to false and overwrites, matching the
	// original API's default-value behavior.
	IsComplete bool `json:"isComplete"`
}

// PUT /api/items/{id}
func (s *HTTPServer) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := itemID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	var in updateItemRequest
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	item, err := s.items.Update(r.Context(), userID, id, in.Name, in.IsComplete)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DELETE /api/items/{id}
func (s *HTTPServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, ok := itemID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	if err := s.items.Delete(r.Context(), userID, id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "Deleted item", "itemID", id, "userID", userID)
	w.WriteHeader(http.StatusNoContent)
}
