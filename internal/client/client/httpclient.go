package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/todolist/internal/client/models"
)

// HTTPClient is the Client implementation talking JSON over HTTP to the
// backend. It keeps the bearer token issued at login and attaches it to
// every request.
type HTTPClient struct {
	endpointURL string
	accessToken string
	httpClient  *http.Client
}

func NewTodoListClientService(endpointURL string) (*HTTPClient, error) {
	c := &HTTPClient{
		endpointURL: strings.TrimRight(endpointURL, "/"),
		httpClient:  &http.Client{Timeout: 10 * time.Second},
	}
	return c, nil
}

// SetToken replaces the bearer token used for subsequent requests.
// An empty token makes the client send unauthenticated requests.
func (s *HTTPClient) SetToken(token string) {
	s.accessToken = token
}

func (s *HTTPClient) Close() error {
	s.httpClient.CloseIdleConnections()
	return nil
}

type errorResponse struct {
	Message string `json:"message"`
}

// do executes one request and decodes a successful JSON response into out
// (out may be nil for empty responses). Non-2xx statuses are mapped to the
// package sentinel errors so callers can match them with errors.Is.
func (s *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.endpointURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.accessToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrUnavailable, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("response decoding error: %w", err)
		}
		return nil
	}

	return s.mapError(resp)
}

// mapError converts an HTTP error response to a sentinel error, keeping the
// server-provided message where the user may want to see it.
func (s *HTTPClient) mapError(resp *http.Response) error {
	var er errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&er)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		if er.Message != "" {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, er.Message)
		}
		return ErrAlreadyExists
	case http.StatusBadRequest:
		if er.Message != "" {
			return fmt.Errorf("%w: %s", ErrValidation, er.Message)
		}
		return ErrValidation
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return fmt.Errorf("server error: status %d", resp.StatusCode)
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *HTTPClient) Register(ctx context.Context, username string, password []byte) (*models.AuthResult, error) {
	var result models.AuthResult
	req := &credentialsRequest{Username: username, Password: string(password)}
	if err := s.do(ctx, http.MethodPost, "/api/auth/register", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *HTTPClient) Login(ctx context.Context, username string, password []byte) (*models.AuthResult, error) {
	var result models.AuthResult
	req := &credentialsRequest{Username: username, Password: string(password)}
	if err := s.do(ctx, http.MethodPost, "/api/auth/login", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// meResponse carries the id as the string claim the server echoes back.
type meResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (s *HTTPClient) Me(ctx context.Context) (*models.AuthResult, error) {
	var resp meResponse
	if err := s.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	id, err := strconv.ParseInt(resp.ID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("unexpected user id %q: %w", resp.ID, err)
	}
	return &models.AuthResult{ID: id, Username: resp.Username}, nil
}

func (s *HTTPClient) ListItems(ctx context.Context) ([]*models.Item, error) {
	var result []*models.Item
	if err := s.do(ctx, http.MethodGet, "/api/items", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *HTTPClient) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	var result models.Item
	if err := s.do(ctx, http.MethodGet, fmt.Sprintf("/api/items/%d", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type addItemRequest struct {
	Name string `json:"name"`
}

func (s *HTTPClient) AddItem(ctx context.Context, name string) (*models.Item, error) {
	var result models.Item
	if err := s.do(ctx, http.MethodPost, "/api/items", &addItemRequest{Name: name}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type updateItemRequest struct {
	Name       *string `json:"name,omitempty"`
	IsComplete bool    `json:"isComplete"`
}

func (s *HTTPClient) UpdateItem(ctx context.Context, id int64, name *string, isComplete bool) (*models.Item, error) {
	var result models.Item
	req := &updateItemRequest{Name: name, IsComplete: isComplete}
	if err := s.do(ctx, http.MethodPut, fmt.Sprintf("/api/items/%d", id), req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *HTTPClient) DeleteItem(ctx context.Context, id int64) error {
	return s.do(ctx, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil, nil)
}
