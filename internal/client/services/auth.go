// Package services contains application services for the to-do client.
// This file defines the authentication service: register, login, session
// restore and housekeeping of the locally stored bearer token.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/todolist/internal/client/client"
	"github.com/dmitrijs2005/todolist/internal/client/models"
	"github.com/dmitrijs2005/todolist/internal/client/repositories/session"
	"github.com/dmitrijs2005/todolist/internal/dbx"
)

const (
	sessionKeyToken    = "token"
	sessionKeyUsername = "username"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new account on the server and persist the session.
//   - Login: authenticate against the server and persist the session.
//   - RestoreSession: load a previously saved token so the user stays
//     logged in across program runs. Returns the saved username, or ""
//     when no session is stored.
//   - Me: fetch the identity behind the current token. A rejected token
//     clears the stored session.
//   - Logout: drop the token locally. The server keeps no session state.
//   - Close: release underlying client resources.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) (*models.AuthResult, error)
	Login(ctx context.Context, username string, password []byte) (*models.AuthResult, error)
	RestoreSession(ctx context.Context) (string, error)
	Me(ctx context.Context) (*models.AuthResult, error)
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client
// and a local SQL database for the session.
type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getSessionRepo() session.Repository {
	return session.NewSQLiteRepository(a.db)
}

// saveSession persists the token and username in a single transaction.
func (a *authService) saveSession(ctx context.Context, username string, token string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		sessionRepo := session.NewSQLiteRepository(tx)
		if err := sessionRepo.Set(ctx, sessionKeyToken, []byte(token)); err != nil {
			return err
		}
		if err := sessionRepo.Set(ctx, sessionKeyUsername, []byte(username)); err != nil {
			return err
		}
		return nil
	})
}

func (a *authService) clearSession(ctx context.Context) error {
	a.client.SetToken("")
	return a.getSessionRepo().Clear(ctx)
}

func (a *authService) Register(ctx context.Context, username string, password []byte) (*models.AuthResult, error) {
	result, err := a.client.Register(ctx, username, password)
	if err != nil {
		return nil, err
	}

	a.client.SetToken(result.Token)
	if err := a.saveSession(ctx, result.Username, result.Token); err != nil {
		return nil, err
	}
	return result, nil
}

func (a *authService) Login(ctx context.Context, username string, password []byte) (*models.AuthResult, error) {
	result, err := a.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	a.client.SetToken(result.Token)
	if err := a.saveSession(ctx, result.Username, result.Token); err != nil {
		return nil, err
	}
	return result, nil
}

func (a *authService) RestoreSession(ctx context.Context) (string, error) {
	sessionRepo := a.getSessionRepo()

	token, err := sessionRepo.Get(ctx, sessionKeyToken)
	if err != nil {
		return "", err
	}
	if len(token) == 0 {
		return "", nil
	}

	username, err := sessionRepo.Get(ctx, sessionKeyUsername)
	if err != nil {
		return "", err
	}

	a.client.SetToken(string(token))
	return string(username), nil
}

func (a *authService) Me(ctx context.Context) (*models.AuthResult, error) {
	result, err := a.client.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			// the saved token is expired or invalid, forget it
			_ = a.clearSession(ctx)
		}
		return nil, err
	}
	return result, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.clearSession(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
