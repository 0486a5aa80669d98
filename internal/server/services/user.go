// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login and mints the access
// tokens returned to the client.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/todolist/internal/common"
	"github.com/dmitrijs2005/todolist/internal/dbx"
	"github.com/dmitrijs2005/todolist/internal/server/auth"
	"github.com/dmitrijs2005/todolist/internal/server/config"
	"github.com/dmitrijs2005/todolist/internal/server/models"
	"github.com/dmitrijs2005/todolist/internal/server/repositories/repomanager"
)

// Username and password bounds enforced at registration.
const (
	UsernameMinLen = 3
	UsernameMaxLen = 50
	PasswordMinLen = 6
	PasswordMaxLen = 100
)

// AuthResult is the identity plus a freshly minted access token, returned by
// both Register and Login.
type AuthResult struct {
	UserID   int64
	Username string
	Token    string
}

// UserService provides authentication-related operations:
//   - Register: validate, hash the password, create the user, mint a token
//   - Login: verify credentials and mint a token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

// Register creates a new account. Usernames must be 3–50 characters and
// passwords 6–100, otherwise common.ErrorValidation. A taken username yields
// common.ErrorAlreadyExists: the pre-check and insert run in one transaction,
// and the unique index turns a concurrent duplicate insert into the same
// outcome. On success a token is issued for the new identity.
func (s *UserService) Register(ctx context.Context, username, password string) (*AuthResult, error) {
	// bounds are in characters, not bytes
	if n := utf8.RuneCountInString(username); n < UsernameMinLen || n > UsernameMaxLen {
		return nil, common.ErrorValidation
	}
	if n := utf8.RuneCountInString(password); n < PasswordMinLen || n > PasswordMaxLen {
		return nil, common.ErrorValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByUsername(ctx, username)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error checking username: %w", err)
		}

		user, err = repo.Create(ctx, &models.User{Username: username, PasswordHash: string(hash)})
		if err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, common.ErrorInternal
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{UserID: user.ID, Username: user.Username, Token: token}, nil
}

// Login verifies the password against the stored bcrypt hash and, on success,
// returns the identity with a new token. Unknown usernames and wrong
// passwords are indistinguishable: both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &AuthResult{UserID: user.ID, Username: user.Username, Token: token}, nil
}

func (s *UserService) generateToken(user *models.User) (string, error) {
	return auth.GenerateToken(user.ID, user.Username, s.jwtSecret, s.tokenValidityDuration)
}
