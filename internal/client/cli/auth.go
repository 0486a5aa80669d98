package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/todolist/internal/client/client"
	"github.com/dmitrijs2005/todolist/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts the user for a username and password and attempts to
// create a new account via the AuthService. On success the issued token is
// already persisted, so the user is logged in right away.
//
// The password byte slice is securely wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result, err := a.authService.Register(ctx, userName, password)
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	a.userName = result.Username
	fmt.Println("Success!")
	return nil
}

// Login prompts the user for credentials and tries to authenticate.
// On success the App remembers the username for the prompt and the
// AuthService persists the bearer token for subsequent runs.
//
// The password is securely wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			log.Printf("Server unavailable: %s", err.Error())
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.userName = result.Username
	log.Printf("Login successful")
	return nil
}

// Me shows the identity behind the current token. If the server rejects the
// token the local session is already cleared, so drop the cached username.
func (a *App) Me(ctx context.Context) error {
	result, err := a.authService.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.userName = ""
			log.Printf("Session expired, please login again")
		} else {
			log.Printf("error: %v", err)
		}
		return err
	}

	fmt.Printf("Logged in as %s (id %d)\n", result.Username, result.ID)
	return nil
}

// Logout drops the locally stored session and the in-memory username.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	fmt.Println("Logged out")
	return nil
}
