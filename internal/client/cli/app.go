package cli

import (
	"bufio"
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/todolist/internal/client/client"
	"github.com/dmitrijs2005/todolist/internal/client/config"
	"github.com/dmitrijs2005/todolist/internal/client/services"
	"github.com/dmitrijs2005/todolist/internal/filex"

	_ "modernc.org/sqlite"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	itemService services.ItemService
	userName    string
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	dataDir, err := filex.EnsureSubDir("data")
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, filepath.Join(dataDir, c.DatabaseFile))
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient, err := client.NewTodoListClientService(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}

	as := services.NewAuthService(apiClient, db.DB)
	is := services.NewItemService(apiClient, db.DB)

	return &App{config: c, authService: as, itemService: is, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	// pick up the session saved by a previous run
	if username, err := a.authService.RestoreSession(ctx); err == nil && username != "" {
		a.userName = username
		log.Printf("Welcome back, %s", username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return "(not logged in)"
	}
	return "(" + a.userName + ")"
}
