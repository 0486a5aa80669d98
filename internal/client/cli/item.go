package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/todolist/internal/client/client"
	"github.com/dmitrijs2005/todolist/internal/client/models"
)

func formatItem(item *models.Item) string {
	mark := " "
	if item.IsComplete {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %d: %s", mark, item.ID, item.Name)
}

func parseItemID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid item id: %s", arg)
	}
	return id, nil
}

// reportItemError prints a user-friendly message for common failures and
// resets the cached username when the session is no longer valid.
func (a *App) reportItemError(err error) {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.userName = ""
		log.Printf("Session expired, please login again")
	case errors.Is(err, client.ErrNotFound):
		log.Printf("Item not found")
	default:
		log.Printf("error: %v", err)
	}
}

func (a *App) List(ctx context.Context) error {
	items, err := a.itemService.List(ctx)
	if err != nil {
		a.reportItemError(err)
		return err
	}

	if len(items) == 0 {
		fmt.Println("No items yet")
		return nil
	}
	for _, item := range items {
		fmt.Println(formatItem(item))
	}
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		var err error
		name, err = getSimpleText(a.reader, "Enter item name", os.Stdout)
		if err != nil {
			return err
		}
	}

	item, err := a.itemService.Add(ctx, name)
	if err != nil {
		a.reportItemError(err)
		return err
	}

	fmt.Println("Added", formatItem(item))
	return nil
}

func (a *App) Done(ctx context.Context, args []string) error {
	return a.setComplete(ctx, args, true)
}

func (a *App) Undone(ctx context.Context, args []string) error {
	return a.setComplete(ctx, args, false)
}

func (a *App) setComplete(ctx context.Context, args []string, isComplete bool) error {
	if len(args) == 0 {
		fmt.Println("Usage: done|undone <id>")
		return nil
	}

	id, err := parseItemID(args[0])
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}

	item, err := a.itemService.SetComplete(ctx, id, isComplete)
	if err != nil {
		a.reportItemError(err)
		return err
	}

	fmt.Println(formatItem(item))
	return nil
}

func (a *App) Rename(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Println("Usage: rename <id> <new name>")
		return nil
	}

	id, err := parseItemID(args[0])
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}

	item, err := a.itemService.Rename(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		a.reportItemError(err)
		return err
	}

	fmt.Println(formatItem(item))
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: rm <id>")
		return nil
	}

	id, err := parseItemID(args[0])
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}

	if err := a.itemService.Delete(ctx, id); err != nil {
		a.reportItemError(err)
		return err
	}

	fmt.Println("Deleted")
	return nil
}
