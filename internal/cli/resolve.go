package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/cadence/internal/domain"
)

// resolveTask resolves a task identifier which can be a full UUID, a UUID
// prefix, or an exact title match.
func resolveTask(ctx context.Context, app *App, input string) (*domain.Task, error) {
	if t, err := app.Tasks.GetByID(ctx, input); err == nil {
		return t, nil
	}

	tasks, err := app.Tasks.List(ctx)
	if err != nil {
		return nil, err
	}

	var byPrefix, byTitle []*domain.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, input) {
			byPrefix = append(byPrefix, t)
		}
		if strings.EqualFold(t.Title, input) {
			byTitle = append(byTitle, t)
		}
	}

	for _, matches := range [][]*domain.Task{byPrefix, byTitle} {
		switch len(matches) {
		case 0:
		case 1:
			return matches[0], nil
		default:
			return nil, fmt.Errorf("%q matches %d tasks, use a longer prefix: %w", input, len(matches), domain.ErrInvalidInput)
		}
	}
	return nil, fmt.Errorf("task %q: %w", input, domain.ErrNotFound)
}

// resolveCategory resolves a category by exact name, UUID, or UUID prefix.
func resolveCategory(ctx context.Context, app *App, input string) (*domain.Category, error) {
	categories, err := app.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if strings.EqualFold(c.Name, input) || c.ID == input {
			return c, nil
		}
	}
	var matches []*domain.Category
	for _, c := range categories {
		if strings.HasPrefix(c.ID, input) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	return nil, fmt.Errorf("category %q: %w", input, domain.ErrNotFound)
}
