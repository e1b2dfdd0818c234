package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
	"github.com/alexanderramin/cadence/internal/repository"
	"github.com/google/uuid"
)

type categoryService struct {
	categories repository.CategoryRepo
	uow        db.UnitOfWork
}

func NewCategoryService(categories repository.CategoryRepo, uow db.UnitOfWork) CategoryService {
	return &categoryService{categories: categories, uow: uow}
}

// EnsureDefault returns the default category, creating it on first use.
func (s *categoryService) EnsureDefault(ctx context.Context) (*domain.Category, error) {
	def, err := s.categories.GetDefault(ctx)
	if err == nil {
		return def, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	def = &domain.Category{
		ID:        uuid.New().String(),
		Name:      domain.DefaultCategoryName,
		IsDefault: true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categories.Create(ctx, def); err != nil {
		return nil, err
	}
	return def, nil
}

func (s *categoryService) Create(ctx context.Context, name, color, icon string) (*domain.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", domain.ErrInvalidInput)
	}
	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, fmt.Errorf("category %q already exists: %w", name, domain.ErrInvalidInput)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	c := &domain.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *categoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.categories.List(ctx)
}

func (s *categoryService) Rename(ctx context.Context, id, name string) (*domain.Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", domain.ErrInvalidInput)
	}
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing, err := s.categories.GetByName(ctx, name); err == nil && existing.ID != id {
		return nil, fmt.Errorf("category %q already exists: %w", name, domain.ErrInvalidInput)
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	c.Name = name
	c.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a category and moves its tasks to the default category.
// The default category itself cannot be deleted.
func (s *categoryService) Delete(ctx context.Context, id string) error {
	def, err := s.EnsureDefault(ctx)
	if err != nil {
		return err
	}
	if id == def.ID {
		return fmt.Errorf("default category cannot be deleted: %w", domain.ErrInvalidInput)
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCategories := repository.NewSQLiteCategoryRepo(tx)
		txTasks := repository.NewSQLiteTaskRepo(tx)

		if _, err := txCategories.GetByID(ctx, id); err != nil {
			return err
		}
		if err := txTasks.ReassignCategory(ctx, id, def.ID); err != nil {
			return err
		}
		return txCategories.Delete(ctx, id)
	})
}
