package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cadence/internal/db"
	"github.com/alexanderramin/cadence/internal/domain"
)

const categoryColumns = `id, name, color, icon, is_default, created_at, updated_at`

// SQLiteCategoryRepo implements CategoryRepo using a SQLite database.
type SQLiteCategoryRepo struct {
	db db.DBTX
}

func NewSQLiteCategoryRepo(db db.DBTX) *SQLiteCategoryRepo {
	return &SQLiteCategoryRepo{db: db}
}

func (r *SQLiteCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	query := `INSERT INTO categories (id, name, color, icon, is_default, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Color, c.Icon, boolToInt(c.IsDefault),
		c.CreatedAt.Format(time.RFC3339), c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting category: %w", err)
	}
	return nil
}

func (r *SQLiteCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = ?`
	return r.scanCategory(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = ? COLLATE NOCASE`
	return r.scanCategory(r.db.QueryRowContext(ctx, query, name))
}

func (r *SQLiteCategoryRepo) GetDefault(ctx context.Context) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE is_default = 1 LIMIT 1`
	return r.scanCategory(r.db.QueryRowContext(ctx, query))
}

func (r *SQLiteCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY is_default DESC, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c, err := scanCategoryRow(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *SQLiteCategoryRepo) Update(ctx context.Context, c *domain.Category) error {
	query := `UPDATE categories SET name = ?, color = ?, icon = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.Name, c.Color, c.Icon, c.UpdatedAt.Format(time.RFC3339), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}
	return requireRowAffected(res, "category")
}

func (r *SQLiteCategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return requireRowAffected(res, "category")
}

func (r *SQLiteCategoryRepo) scanCategory(row *sql.Row) (*domain.Category, error) {
	var (
		c                    domain.Category
		isDefault            int
		createdAt, updatedAt string
	)
	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &isDefault, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("category: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning category: %w", err)
	}
	return fillCategory(&c, isDefault, createdAt, updatedAt), nil
}

func scanCategoryRow(rows *sql.Rows) (*domain.Category, error) {
	var (
		c                    domain.Category
		isDefault            int
		createdAt, updatedAt string
	)
	if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon, &isDefault, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("scanning category row: %w", err)
	}
	return fillCategory(&c, isDefault, createdAt, updatedAt), nil
}

func fillCategory(c *domain.Category, isDefault int, createdAt, updatedAt string) *domain.Category {
	c.IsDefault = intToBool(isDefault)
	if created, err := time.Parse(time.RFC3339, createdAt); err == nil {
		c.CreatedAt = created
	}
	if updated, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		c.UpdatedAt = updated
	}
	return c
}
