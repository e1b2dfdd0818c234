package domain

import "time"

// DefaultCategoryName is the protected fallback category every install has.
const DefaultCategoryName = "Study"

type Category struct {
	ID        string
	Name      string
	Color     string
	Icon      string
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
