// Package category provides the product Category catalog.
// Categories form an optional hierarchy used to group products.
package category

import (
	"context"

	"repairdesk/internal/core/entity"
)

// Category represents a product category.
type Category struct {
	entity.Catalog

	// Description is a free-form note
	Description *string `db:"description" json:"description,omitempty"`
}

// NewCategory creates a new Category with required fields.
func NewCategory(code, name string) *Category {
	return &Category{
		Catalog: entity.NewCatalog(code, name),
	}
}

// Validate implements entity.Validatable interface.
func (c *Category) Validate(ctx context.Context) error {
	return c.Catalog.Validate(ctx)
}
