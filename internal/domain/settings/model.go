// Package settings provides application-wide operational settings stored as
// a single row and cached in memory between updates.
package settings

import (
	"context"
	"time"

	"repairdesk/internal/core/apperror"
)

// Settings holds the tunable operational parameters.
type Settings struct {
	// LowStockThreshold is the quantity at or below which a product shows
	// up in the low stock report.
	LowStockThreshold int64 `db:"low_stock_threshold" json:"lowStockThreshold"`

	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	UpdatedBy string    `db:"updated_by" json:"updatedBy,omitempty"`
}

// Defaults returns the settings used before any update was made.
func Defaults() *Settings {
	return &Settings{
		LowStockThreshold: 5,
	}
}

// Validate implements entity.Validatable.
func (s *Settings) Validate(ctx context.Context) error {
	if s.LowStockThreshold < 0 {
		return apperror.NewValidation("low stock threshold cannot be negative").
			WithDetail("field", "lowStockThreshold")
	}

	return nil
}
