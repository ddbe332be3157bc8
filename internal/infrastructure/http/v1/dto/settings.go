package dto

import (
	"time"

	"repairdesk/internal/domain/settings"
)

// UpdateSettingsRequest is the request body for updating shop settings.
type UpdateSettingsRequest struct {
	LowStockThreshold int64 `json:"lowStockThreshold"`
}

// SettingsResponse is the response body for shop settings.
type SettingsResponse struct {
	LowStockThreshold int64      `json:"lowStockThreshold"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
	UpdatedBy         string     `json:"updatedBy,omitempty"`
}

// FromSettings creates response DTO from domain settings.
func FromSettings(s *settings.Settings) SettingsResponse {
	resp := SettingsResponse{
		LowStockThreshold: s.LowStockThreshold,
		UpdatedBy:         s.UpdatedBy,
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}
