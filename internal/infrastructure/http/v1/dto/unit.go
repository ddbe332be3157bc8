package dto

import (
	"repairdesk/internal/domain/catalogs/unit"
)

// --- Request DTOs ---

// CreateUnitRequest is the request body for creating a unit.
type CreateUnitRequest struct {
	Code        string        `json:"code"`
	Name        string        `json:"name" binding:"required"`
	Type        unit.UnitType `json:"type" binding:"required"`
	Symbol      string        `json:"symbol" binding:"required"`
	Description *string       `json:"description"`
	ParentID    *string       `json:"parentId"`
	IsFolder    bool          `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateUnitRequest) ToEntity() *unit.Unit {
	u := unit.NewUnit(r.Code, r.Name, r.Symbol, r.Type)
	u.Description = r.Description
	u.ParentID = r.ParentID
	u.IsFolder = r.IsFolder
	return u
}

// UpdateUnitRequest is the request body for updating a unit.
type UpdateUnitRequest struct {
	Code        string        `json:"code"`
	Name        string        `json:"name" binding:"required"`
	Type        unit.UnitType `json:"type" binding:"required"`
	Symbol      string        `json:"symbol" binding:"required"`
	Description *string       `json:"description"`
	ParentID    *string       `json:"parentId"`
	IsFolder    bool          `json:"isFolder"`
	Version     int           `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateUnitRequest) ApplyTo(u *unit.Unit) {
	u.Code = r.Code
	u.Name = r.Name
	u.Type = r.Type
	u.Symbol = r.Symbol
	u.Description = r.Description
	u.ParentID = r.ParentID
	u.IsFolder = r.IsFolder
	u.Version = r.Version
}

// --- Response DTOs ---

// UnitResponse is the response body for a unit.
type UnitResponse struct {
	CatalogResponse
	Type        unit.UnitType `json:"type"`
	Symbol      string        `json:"symbol"`
	Description *string       `json:"description,omitempty"`
}

// FromUnit creates response DTO from domain entity.
func FromUnit(u *unit.Unit) *UnitResponse {
	return &UnitResponse{
		CatalogResponse: FromCatalog(u.Catalog),
		Type:            u.Type,
		Symbol:          u.Symbol,
		Description:     u.Description,
	}
}
