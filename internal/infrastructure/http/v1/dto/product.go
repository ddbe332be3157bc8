package dto

import (
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
// Stock fields (quantity, averageCost) are not accepted: new products start
// empty and stock changes only through purchase, sale and repair documents.
type CreateProductRequest struct {
	Code        string      `json:"code"`
	Name        string      `json:"name" binding:"required"`
	CategoryID  string      `json:"categoryId" binding:"required"`
	UnitID      string      `json:"unitId" binding:"required"`
	SalePrice   types.Money `json:"salePrice"`
	Description *string     `json:"description"`
	ParentID    *string     `json:"parentId"`
	IsFolder    bool        `json:"isFolder"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.NewProduct(r.Code, r.Name, r.CategoryID, r.UnitID, r.SalePrice)
	p.Description = r.Description
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	return p
}

// UpdateProductRequest is the request body for updating a product.
// Stock fields are absent here for the same reason as in create.
type UpdateProductRequest struct {
	Code        string      `json:"code"`
	Name        string      `json:"name" binding:"required"`
	CategoryID  string      `json:"categoryId" binding:"required"`
	UnitID      string      `json:"unitId" binding:"required"`
	SalePrice   types.Money `json:"salePrice"`
	Description *string     `json:"description"`
	ParentID    *string     `json:"parentId"`
	IsFolder    bool        `json:"isFolder"`
	Version     int         `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
// Quantity and AverageCost are left untouched.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	p.Code = r.Code
	p.Name = r.Name
	p.CategoryID = r.CategoryID
	p.UnitID = r.UnitID
	p.SalePrice = r.SalePrice
	p.Description = r.Description
	p.ParentID = r.ParentID
	p.IsFolder = r.IsFolder
	p.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	CatalogResponse
	CategoryID  string      `json:"categoryId"`
	UnitID      string      `json:"unitId"`
	SalePrice   types.Money `json:"salePrice"`
	Quantity    int64       `json:"quantity"`
	AverageCost types.Money `json:"averageCost"`
	StockValue  types.Money `json:"stockValue"`
	Description *string     `json:"description,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	return &ProductResponse{
		CatalogResponse: FromCatalog(p.Catalog),
		CategoryID:      p.CategoryID,
		UnitID:          p.UnitID,
		SalePrice:       p.SalePrice,
		Quantity:        p.Quantity,
		AverageCost:     types.Round2(p.AverageCost),
		StockValue:      types.Round2(p.StockValue()),
		Description:     p.Description,
	}
}
