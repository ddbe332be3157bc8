package dto

import (
	"time"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain/documents/purchase"
)

// --- Request DTOs ---

// CreatePurchaseRequest is the request body for recording a stock intake.
type CreatePurchaseRequest struct {
	ProductID   string      `json:"productId" binding:"required"`
	Quantity    int64       `json:"quantity" binding:"required"`
	CostPerUnit types.Money `json:"costPerUnit"`
	Date        *time.Time  `json:"date"`
	Comment     string      `json:"comment"`
}

// ToEntity converts DTO to domain entity.
func (r *CreatePurchaseRequest) ToEntity() (*purchase.Purchase, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid productId format").
			WithDetail("field", "productId")
	}

	p := purchase.NewPurchase(productID, r.Quantity, r.CostPerUnit)
	if r.Date != nil {
		p.Date = *r.Date
	}
	p.Comment = r.Comment
	return p, nil
}

// --- Response DTOs ---

// PurchaseResponse is the response body for a purchase.
type PurchaseResponse struct {
	DocumentResponse
	ProductID   string      `json:"productId"`
	Quantity    int64       `json:"quantity"`
	CostPerUnit types.Money `json:"costPerUnit"`
	TotalAmount types.Money `json:"totalAmount"`
}

// FromPurchase creates response DTO from domain entity.
func FromPurchase(p *purchase.Purchase) *PurchaseResponse {
	return &PurchaseResponse{
		DocumentResponse: FromDocument(p.Document),
		ProductID:        p.ProductID.String(),
		Quantity:         p.Quantity,
		CostPerUnit:      p.CostPerUnit,
		TotalAmount:      p.TotalAmount,
	}
}
