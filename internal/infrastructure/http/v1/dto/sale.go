package dto

import (
	"time"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain/documents/sale"
)

// --- Request DTOs ---

// SaleLineRequest is one requested sale position. Prices are not accepted
// from the client: they are snapshotted from the product under the row lock.
type SaleLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// CreateSaleRequest is the request body for creating a sale.
type CreateSaleRequest struct {
	CustomerID string            `json:"customerId" binding:"required"`
	Lines      []SaleLineRequest `json:"lines" binding:"required"`
	Date       *time.Time        `json:"date"`
	Comment    string            `json:"comment"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSaleRequest) ToEntity() (*sale.Sale, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, apperror.NewValidation("invalid customerId format").
			WithDetail("field", "customerId")
	}

	s := sale.NewSale(customerID)
	if r.Date != nil {
		s.Date = *r.Date
	}
	s.Comment = r.Comment

	for i, line := range r.Lines {
		productID, err := id.Parse(line.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid productId format").
				WithDetail("lineNo", i+1).
				WithDetail("field", "productId")
		}
		s.AddLine(productID, line.Quantity)
	}

	return s, nil
}

// --- Response DTOs ---

// SaleLineResponse is one sold position with its immutable snapshots.
type SaleLineResponse struct {
	LineNo      int         `json:"lineNo"`
	ProductID   string      `json:"productId"`
	Quantity    int64       `json:"quantity"`
	PriceAtTime types.Money `json:"priceAtTime"`
	CostAtTime  types.Money `json:"costAtTime"`
	Amount      types.Money `json:"amount"`
}

// SaleResponse is the response body for a sale.
type SaleResponse struct {
	DocumentResponse
	CustomerID  string             `json:"customerId"`
	TotalAmount types.Money        `json:"totalAmount"`
	TotalCost   types.Money        `json:"totalCost"`
	GrossProfit types.Money        `json:"grossProfit"`
	Lines       []SaleLineResponse `json:"lines"`
}

// FromSale creates response DTO from domain entity.
func FromSale(s *sale.Sale) *SaleResponse {
	lines := make([]SaleLineResponse, len(s.Lines))
	for i, line := range s.Lines {
		lines[i] = SaleLineResponse{
			LineNo:      line.LineNo,
			ProductID:   line.ProductID.String(),
			Quantity:    line.Quantity,
			PriceAtTime: line.PriceAtTime,
			CostAtTime:  line.CostAtTime,
			Amount:      line.Amount,
		}
	}

	return &SaleResponse{
		DocumentResponse: FromDocument(s.Document),
		CustomerID:       s.CustomerID.String(),
		TotalAmount:      s.TotalAmount,
		TotalCost:        s.TotalCost,
		GrossProfit:      s.GrossProfit(),
		Lines:            lines,
	}
}
