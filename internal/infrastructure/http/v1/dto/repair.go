package dto

import (
	"time"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/core/types"
	"repairdesk/internal/domain/documents/repair"
)

// --- Request DTOs ---

// UsedPartRequest is one requested spare part. Costs are not accepted from
// the client: they are snapshotted from the product under the row lock.
type UsedPartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

// CreateRepairRequest is the request body for recording a completed repair.
type CreateRepairRequest struct {
	CustomerID  string            `json:"customerId" binding:"required"`
	Description string            `json:"description" binding:"required"`
	TotalCost   types.Money       `json:"totalCost"`
	UsedParts   []UsedPartRequest `json:"usedParts" binding:"required"`
	Date        *time.Time        `json:"date"`
	Comment     string            `json:"comment"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateRepairRequest) ToEntity() (*repair.Repair, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, apperror.NewValidation("invalid customerId format").
			WithDetail("field", "customerId")
	}

	rep := repair.NewRepair(customerID, r.Description, r.TotalCost)
	if r.Date != nil {
		rep.Date = *r.Date
	}
	rep.Comment = r.Comment

	for i, part := range r.UsedParts {
		productID, err := id.Parse(part.ProductID)
		if err != nil {
			return nil, apperror.NewValidation("invalid productId format").
				WithDetail("lineNo", i+1).
				WithDetail("field", "productId")
		}
		rep.AddPart(productID, part.Quantity)
	}

	return rep, nil
}

// --- Response DTOs ---

// UsedPartResponse is one consumed part with its cost snapshot.
type UsedPartResponse struct {
	LineNo     int         `json:"lineNo"`
	ProductID  string      `json:"productId"`
	Quantity   int64       `json:"quantity"`
	CostAtTime types.Money `json:"costAtTime"`
	Amount     types.Money `json:"amount"`
}

// RepairResponse is the response body for a repair.
type RepairResponse struct {
	DocumentResponse
	CustomerID  string             `json:"customerId"`
	Description string             `json:"description"`
	TotalCost   types.Money        `json:"totalCost"`
	PartsCost   types.Money        `json:"partsCost"`
	LaborCost   types.Money        `json:"laborCost"`
	UsedParts   []UsedPartResponse `json:"usedParts"`
}

// FromRepair creates response DTO from domain entity.
func FromRepair(r *repair.Repair) *RepairResponse {
	parts := make([]UsedPartResponse, len(r.UsedParts))
	for i, part := range r.UsedParts {
		parts[i] = UsedPartResponse{
			LineNo:     part.LineNo,
			ProductID:  part.ProductID.String(),
			Quantity:   part.Quantity,
			CostAtTime: part.CostAtTime,
			Amount:     part.Amount,
		}
	}

	return &RepairResponse{
		DocumentResponse: FromDocument(r.Document),
		CustomerID:       r.CustomerID.String(),
		Description:      r.Description,
		TotalCost:        r.TotalCost,
		PartsCost:        r.PartsCost,
		LaborCost:        r.LaborCost,
		UsedParts:        parts,
	}
}
