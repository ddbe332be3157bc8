package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/domain"
	"repairdesk/internal/domain/documents/purchase"
	"repairdesk/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler handles HTTP requests for purchase documents.
type PurchaseHandler struct {
	*BaseDocumentHandler[*purchase.Purchase, dto.CreatePurchaseRequest]
	service *purchase.Service
}

// NewPurchaseHandler creates the purchase document handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service) *PurchaseHandler {
	docHandler := NewBaseDocumentHandler(base, BaseDocumentHandlerConfig[*purchase.Purchase, dto.CreatePurchaseRequest]{
		Service:    service,
		EntityName: "purchase",

		MapCreateDTO: func(req dto.CreatePurchaseRequest) (*purchase.Purchase, error) {
			return req.ToEntity()
		},

		MapToDTO: func(doc *purchase.Purchase) any {
			return dto.FromPurchase(doc)
		},
	})

	return &PurchaseHandler{
		BaseDocumentHandler: docHandler,
		service:             service,
	}
}

// List handles GET /purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := purchase.ListFilter{
		ListFilter: domain.ListFilter{
			Search:  c.Query("search"),
			Limit:   h.ParseIntQuery(c, "limit", 50),
			Offset:  h.ParseIntQuery(c, "offset", 0),
			OrderBy: c.DefaultQuery("orderBy", "-date"),
		},
	}

	if productStr := c.Query("productId"); productStr != "" {
		productID, err := id.Parse(productStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid productId format"))
			return
		}
		filter.ProductID = &productID
	}

	if from, ok := parseTimeQuery(c, h.BaseHandler, "dateFrom"); !ok {
		return
	} else {
		filter.DateFrom = from
	}
	if to, ok := parseTimeQuery(c, h.BaseHandler, "dateTo"); !ok {
		return
	} else {
		filter.DateTo = to
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]any, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromPurchase(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// parseTimeQuery parses an optional RFC3339 query parameter.
// Reports a validation error through the base handler on bad input.
func parseTimeQuery(c *gin.Context, h *BaseHandler, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid "+key+" format, expected RFC3339"))
		return nil, false
	}
	return &t, true
}
