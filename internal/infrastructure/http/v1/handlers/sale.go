package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/domain"
	"repairdesk/internal/domain/documents/sale"
	"repairdesk/internal/infrastructure/http/v1/dto"
)

// SaleHandler handles HTTP requests for sale documents.
type SaleHandler struct {
	*BaseDocumentHandler[*sale.Sale, dto.CreateSaleRequest]
	service *sale.Service
}

// NewSaleHandler creates the sale document handler.
func NewSaleHandler(base *BaseHandler, service *sale.Service) *SaleHandler {
	docHandler := NewBaseDocumentHandler(base, BaseDocumentHandlerConfig[*sale.Sale, dto.CreateSaleRequest]{
		Service:    service,
		EntityName: "sale",

		MapCreateDTO: func(req dto.CreateSaleRequest) (*sale.Sale, error) {
			return req.ToEntity()
		},

		MapToDTO: func(doc *sale.Sale) any {
			return dto.FromSale(doc)
		},
	})

	return &SaleHandler{
		BaseDocumentHandler: docHandler,
		service:             service,
	}
}

// List handles GET /sales
// List responses carry documents without lines; lines are loaded on Get.
func (h *SaleHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := sale.ListFilter{
		ListFilter: domain.ListFilter{
			Search:  c.Query("search"),
			Limit:   h.ParseIntQuery(c, "limit", 50),
			Offset:  h.ParseIntQuery(c, "offset", 0),
			OrderBy: c.DefaultQuery("orderBy", "-date"),
		},
	}

	if customerStr := c.Query("customerId"); customerStr != "" {
		customerID, err := id.Parse(customerStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customerId format"))
			return
		}
		filter.CustomerID = &customerID
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
		items[i] = dto.FromSale(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
