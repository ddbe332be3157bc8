package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/domain"
	"repairdesk/internal/domain/documents/repair"
	"repairdesk/internal/infrastructure/http/v1/dto"
)

// RepairHandler handles HTTP requests for repair documents.
type RepairHandler struct {
	*BaseDocumentHandler[*repair.Repair, dto.CreateRepairRequest]
	service *repair.Service
}

// NewRepairHandler creates the repair document handler.
func NewRepairHandler(base *BaseHandler, service *repair.Service) *RepairHandler {
	docHandler := NewBaseDocumentHandler(base, BaseDocumentHandlerConfig[*repair.Repair, dto.CreateRepairRequest]{
		Service:    service,
		EntityName: "repair",

		MapCreateDTO: func(req dto.CreateRepairRequest) (*repair.Repair, error) {
			return req.ToEntity()
		},

		MapToDTO: func(doc *repair.Repair) any {
			return dto.FromRepair(doc)
		},
	})

	return &RepairHandler{
		BaseDocumentHandler: docHandler,
		service:             service,
	}
}

// List handles GET /repairs
// List responses carry documents without parts; parts are loaded on Get.
func (h *RepairHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := repair.ListFilter{
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
		items[i] = dto.FromRepair(doc)
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
