package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
	"repairdesk/internal/domain/reports"
	"repairdesk/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// GetLowStock handles GET /reports/low-stock
func (h *ReportsHandler) GetLowStock(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.LowStockReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := reports.LowStockFilter{
		Threshold: req.Threshold,
		Limit:     req.Limit,
		Offset:    req.Offset,
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := id.Parse(*req.CategoryID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid categoryId format"))
			return
		}
		filter.CategoryID = &categoryID
	}

	report, err := h.service.GetLowStock(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetSalesSummary handles GET /reports/sales-summary
func (h *ReportsHandler) GetSalesSummary(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SalesSummaryReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	fromDate, err := time.Parse(time.RFC3339, req.FromDate)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid fromDate format, expected RFC3339"))
		return
	}

	toDate, err := time.Parse(time.RFC3339, req.ToDate)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid toDate format, expected RFC3339"))
		return
	}

	filter := reports.SalesSummaryFilter{
		FromDate:       fromDate,
		ToDate:         toDate,
		GroupByProduct: req.GroupByProduct,
		Limit:          req.Limit,
		Offset:         req.Offset,
	}

	if req.CustomerID != nil && *req.CustomerID != "" {
		customerID, err := id.Parse(*req.CustomerID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid customerId format"))
			return
		}
		filter.CustomerID = &customerID
	}

	report, err := h.service.GetSalesSummary(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetValuation handles GET /reports/valuation
func (h *ReportsHandler) GetValuation(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ValuationReportRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := reports.ValuationFilter{
		ExcludeZero: req.ExcludeZero,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := id.Parse(*req.CategoryID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid categoryId format"))
			return
		}
		filter.CategoryID = &categoryID
	}

	report, err := h.service.GetValuation(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/low-stock", h.GetLowStock)
	rg.GET("/sales-summary", h.GetSalesSummary)
	rg.GET("/valuation", h.GetValuation)
}
