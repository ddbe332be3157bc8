package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/core/apperror"
	"repairdesk/internal/core/id"
)

// DocumentService defines the interface that services must implement for BaseDocumentHandler.
// Documents are write-once: they are created atomically together with their
// stock effects and never updated or deleted afterwards.
type DocumentService[T any] interface {
	Create(ctx context.Context, doc T) error
	GetByID(ctx context.Context, id id.ID) (T, error)
	GetByNumber(ctx context.Context, number string) (T, error)
}

// BaseDocumentHandler provides generic HTTP handlers for document entities.
// List endpoints stay per-document because filter shapes differ.
type BaseDocumentHandler[T any, CreateDTO any] struct {
	*BaseHandler
	service    DocumentService[T]
	entityName string

	mapCreateDTO func(dto CreateDTO) (T, error)
	mapToDTO     func(doc T) any
}

// BaseDocumentHandlerConfig configures the document handler.
type BaseDocumentHandlerConfig[T any, CreateDTO any] struct {
	Service      DocumentService[T]
	EntityName   string
	MapCreateDTO func(dto CreateDTO) (T, error)
	MapToDTO     func(doc T) any
}

// NewBaseDocumentHandler creates a new base document handler.
func NewBaseDocumentHandler[T any, CreateDTO any](
	base *BaseHandler,
	cfg BaseDocumentHandlerConfig[T, CreateDTO],
) *BaseDocumentHandler[T, CreateDTO] {
	return &BaseDocumentHandler[T, CreateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		entityName:   cfg.EntityName,
		mapCreateDTO: cfg.MapCreateDTO,
		mapToDTO:     cfg.MapToDTO,
	}
}

// Create handles POST /{entity}
func (h *BaseDocumentHandler[T, CreateDTO]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.mapCreateDTO(req)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	response := h.mapToDTO(doc)
	h.CompleteIdempotency(c, http.StatusCreated, "application/json", response)
	c.JSON(http.StatusCreated, response)
}

// Get handles GET /{entity}/:id
func (h *BaseDocumentHandler[T, CreateDTO]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.mapToDTO(doc))
}

// GetByNumber handles GET /{entity}/by-number/:number
func (h *BaseDocumentHandler[T, CreateDTO]) GetByNumber(c *gin.Context) {
	ctx := c.Request.Context()

	number := c.Param("number")
	if number == "" {
		h.Error(c, apperror.NewValidation("document number required"))
		return
	}

	doc, err := h.service.GetByNumber(ctx, number)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, h.mapToDTO(doc))
}
