package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
	"github.com/noah-isme/campus-events-api/pkg/response"
)

type contentService[T, C, U any] interface {
	Label() string
	ListByEvent(ctx context.Context, eventID string) ([]T, error)
	Create(ctx context.Context, eventID string, req C) (*T, error)
	Update(ctx context.Context, id string, req U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// ContentHandler serves one kind of event content: listing and creation
// nested under /events/:id and flat update and delete by item id.
type ContentHandler[T, C, U any] struct {
	content contentService[T, C, U]
}

// NewContentHandler constructs a ContentHandler.
func NewContentHandler[T, C, U any](content contentService[T, C, U]) *ContentHandler[T, C, U] {
	return &ContentHandler[T, C, U]{content: content}
}

// List serves GET /events/:id/<kind>.
func (h *ContentHandler[T, C, U]) List(c *gin.Context) {
	eventID, ok := pathUUID(c, "id")
	if !ok {
		response.Fail(c, errEventNotFound)
		return
	}
	items, err := h.content.ListByEvent(c.Request.Context(), eventID)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, "")
}

// Create serves POST /events/:id/<kind>.
func (h *ContentHandler[T, C, U]) Create(c *gin.Context) {
	eventID, ok := pathUUID(c, "id")
	if !ok {
		response.Fail(c, errEventNotFound)
		return
	}
	var req C
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	item, err := h.content.Create(c.Request.Context(), eventID, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item, "")
}

// Update serves PUT /<kind>/:id.
func (h *ContentHandler[T, C, U]) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Fail(c, h.notFound())
		return
	}
	var req U
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	item, err := h.content.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, item, "")
}

// Delete serves DELETE /<kind>/:id.
func (h *ContentHandler[T, C, U]) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Fail(c, h.notFound())
		return
	}
	if err := h.content.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, h.content.Label()+" deleted successfully")
}

func (h *ContentHandler[T, C, U]) notFound() error {
	return appErrors.Clone(appErrors.ErrNotFound, h.content.Label()+" not found")
}
