package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
	"github.com/noah-isme/campus-events-api/pkg/response"
)

type eventService interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Get(ctx context.Context, id string) (*models.EventDetail, error)
	ByYear(ctx context.Context, year int) (*models.EventDetail, error)
	Current(ctx context.Context) (*models.EventDetail, error)
	Create(ctx context.Context, req dto.CreateEventRequest) (*models.Event, error)
	Update(ctx context.Context, id string, req dto.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, id string) error
}

// EventHandler serves the event pages and their administration.
type EventHandler struct {
	events eventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events eventService) *EventHandler {
	return &EventHandler{events: events}
}

var errEventNotFound = appErrors.Clone(appErrors.ErrNotFound, "Event not found")

// List godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Param published_only query bool false "Only published events"
// @Success 200 {object} response.Envelope{data=[]models.Event}
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	filter := models.EventFilter{}
	if published := queryBool(c, "published_only"); published != nil {
		filter.PublishedOnly = *published
	}
	events, err := h.events.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	response.Success(c, http.StatusOK, events, "")
}

// Current godoc
// @Summary Published event of the current year
// @Tags Events
// @Produce json
// @Success 200 {object} response.Envelope{data=models.EventDetail}
// @Failure 404 {object} response.Envelope
// @Router /events/current [get]
func (h *EventHandler) Current(c *gin.Context) {
	event, err := h.events.Current(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, event, "")
}

// ByYear godoc
// @Summary Event held in a year
// @Tags Events
// @Produce json
// @Param year path int true "Event year"
// @Success 200 {object} response.Envelope{data=models.EventDetail}
// @Failure 404 {object} response.Envelope
// @Router /events/year/{year} [get]
func (h *EventHandler) ByYear(c *gin.Context) {
	raw := c.Param("year")
	year, err := strconv.Atoi(raw)
	if err != nil {
		response.Fail(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("Event not found for year %s", raw)))
		return
	}
	event, err := h.events.ByYear(c.Request.Context(), year)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, event, "")
}

// Get godoc
// @Summary Event with all content
// @Tags Events
// @Produce json
// @Param id path string true "Event UUID"
// @Success 200 {object} response.Envelope{data=models.EventDetail}
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Fail(c, errEventNotFound)
		return
	}
	event, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, event, "")
}

// Create godoc
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body dto.CreateEventRequest true "Event payload"
// @Success 201 {object} response.Envelope{data=models.Event}
// @Failure 422 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	event, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, event, "Event created successfully")
}

// Update godoc
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event UUID"
// @Param payload body dto.UpdateEventRequest true "Event payload"
// @Success 200 {object} response.Envelope{data=models.Event}
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Fail(c, errEventNotFound)
		return
	}
	var req dto.UpdateEventRequest
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	event, err := h.events.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, event, "Event updated successfully")
}

// Delete godoc
// @Summary Delete event and all of its content
// @Tags Events
// @Produce json
// @Param id path string true "Event UUID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Fail(c, errEventNotFound)
		return
	}
	if err := h.events.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, "Event deleted successfully")
}
