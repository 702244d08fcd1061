package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-events-api/internal/dto"
	"github.com/noah-isme/campus-events-api/internal/models"
	appErrors "github.com/noah-isme/campus-events-api/pkg/errors"
	"github.com/noah-isme/campus-events-api/pkg/response"
)

type topicService interface {
	List(ctx context.Context, filter models.TopicFilter) ([]models.TopicView, error)
	Get(ctx context.Context, id string) (*models.TopicView, error)
	Create(ctx context.Context, req dto.CreateTopicRequest) (*models.TopicView, error)
	Update(ctx context.Context, id string, req dto.UpdateTopicRequest) (*models.TopicView, error)
	Delete(ctx context.Context, id string) error
}

// TopicHandler wires topic services to HTTP routes.
type TopicHandler struct {
	topics topicService
}

// NewTopicHandler constructs a TopicHandler.
func NewTopicHandler(topics topicService) *TopicHandler {
	return &TopicHandler{topics: topics}
}

var errTopicNotFound = appErrors.Clone(appErrors.ErrNotFound, "Topic not found")

// List godoc
// @Summary List topics by date
// @Tags Topics
// @Produce json
// @Param event_id query string false "Filter by event UUID"
// @Success 200 {object} response.Envelope{data=[]models.TopicView}
// @Router /topics [get]
func (h *TopicHandler) List(c *gin.Context) {
	filter := models.TopicFilter{EventID: strings.TrimSpace(c.Query("event_id"))}
	topics, err := h.topics.List(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, topics, "")
}

// Get godoc
// @Summary Topic with speakers
// @Tags Topics
// @Produce json
// @Param id path string true "Topic UUID"
// @Success 200 {object} response.Envelope{data=models.TopicView}
// @Failure 404 {object} response.Envelope
// @Router /topics/{id} [get]
func (h *TopicHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Fail(c, errTopicNotFound)
		return
	}
	topic, err := h.topics.Get(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, topic, "")
}

// Create godoc
// @Summary Create topic
// @Tags Topics
// @Accept json
// @Produce json
// @Param payload body dto.CreateTopicRequest true "Topic payload"
// @Success 201 {object} response.Envelope{data=models.TopicView}
// @Failure 422 {object} response.Envelope
// @Router /topics [post]
func (h *TopicHandler) Create(c *gin.Context) {
	var req dto.CreateTopicRequest
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	topic, err := h.topics.Create(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, topic, "Topic created successfully")
}

// Update godoc
// @Summary Update topic
// @Tags Topics
// @Accept json
// @Produce json
// @Param id path string true "Topic UUID"
// @Param payload body dto.UpdateTopicRequest true "Topic payload"
// @Success 200 {object} response.Envelope{data=models.TopicView}
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /topics/{id} [put]
func (h *TopicHandler) Update(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Fail(c, errTopicNotFound)
		return
	}
	var req dto.UpdateTopicRequest
	if err := bindJSON(c, &req); err != nil {
		response.Fail(c, err)
		return
	}
	topic, err := h.topics.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, topic, "Topic updated successfully")
}

// Delete godoc
// @Summary Delete topic
// @Tags Topics
// @Produce json
// @Param id path string true "Topic UUID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /topics/{id} [delete]
func (h *TopicHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		response.Fail(c, errTopicNotFound)
		return
	}
	if err := h.topics.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, err)
		return
	}
	response.Message(c, "Topic deleted successfully")
}
