package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xpanvictor/voicetaker/internal/domains/feedback"
	"github.com/xpanvictor/voicetaker/pkg/Logger"
)

// FeedbackHandler accepts user feedback
type FeedbackHandler struct {
	feedbackService feedback.FeedbackService
	logger          *Logger.Logger
}

func NewFeedbackHandler(feedbackService feedback.FeedbackService, logger *Logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// SubmitFeedback stores a feedback message
// @Summary Submit feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param request body feedback.SubmitFeedbackRequest true "Feedback"
// @Success 201 {object} SuccessResponse "Feedback submitted"
// @Failure 400 {object} ErrorResponse "Feedback cannot be empty!"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /feedback [post]
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req feedback.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	if err := h.feedbackService.Submit(c.Request.Context(), req); err != nil {
		switch err {
		case feedback.ErrEmptyFeedback:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Feedback cannot be empty!"})
		case feedback.ErrMissingUsername:
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request data", Details: err.Error()})
		default:
			h.logger.Errorf("feedback error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Message: "Feedback submitted"})
}

func (h *FeedbackHandler) RegisterFeedbackRoutes(r *gin.RouterGroup) {
	r.POST("/feedback", h.SubmitFeedback)
}
