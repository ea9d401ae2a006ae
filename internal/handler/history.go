package handler

import (
	"net/http"

	"InterviewPractice_FeedbackService/internal/apperrors"
	"InterviewPractice_FeedbackService/internal/middleware"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/gin-gonic/gin"
)

type HistoryResponse struct {
	History []models.HistoryEntry `json:"history"`
}

type ClearHistoryResponse struct {
	Cleared int64 `json:"cleared" example:"3"`
}

// GetHistory godoc
// @Summary      Session feedback history
// @Description  Returns the reports recorded for the practice session, newest first.
// @Tags         History
// @Produce      json
// @Param        X-Session-Id header string false "Practice session id"
// @Param        session      query  string false "Practice session id (when the header is not set)"
// @Success      200 {object} handler.HistoryResponse
// @Failure      400 {object} handler.ErrorResponse "Missing session id"
// @Failure      500 {object} handler.ErrorResponse
// @Failure      503 {object} handler.ErrorResponse
// @Router       /api/history [get]
func (h *Handler) GetHistory(c *gin.Context) {
	if h.history == nil {
		abortWithError(c, apperrors.ServiceUnavailable("history store"), "")
		return
	}
	sessionID := middleware.SessionID(c)

	entries, err := h.history.List(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Error().Err(err).Str("session", sessionID).Msg("GetHistory(): list failed")
		abortWithError(c, err, "Failed to fetch history")
		return
	}
	c.JSON(http.StatusOK, HistoryResponse{History: entries})
}

// ClearHistory godoc
// @Summary      Restart the interview
// @Description  Deletes every report recorded for the practice session.
// @Tags         History
// @Produce      json
// @Param        X-Session-Id header string false "Practice session id"
// @Param        session      query  string false "Practice session id (when the header is not set)"
// @Success      200 {object} handler.ClearHistoryResponse
// @Failure      400 {object} handler.ErrorResponse "Missing session id"
// @Failure      500 {object} handler.ErrorResponse
// @Failure      503 {object} handler.ErrorResponse
// @Router       /api/history [delete]
func (h *Handler) ClearHistory(c *gin.Context) {
	if h.history == nil {
		abortWithError(c, apperrors.ServiceUnavailable("history store"), "")
		return
	}
	sessionID := middleware.SessionID(c)

	n, err := h.history.Clear(c.Request.Context(), sessionID)
	if err != nil {
		h.log.Error().Err(err).Str("session", sessionID).Msg("ClearHistory(): clear failed")
		abortWithError(c, err, "Failed to clear history")
		return
	}
	h.log.Info().Str("session", sessionID).Int64("cleared", n).Msg("ClearHistory(): session restarted")
	c.JSON(http.StatusOK, ClearHistoryResponse{Cleared: n})
}
