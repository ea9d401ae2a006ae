package handler

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"InterviewPractice_FeedbackService/internal/apperrors"
	"InterviewPractice_FeedbackService/internal/middleware"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgNoAudio         = "No audio file provided"
	msgProcessingError = "Error processing interview response"

	// multipartOverhead is allowed on top of the file limit for the other
	// form fields and part headers.
	multipartOverhead = 1 << 20
)

// AnalyzeResponse godoc
// @Summary      Analyze a recorded interview answer
// @Description  Transcribes the uploaded answer and scores grammar, confidence and content.
// @Description  Upstream failures degrade to fallback feedback instead of an error.
// @Tags         Analysis
// @Accept       multipart/form-data
// @Produce      json
// @Param        audio      formData  file    true   "Recorded answer (any format ffmpeg understands)"
// @Param        question   formData  string  true   "Interview question being answered"
// @Param        sessionId  formData  string  false  "Practice session to append the report to"
// @Param        X-Session-Id header  string  false  "Practice session to append the report to"
// @Success      200 {object} models.FeedbackReport
// @Failure      400 {object} handler.ErrorResponse "No audio file provided"
// @Failure      413 {object} handler.ErrorResponse "Audio file too large"
// @Failure      429 {object} handler.ErrorResponse "Rate limited"
// @Failure      500 {object} handler.ErrorResponse "Error processing interview response"
// @Router       /api/analyze-response [post]
func (h *Handler) AnalyzeResponse(c *gin.Context) {
	bodyLimit := h.maxUpload + multipartOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)

	fileHeader, err := c.FormFile("audio")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || c.Request.ContentLength > bodyLimit {
			abortWithError(c, apperrors.PayloadTooLarge(h.maxUpload), "")
			return
		}
		h.log.Warn().Err(err).Msg("AnalyzeResponse(): no audio part")
		abortWithError(c, apperrors.InvalidInput(msgNoAudio), "")
		return
	}
	if fileHeader.Size > h.maxUpload {
		abortWithError(c, apperrors.PayloadTooLarge(h.maxUpload), "")
		return
	}

	question := c.PostForm("question")
	sessionID := middleware.SessionID(c)
	if sessionID == "" {
		sessionID = strings.TrimSpace(c.PostForm("sessionId"))
	}

	path, err := h.saveUpload(c, fileHeader)
	if err != nil {
		h.log.Error().Err(err).Msg("AnalyzeResponse(): failed to store upload")
		abortWithError(c, apperrors.Internal(msgProcessingError).WithCause(err), "")
		return
	}
	defer h.removeUpload(path)

	h.log.Info().Str("file", filepath.Base(path)).Int64("bytes", fileHeader.Size).Msg("AnalyzeResponse(): processing answer")

	report, err := h.analyzer.Run(c.Request.Context(), question, path, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("AnalyzeResponse(): pipeline failed")
		abortWithError(c, apperrors.Internal(msgProcessingError).WithCause(err), "")
		return
	}

	h.remember(c.Request.Context(), sessionID, report)
	c.JSON(http.StatusOK, report)
}

func (h *Handler) saveUpload(c *gin.Context, fileHeader *multipart.FileHeader) (string, error) {
	dst := h.uploadPath(fileHeader.Filename)
	if err := c.SaveUploadedFile(fileHeader, dst); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return dst, nil
}

// uploadPath returns a unique destination inside the upload directory.
func (h *Handler) uploadPath(original string) string {
	name := filepath.Base(filepath.Clean("/" + original))
	if name == "/" || name == "." || name == "" {
		name = "answer"
	}
	return filepath.Join(h.uploadDir, uuid.NewString()+"-"+name)
}

func (h *Handler) writeUpload(data []byte) (string, error) {
	dst := h.uploadPath("answer.webm")
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return dst, nil
}

func (h *Handler) removeUpload(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		h.log.Warn().Err(err).Str("file", path).Msg("removeUpload(): failed to delete upload")
	}
}

// remember appends the report to the session history. Failures are logged
// only.
func (h *Handler) remember(ctx context.Context, sessionID string, report models.FeedbackReport) {
	if h.history == nil || sessionID == "" {
		return
	}
	if _, err := h.history.Append(ctx, sessionID, report); err != nil {
		h.log.Warn().Err(err).Str("session", sessionID).Msg("remember(): failed to append history")
	}
}
