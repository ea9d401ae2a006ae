/**
* Name: 			handler.go
* Description: 		Gin HTTP handlers for the interview practice API
* Workflow: 		upload -> analysis pipeline -> feedback report, question bank, session history
 */
package handler

import (
	"context"
	"net/http"

	"InterviewPractice_FeedbackService/internal/analysis"
	"InterviewPractice_FeedbackService/internal/apperrors"
	"InterviewPractice_FeedbackService/internal/interview"
	"InterviewPractice_FeedbackService/internal/logger"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const defaultMaxUpload = 10 << 20

// Analyzer runs the feedback pipeline for one stored answer.
type Analyzer interface {
	Run(ctx context.Context, question, audioPath string, progress analysis.Progress) (models.FeedbackReport, error)
}

type HistoryStore interface {
	Append(ctx context.Context, sessionID string, report models.FeedbackReport) (models.HistoryEntry, error)
	List(ctx context.Context, sessionID string) ([]models.HistoryEntry, error)
	Clear(ctx context.Context, sessionID string) (int64, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Options wires the handler's collaborators. History and Speech are
// optional; without them the corresponding endpoints report unavailability.
type Options struct {
	Analyzer  Analyzer
	Questions *interview.Bank
	History   HistoryStore
	Speech    Synthesizer

	UploadDir      string
	MaxUploadBytes int64

	TranscriptionProvider string
	ContentLLM            bool
}

type Handler struct {
	analyzer  Analyzer
	questions *interview.Bank
	history   HistoryStore
	speech    Synthesizer

	uploadDir string
	maxUpload int64

	provider   string
	contentLLM bool

	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func New(opts Options) *Handler {
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = defaultMaxUpload
	}
	return &Handler{
		analyzer:   opts.Analyzer,
		questions:  opts.Questions,
		history:    opts.History,
		speech:     opts.Speech,
		uploadDir:  opts.UploadDir,
		maxUpload:  maxUpload,
		provider:   opts.TranscriptionProvider,
		contentLLM: opts.ContentLLM,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: logger.Component("handler"),
	}
}

type ErrorResponse struct {
	Error   string `json:"error" example:"No audio file provided"`
	Details string `json:"details,omitempty" example:"analysis pipeline: unexpected failure"`
}

type HealthResponse struct {
	Status                string `json:"status" example:"ok"`
	TranscriptionProvider string `json:"transcription_provider" example:"assemblyai"`
	ContentLLM            bool   `json:"content_llm"`
	TTS                   bool   `json:"tts"`
}

// Health godoc
// @Summary      Service health
// @Description  Reports liveness and which optional upstreams are configured.
// @Tags         System
// @Produce      json
// @Success      200 {object} handler.HealthResponse
// @Router       /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:                "ok",
		TranscriptionProvider: h.provider,
		ContentLLM:            h.contentLLM,
		TTS:                   h.speech != nil,
	})
}

func abortWithError(c *gin.Context, err error, message string) {
	appErr := apperrors.FromError(err, message)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.Body())
}
