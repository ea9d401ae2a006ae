package handler

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"InterviewPractice_FeedbackService/internal/analysis"
	"InterviewPractice_FeedbackService/internal/apperrors"
	"InterviewPractice_FeedbackService/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	socketWriteWait = 10 * time.Second
	socketReadWait  = 60 * time.Second
	socketQueueSize = 32
)

var errNoAudioMessage = errors.New("first message must be binary audio")

type socketError struct {
	Stage   analysis.Stage `json:"stage"`
	Error   string         `json:"error"`
	Details string         `json:"details,omitempty"`
}

func newSocketError(appErr *apperrors.AppError) socketError {
	e := socketError{Stage: analysis.StageError, Error: appErr.Message}
	if appErr.Cause != nil && appErr.HTTPStatus >= http.StatusInternalServerError {
		e.Details = appErr.Cause.Error()
	}
	return e
}

// AnalyzeSocket godoc
// @Summary      Live analysis WebSocket
// @Description  Upgrades to a WebSocket. The client sends one binary message with the recorded answer;
// @Description  the server streams {stage, status} progress events, then {stage:"report", report} and closes.
// @Description  Failures are sent as {stage:"error", error, details}.
// @Tags         WebSocket (Analysis)
// @Param        question query string true  "Interview question being answered"
// @Param        session  query string false "Practice session to append the report to"
// @Success      101 {string} string "Switching Protocols"
// @Failure      429 {object} handler.ErrorResponse "Rate limited"
// @Router       /ws/analyze [get]
func (h *Handler) AnalyzeSocket(c *gin.Context) {
	question := c.Query("question")
	sessionID := middleware.SessionID(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("AnalyzeSocket(): upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(h.maxUpload)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	out := make(chan any, socketQueueSize)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		socketWritePump(conn, out, cancel, h.log)
	}()
	defer func() {
		close(out)
		wg.Wait()
	}()

	out <- analysis.Event{Stage: analysis.StageUpload, Status: analysis.StatusStarted}

	audio, err := readAudioMessage(conn)
	if err != nil {
		h.log.Warn().Err(err).Msg("AnalyzeSocket(): no audio received")
		out <- newSocketError(apperrors.InvalidInput(msgNoAudio).WithCause(err))
		return
	}

	path, err := h.writeUpload(audio)
	if err != nil {
		h.log.Error().Err(err).Msg("AnalyzeSocket(): failed to store upload")
		out <- newSocketError(apperrors.Internal(msgProcessingError).WithCause(err))
		return
	}
	defer h.removeUpload(path)
	out <- analysis.Event{Stage: analysis.StageUpload, Status: analysis.StatusCompleted}

	// A client that disconnects cancels the analysis.
	go socketReadPump(conn, cancel)

	report, err := h.analyzer.Run(ctx, question, path, func(e analysis.Event) {
		out <- e
	})
	if err != nil {
		h.log.Error().Err(err).Msg("AnalyzeSocket(): pipeline failed")
		out <- newSocketError(apperrors.Internal(msgProcessingError).WithCause(err))
		return
	}

	h.remember(ctx, sessionID, report)
	out <- gin.H{"stage": analysis.StageReport, "report": report}
}

func readAudioMessage(conn *websocket.Conn) ([]byte, error) {
	conn.SetReadDeadline(time.Now().Add(socketReadWait))
	messageType, message, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	conn.SetReadDeadline(time.Time{})
	if messageType != websocket.BinaryMessage || len(message) == 0 {
		return nil, errNoAudioMessage
	}
	return message, nil
}

func socketReadPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// socketWritePump owns all writes to conn. It keeps draining out after a
// write failure so producers never block.
func socketWritePump(conn *websocket.Conn, out <-chan any, cancel context.CancelFunc, log zerolog.Logger) {
	failed := false
	for msg := range out {
		if failed {
			continue
		}
		conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn().Err(err).Msg("socketWritePump(): write failed")
			failed = true
			cancel()
		}
	}
	if !failed {
		conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	}
}
