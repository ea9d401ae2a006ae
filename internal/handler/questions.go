package handler

import (
	"net/http"
	"strconv"

	"InterviewPractice_FeedbackService/internal/apperrors"

	"github.com/gin-gonic/gin"
)

type QuestionsResponse struct {
	Questions []string `json:"questions"`
	Total     int      `json:"total" example:"11"`
}

type NextQuestionResponse struct {
	Index    int    `json:"index" example:"0"`
	Question string `json:"question" example:"Tell me about yourself."`
}

// ListQuestions godoc
// @Summary      Interview question bank
// @Tags         Questions
// @Produce      json
// @Success      200 {object} handler.QuestionsResponse
// @Router       /api/questions [get]
func (h *Handler) ListQuestions(c *gin.Context) {
	questions := h.questions.All()
	c.JSON(http.StatusOK, QuestionsResponse{Questions: questions, Total: len(questions)})
}

// NextQuestion godoc
// @Summary      Next question to practice
// @Description  Returns the question at answered mod the bank size.
// @Tags         Questions
// @Produce      json
// @Param        answered query int false "Number of questions answered so far"
// @Success      200 {object} handler.NextQuestionResponse
// @Failure      400 {object} handler.ErrorResponse
// @Router       /api/questions/next [get]
func (h *Handler) NextQuestion(c *gin.Context) {
	answered := 0
	if raw := c.Query("answered"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, apperrors.InvalidInput("answered must be an integer"), "")
			return
		}
		answered = n
	}
	index, question := h.questions.Next(answered)
	c.JSON(http.StatusOK, NextQuestionResponse{Index: index, Question: question})
}

// QuestionAudio godoc
// @Summary      Spoken question
// @Description  Synthesizes the question with text-to-speech. Only available when narration is enabled.
// @Tags         Questions
// @Produce      audio/wav
// @Param        index path int true "Question index"
// @Success      200 {file} file "LINEAR16 WAV audio"
// @Failure      404 {object} handler.ErrorResponse
// @Failure      502 {object} handler.ErrorResponse
// @Failure      503 {object} handler.ErrorResponse
// @Router       /api/questions/{index}/audio [get]
func (h *Handler) QuestionAudio(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, apperrors.NotFound("question"), "")
		return
	}
	question, ok := h.questions.At(index)
	if !ok {
		abortWithError(c, apperrors.NotFound("question"), "")
		return
	}
	if h.speech == nil {
		abortWithError(c, apperrors.ServiceUnavailable("question narration service"), "")
		return
	}

	audio, err := h.speech.Synthesize(c.Request.Context(), question)
	if err != nil {
		h.log.Error().Err(err).Int("index", index).Msg("QuestionAudio(): synthesis failed")
		abortWithError(c, apperrors.ExternalService("question narration service", err), "")
		return
	}
	c.Data(http.StatusOK, "audio/wav", audio)
}
