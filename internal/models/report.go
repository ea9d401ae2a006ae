package models

import "time"

// FeedbackReport is the body returned for one analysed answer.
type FeedbackReport struct {
	Question               string            `json:"question"`
	Transcription          string            `json:"transcription"`
	GrammarScore           int               `json:"grammarScore"`
	GrammarComments        string            `json:"grammarComments"`
	ConfidenceScore        int               `json:"confidenceScore"`
	ConfidenceComments     string            `json:"confidenceComments"`
	ConfidenceMetrics      ConfidenceMetrics `json:"confidenceMetrics"`
	ContentScore           int               `json:"contentScore"`
	ContentComments        string            `json:"contentComments"`
	Strengths              []string          `json:"strengths"`
	Weaknesses             []string          `json:"weaknesses"`
	ImprovementSuggestions []string          `json:"improvementSuggestions"`
}

// Compose merges the stage results into a report. It only selects fields;
// nil lists are replaced with empty ones so they encode as [].
func Compose(question string, t Transcription, g GrammarResult, c ConfidenceResult, content ContentResult) FeedbackReport {
	return FeedbackReport{
		Question:               question,
		Transcription:          t.Text,
		GrammarScore:           g.Score,
		GrammarComments:        g.Comments,
		ConfidenceScore:        c.Score,
		ConfidenceComments:     c.Comments,
		ConfidenceMetrics:      c.Metrics,
		ContentScore:           content.Score,
		ContentComments:        content.Comments,
		Strengths:              orEmpty(content.Strengths),
		Weaknesses:             orEmpty(content.Weaknesses),
		ImprovementSuggestions: orEmpty(content.ImprovementSuggestions),
	}
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// HistoryEntry is one answered question kept for a practice session.
type HistoryEntry struct {
	ID        int64          `json:"id"`
	SessionID string         `json:"session_id"`
	Question  string         `json:"question"`
	Response  string         `json:"response"`
	Report    FeedbackReport `json:"report"`
	CreatedAt time.Time      `json:"created_at"`
}
