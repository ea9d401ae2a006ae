package models

// IssueSource tells where a grammar issue came from.
type IssueSource string

const (
	SourceRemote    IssueSource = "remote"
	SourceHeuristic IssueSource = "heuristic"
)

type IssueContext struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
	Length int    `json:"length"`
}

// GrammarIssue is the single shape both the remote checker and the offline
// heuristics produce. Rule is only set for remote issues.
type GrammarIssue struct {
	Message string       `json:"message"`
	Type    string       `json:"type"`
	Context IssueContext `json:"context"`
	Rule    string       `json:"rule,omitempty"`
	Source  IssueSource  `json:"source"`
}

// Label is what the feedback comments quote next to the excerpt.
func (g GrammarIssue) Label() string {
	if g.Rule != "" {
		return g.Rule
	}
	return g.Message
}

type GrammarResult struct {
	Score    int            `json:"score"`
	Comments string         `json:"comments"`
	Errors   []GrammarIssue `json:"errors"`
}

type ConfidenceMetrics struct {
	WordCount         int     `json:"wordCount"`
	EstimatedDuration float64 `json:"estimatedDuration"`
	SpeakingRate      float64 `json:"speakingRate"`
	PauseRate         float64 `json:"pauseRate"`
	FillerWordRate    float64 `json:"fillerWordRate"`
	PitchVariation    float64 `json:"pitchVariation"`
	VolumeVariation   float64 `json:"volumeVariation"`
}

type ConfidenceResult struct {
	Score    int               `json:"score"`
	Comments string            `json:"comments"`
	Metrics  ConfidenceMetrics `json:"metrics"`
}

type ContentResult struct {
	Score                  int      `json:"score"`
	Comments               string   `json:"comments"`
	Strengths              []string `json:"strengths"`
	Weaknesses             []string `json:"weaknesses"`
	ImprovementSuggestions []string `json:"improvementSuggestions"`
}
