package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"InterviewPractice_FeedbackService/internal/apperrors"
	"InterviewPractice_FeedbackService/internal/config"
	"InterviewPractice_FeedbackService/internal/logger"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/rs/zerolog"
)

const grammarService = "grammar service"

type languageToolResponse struct {
	Matches []languageToolMatch `json:"matches"`
}

type languageToolMatch struct {
	Message      string `json:"message"`
	ShortMessage string `json:"shortMessage"`
	Offset       int    `json:"offset"`
	Length       int    `json:"length"`
	Context      struct {
		Text   string `json:"text"`
		Offset int    `json:"offset"`
		Length int    `json:"length"`
	} `json:"context"`
	Rule struct {
		ID          string `json:"id"`
		Description string `json:"description"`
		IssueType   string `json:"issueType"`
	} `json:"rule"`
}

// LanguageTool checks text against a LanguageTool /v2/check endpoint.
type LanguageTool struct {
	url           string
	language      string
	disabledRules string
	httpClient    *http.Client
	log           zerolog.Logger
}

func NewLanguageTool(cfg config.GrammarConfig) *LanguageTool {
	return &LanguageTool{
		url:           cfg.URL,
		language:      cfg.Language,
		disabledRules: cfg.DisabledRules,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		log:           logger.Component("languagetool"),
	}
}

// Check returns the issues found in text, normalized to GrammarIssue. A clean
// text yields an empty slice.
func (l *LanguageTool) Check(ctx context.Context, text string) ([]models.GrammarIssue, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", l.language)
	if l.disabledRules != "" {
		form.Set("disabledRules", l.disabledRules)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.url, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create grammar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.ExternalService(grammarService, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.ExternalService(grammarService, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.ExternalService(grammarService,
			fmt.Errorf("status %d: %s", resp.StatusCode, truncate(raw, 512)))
	}

	var parsed languageToolResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, apperrors.ExternalService(grammarService, fmt.Errorf("decode response: %w", err))
	}

	issues := make([]models.GrammarIssue, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		issues = append(issues, models.GrammarIssue{
			Message: m.Message,
			Type:    m.Rule.IssueType,
			Context: models.IssueContext{
				Text:   m.Context.Text,
				Offset: m.Context.Offset,
				Length: m.Context.Length,
			},
			Rule:   m.Rule.Description,
			Source: models.SourceRemote,
		})
	}
	l.log.Debug().Int("issues", len(issues)).Msg("Check(): grammar checked")
	return issues, nil
}
