package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"InterviewPractice_FeedbackService/internal/interview"
	"InterviewPractice_FeedbackService/internal/logger"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/rs/zerolog"
)

const (
	grammarContextChars = 15
	maxGrammarExamples  = 3

	grammarFallbackComments = "Unable to perform detailed grammar analysis. Overall, your response appears to have generally correct grammar with possibly a few minor issues."
)

var errNoGrammarChecker = errors.New("no grammar checker configured")

type GrammarChecker interface {
	Check(ctx context.Context, text string) ([]models.GrammarIssue, error)
}

type grammarRule struct {
	interview.GrammarRule
	re *regexp.Regexp
	// group is the index of the "match" subexpression, or -1.
	group int
}

type GrammarAnalyzer struct {
	checker GrammarChecker
	rules   []grammarRule
	rnd     Random
	log     zerolog.Logger
}

func NewGrammarAnalyzer(checker GrammarChecker, rules []interview.GrammarRule, rnd Random) (*GrammarAnalyzer, error) {
	compiled := make([]grammarRule, 0, len(rules))
	for _, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("grammar rule %q: %w", r.Message, err)
		}
		compiled = append(compiled, grammarRule{GrammarRule: r, re: re, group: re.SubexpIndex("match")})
	}
	return &GrammarAnalyzer{
		checker: checker,
		rules:   compiled,
		rnd:     rnd,
		log:     logger.Component("grammar"),
	}, nil
}

// Analyze scores the grammar of text. The second return value reports whether
// the offline heuristics or the fixed fallback record were used.
func (a *GrammarAnalyzer) Analyze(ctx context.Context, text string) (result models.GrammarResult, fallback bool) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Msg("Analyze(): grammar analysis failed")
			result = models.GrammarResult{Score: 7, Comments: grammarFallbackComments, Errors: []models.GrammarIssue{}}
			fallback = true
		}
	}()

	issues, err := a.check(ctx, text)
	if err != nil {
		a.log.Warn().Err(err).Msg("Analyze(): falling back to heuristic grammar check")
		issues = a.Heuristic(text)
		fallback = true
	}
	if issues == nil {
		issues = []models.GrammarIssue{}
	}

	score := GrammarScore(len(issues), text)
	return models.GrammarResult{
		Score:    score,
		Comments: GrammarComments(issues),
		Errors:   issues,
	}, fallback
}

func (a *GrammarAnalyzer) check(ctx context.Context, text string) ([]models.GrammarIssue, error) {
	if a.checker == nil {
		return nil, errNoGrammarChecker
	}
	return a.checker.Check(ctx, text)
}

// Heuristic runs every rule once against text and keeps one match plus a
// random extra one.
func (a *GrammarAnalyzer) Heuristic(text string) []models.GrammarIssue {
	matches := make([]models.GrammarIssue, 0, len(a.rules))
	for _, rule := range a.rules {
		loc := rule.re.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}
		start, end := loc[0], loc[1]
		if g := rule.group; g > 0 && loc[2*g] >= 0 {
			start, end = loc[2*g], loc[2*g+1]
		}
		ctxStart := max(0, start-grammarContextChars)
		for ctxStart > 0 && !utf8.RuneStart(text[ctxStart]) {
			ctxStart--
		}
		ctxEnd := min(len(text), end+grammarContextChars)
		for ctxEnd < len(text) && !utf8.RuneStart(text[ctxEnd]) {
			ctxEnd++
		}

		matches = append(matches, models.GrammarIssue{
			Message: rule.Message,
			Type:    rule.Type,
			Context: models.IssueContext{
				Text:   text[ctxStart:ctxEnd],
				Offset: start - ctxStart,
				Length: end - start,
			},
			Source: models.SourceHeuristic,
		})
	}

	keep := 1 + a.rnd.IntN(2)
	if keep > len(matches) {
		keep = len(matches)
	}
	return matches[:keep]
}

// GrammarScore is 10 for a clean text and otherwise loses one point per
// percent of error density, never dropping below 5. Words are counted by
// single spaces, so an empty text still counts as one word.
func GrammarScore(errorCount int, text string) int {
	if errorCount == 0 {
		return 10
	}
	words := len(strings.Split(text, " "))
	density := float64(errorCount) / float64(words)
	penalty := min(5, int(math.Ceil(density*100)))
	return max(5, 10-penalty)
}

func GrammarComments(issues []models.GrammarIssue) string {
	n := len(issues)

	var comments string
	switch {
	case n == 0:
		comments = "Your grammar is excellent. No significant issues were found in your response."
	case n < 3:
		comments = fmt.Sprintf("Your grammar is generally good with only %d minor issues that could be improved.", n)
	case n < 7:
		comments = fmt.Sprintf("There are %d grammar issues in your response that should be addressed to improve clarity.", n)
	default:
		comments = fmt.Sprintf("Your response contains %d grammar issues that significantly impact readability and professionalism.", n)
	}

	if n > 0 {
		examples := make([]string, 0, maxGrammarExamples)
		for _, issue := range issues[:min(n, maxGrammarExamples)] {
			examples = append(examples, fmt.Sprintf("\"%s\" (%s)", issue.Context.Text, issue.Label()))
		}
		comments += " Examples include: " + strings.Join(examples, "; ") + "."
	}
	return comments
}
