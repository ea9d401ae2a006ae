package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"InterviewPractice_FeedbackService/internal/llm"
	"InterviewPractice_FeedbackService/internal/logger"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/rs/zerolog"
)

const maxListItems = 3

const contentSystemPrompt = "You are an expert interview coach who analyzes interview responses and provides structured feedback in JSON format."

const contentPromptTemplate = `You are an expert interview coach analyzing an HR interview response.

Question: "%s"

Response: "%s"

Please analyze this interview response in terms of content relevance, depth, and quality. Provide the following in JSON format:
1. A score from 1-10
2. Brief comments on the overall quality
3. List of 2-3 strengths
4. List of 2-3 weaknesses
5. List of 2-3 improvement suggestions

Format your response as JSON with the following keys: score, comments, strengths, weaknesses, improvementSuggestions`

const (
	defaultContentComments = "Your response is relevant to the question and provides good detail."
	defaultContentScore    = 7
)

var (
	defaultStrengths   = []string{"Addresses the question", "Shows relevant experience"}
	defaultWeaknesses  = []string{"Could be more specific", "Lacks concrete examples"}
	defaultSuggestions = []string{"Add specific examples", "Quantify your achievements"}
)

// contentUnavailable is returned when content analysis itself breaks.
func contentUnavailable() models.ContentResult {
	return models.ContentResult{
		Score:                  7,
		Comments:               "Your response is relevant to the question and provides adequate detail.",
		Strengths:              []string{"Addresses the question directly", "Provides some supporting details"},
		Weaknesses:             []string{"Could include more specific examples"},
		ImprovementSuggestions: []string{"Consider adding specific achievements to strengthen your answer"},
	}
}

var ErrNotAnObject = errors.New("content reply is not a JSON object")

type Completer interface {
	Configured() bool
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

type ContentAnalyzer struct {
	completer Completer
	keywords  *KeywordExtractor
	log       zerolog.Logger
}

func NewContentAnalyzer(completer Completer, stopWords []string) *ContentAnalyzer {
	return &ContentAnalyzer{
		completer: completer,
		keywords:  NewKeywordExtractor(stopWords),
		log:       logger.Component("content"),
	}
}

// Analyze scores the relevance and depth of response. Without a configured
// model, when the request fails or when its reply cannot be parsed, the
// heuristic is used.
func (a *ContentAnalyzer) Analyze(ctx context.Context, question, response string) (result models.ContentResult, fallback bool) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Msg("Analyze(): content analysis failed")
			result, fallback = contentUnavailable(), true
		}
	}()

	if a.completer == nil || !a.completer.Configured() {
		a.log.Warn().Msg("Analyze(): no LLM API key, using heuristic analysis")
		return a.Heuristic(question, response), true
	}

	reply, err := a.completer.Complete(ctx, []llm.Message{
		{Role: "system", Content: contentSystemPrompt},
		{Role: "user", Content: fmt.Sprintf(contentPromptTemplate, question, response)},
	})
	if err != nil {
		a.log.Error().Err(err).Msg("Analyze(): content analysis request failed, using heuristic analysis")
		return a.Heuristic(question, response), true
	}

	parsed, err := ParseContentReply(reply)
	if err != nil {
		a.log.Warn().Err(err).Msg("Analyze(): unparsable reply, using heuristic analysis")
		return a.Heuristic(question, response), true
	}
	return parsed, false
}

var (
	fencedJSONRe = regexp.MustCompile("```json\\n((?s).*?)\\n```")
	braceSpanRe  = regexp.MustCompile(`(?s)\{.*\}`)
)

// ParseContentReply reads a model reply. A fenced json block wins over a bare
// {...} span; with neither the fields are scraped from prose.
func ParseContentReply(reply string) (models.ContentResult, error) {
	var payload string
	if m := fencedJSONRe.FindStringSubmatch(reply); m != nil {
		payload = m[1]
	} else if span := braceSpanRe.FindString(reply); span != "" {
		payload = span
	} else {
		return finishContent(extractContentFromText(reply)), nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(payload), &fields); err != nil {
		return models.ContentResult{}, fmt.Errorf("decode content reply: %w", err)
	}
	if fields == nil {
		return models.ContentResult{}, ErrNotAnObject
	}

	result := models.ContentResult{
		Score:                  defaultContentScore,
		Strengths:              listOrDefault(fields["strengths"], defaultStrengths),
		Weaknesses:             listOrDefault(fields["weaknesses"], defaultWeaknesses),
		ImprovementSuggestions: listOrDefault(fields["improvementSuggestions"], defaultSuggestions),
	}
	if n, ok := leadingInt(fields["score"]); ok && n != 0 {
		result.Score = min(10, max(1, n))
	}
	if s, ok := fields["comments"].(string); ok {
		result.Comments = s
	}
	return finishContent(result), nil
}

func finishContent(r models.ContentResult) models.ContentResult {
	if r.Comments == "" {
		r.Comments = defaultContentComments
	}
	r.Strengths = capList(r.Strengths)
	r.Weaknesses = capList(r.Weaknesses)
	r.ImprovementSuggestions = capList(r.ImprovementSuggestions)
	return r
}

func listOrDefault(v any, def []string) []string {
	items, ok := v.([]any)
	if !ok {
		return append([]string(nil), def...)
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch s := item.(type) {
		case string:
			out = append(out, s)
		default:
			raw, _ := json.Marshal(s)
			out = append(out, string(raw))
		}
	}
	return out
}

func capList(list []string) []string {
	if list == nil {
		return []string{}
	}
	if len(list) > maxListItems {
		return list[:maxListItems]
	}
	return list
}

// leadingInt reads the integer prefix of a number or numeric string, the way
// a lenient form parser would ("8/10" is 8).
func leadingInt(v any) (int, bool) {
	var s string
	switch t := v.(type) {
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		s = t
	default:
		return 0, false
	}

	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

var (
	textScoreRe     = regexp.MustCompile(`(?i)score[:\s]*(\d+)`)
	textRatingRe    = regexp.MustCompile(`(?i)rating[:\s]*(\d+)`)
	textCommentsRe  = regexp.MustCompile(`(?i)comments[:\s]*([^\n]+)`)
	textFeedbackRe  = regexp.MustCompile(`(?i)feedback[:\s]*([^\n]+)`)
	bulletRe        = regexp.MustCompile(`[-*]\s*[^\n]+`)
	bulletPrefixRe  = regexp.MustCompile(`[-*]\s*`)
	strengthsHeadRe = regexp.MustCompile(`(?i)strengths[:\s]*`)
	weakHeadRe      = regexp.MustCompile(`(?i)weaknesses[:\s]*`)
	suggestHeadRe   = regexp.MustCompile(`(?i)suggestions[:\s]*`)
	improveHeadRe   = regexp.MustCompile(`(?i)improvements[:\s]*`)
	strengthsEndRe  = regexp.MustCompile(`(?i)weaknesses|improvement`)
	weakEndRe       = regexp.MustCompile(`(?i)strengths|improvement`)
	suggestEndRe    = regexp.MustCompile(`(?i)strengths|weaknesses`)
)

func extractContentFromText(text string) models.ContentResult {
	result := models.ContentResult{
		Score:                  defaultContentScore,
		Strengths:              []string{},
		Weaknesses:             []string{},
		ImprovementSuggestions: []string{},
	}

	if m := firstSubmatch(text, textScoreRe, textRatingRe); m != "" {
		if n, err := strconv.Atoi(m); err == nil {
			result.Score = min(10, max(1, n))
		}
	}

	if m := firstSubmatch(text, textCommentsRe, textFeedbackRe); m != "" {
		result.Comments = strings.TrimSpace(m)
	} else {
		for _, line := range strings.Split(text, "\n") {
			if strings.TrimSpace(line) != "" && !strings.HasPrefix(line, "#") {
				result.Comments = strings.TrimSpace(line)
				break
			}
		}
	}

	if section, ok := sectionAfter(text, strengthsEndRe, strengthsHeadRe); ok {
		result.Strengths = bullets(section)
	}
	if section, ok := sectionAfter(text, weakEndRe, weakHeadRe); ok {
		result.Weaknesses = bullets(section)
	}
	if section, ok := sectionAfter(text, suggestEndRe, suggestHeadRe, improveHeadRe); ok {
		result.ImprovementSuggestions = bullets(section)
	}
	return result
}

func firstSubmatch(text string, res ...*regexp.Regexp) string {
	for _, re := range res {
		if m := re.FindStringSubmatch(text); m != nil && m[1] != "" {
			return m[1]
		}
	}
	return ""
}

// sectionAfter returns the text following the first heading that matches,
// up to the next heading matched by end.
func sectionAfter(text string, end *regexp.Regexp, heads ...*regexp.Regexp) (string, bool) {
	for _, head := range heads {
		loc := head.FindStringIndex(text)
		if loc == nil {
			continue
		}
		rest := text[loc[1]:]
		if stop := end.FindStringIndex(rest); stop != nil {
			rest = rest[:stop[0]]
		}
		return rest, true
	}
	return "", false
}

func bullets(section string) []string {
	items := bulletRe.FindAllString(section, -1)
	out := make([]string, 0, min(len(items), maxListItems))
	for _, item := range items {
		if len(out) == maxListItems {
			break
		}
		if loc := bulletPrefixRe.FindStringIndex(item); loc != nil {
			item = item[:loc[0]] + item[loc[1]:]
		}
		out = append(out, strings.TrimSpace(item))
	}
	return out
}

var sentenceEndRe = regexp.MustCompile(`[.!?]+`)

// Heuristic scores content without a model, from keyword overlap with the
// question, length, vocabulary and sentence length.
func (a *ContentAnalyzer) Heuristic(question, response string) models.ContentResult {
	words := strings.Fields(response)
	wordCount := len(words)
	sentenceCount := len(sentenceEndRe.FindAllStringIndex(response, -1))
	avgSentenceLength := float64(wordCount) / float64(max(1, sentenceCount))

	matchRate := a.KeywordMatchRate(question, response)

	complexWords := 0
	for _, w := range words {
		if utf8.RuneCountInString(w) > 8 {
			complexWords++
		}
	}
	complexityRate := float64(complexWords) / float64(max(1, wordCount))

	score := 5.0
	score += matchRate * 3

	switch {
	case wordCount < 50:
		score -= 2
	case wordCount < 100:
		score -= 1
	case wordCount > 200:
		score += 0.5
	default:
		score += 1
	}

	score += min(1, complexityRate*5)

	switch {
	case avgSentenceLength > 25:
		score -= 0.5
	case avgSentenceLength < 10:
		score -= 0.5
	default:
		score += 0.5
	}

	contentScore := clampScore(score)
	lower := strings.ToLower(response)

	strengths := []string{}
	if matchRate > 0.7 {
		strengths = append(strengths, "Your response is highly relevant to the question")
	}
	if wordCount > 100 {
		strengths = append(strengths, "You provided a detailed response with good depth")
	}
	if complexityRate > 0.1 {
		strengths = append(strengths, "You used sophisticated vocabulary and concepts")
	}
	if strings.Contains(response, "example") || strings.Contains(response, "instance") || strings.Contains(response, "specifically") {
		strengths = append(strengths, "You included specific examples to illustrate your points")
	}

	weaknesses := []string{}
	if matchRate < 0.5 {
		weaknesses = append(weaknesses, "Your response could be more closely aligned with the question")
	}
	if wordCount < 75 {
		weaknesses = append(weaknesses, "Your answer lacks sufficient detail and development")
	}
	if wordCount > 250 {
		weaknesses = append(weaknesses, "Your response is verbose and could be more concise")
	}
	if !strings.Contains(lower, "i") || !strings.Contains(lower, "my") {
		weaknesses = append(weaknesses, "Your answer lacks personal experience or examples")
	}

	if len(strengths) == 0 {
		strengths = append(strengths,
			"You addressed the basic requirements of the question",
			"Your response has a logical structure")
	}
	if len(weaknesses) == 0 {
		weaknesses = append(weaknesses, "Consider adding more detail to strengthen your response")
	}

	suggestions := []string{}
	if matchRate < 0.6 {
		suggestions = append(suggestions, "Make sure to directly address the key aspects of the question")
	}
	if wordCount < 100 {
		suggestions = append(suggestions, "Provide more specific examples or details to support your response")
	}
	if contentScore < 7 {
		suggestions = append(suggestions, "Structure your answer using the STAR method (Situation, Task, Action, Result)")
	}
	if !strings.Contains(lower, "achieve") && !strings.Contains(lower, "success") && !strings.Contains(lower, "accomplish") {
		suggestions = append(suggestions, "Include specific achievements or successes to make your answer more impactful")
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Keep tying your achievements back to what the role needs")
	}

	var comments strings.Builder
	switch {
	case contentScore >= 9:
		comments.WriteString("Your response is excellent, demonstrating strong relevance to the question with appropriate detail and examples. ")
	case contentScore >= 7:
		comments.WriteString("Your response is good, addressing the question well with adequate detail. ")
	case contentScore >= 5:
		comments.WriteString("Your response is adequate but could be improved in terms of relevance and detail. ")
	default:
		comments.WriteString("Your response needs significant improvement to adequately address the question. ")
	}
	if matchRate < 0.5 {
		comments.WriteString("Your answer doesn't fully address the key aspects of the question. ")
	}
	if wordCount < 75 {
		comments.WriteString("Consider providing more detail and examples in your response. ")
	} else if wordCount > 250 {
		comments.WriteString("Your response is detailed but could be more concise. ")
	}
	comments.WriteString("Remember that interviewers are looking for specific examples that demonstrate your skills and experience.")

	return models.ContentResult{
		Score:                  contentScore,
		Comments:               comments.String(),
		Strengths:              capList(strengths),
		Weaknesses:             capList(weaknesses),
		ImprovementSuggestions: capList(suggestions),
	}
}

// KeywordMatchRate is the share of question keywords that overlap (as a
// substring either way) with an answer keyword. A question without keywords
// rates 0.5.
func (a *ContentAnalyzer) KeywordMatchRate(question, response string) float64 {
	questionKeywords := a.keywords.Extract(question)
	if len(questionKeywords) == 0 {
		return 0.5
	}
	responseKeywords := a.keywords.Extract(response)

	matched := 0
	for _, qk := range questionKeywords {
		for _, rk := range responseKeywords {
			if strings.Contains(rk, qk) || strings.Contains(qk, rk) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(questionKeywords))
}
