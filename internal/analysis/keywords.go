package analysis

import (
	"regexp"
	"strings"

	"InterviewPractice_FeedbackService/internal/interview"
)

const maxKeywords = 10

var nonWordRe = regexp.MustCompile(`[^\w\s]`)

type KeywordExtractor struct {
	stopWords map[string]struct{}
}

func NewKeywordExtractor(stopWords []string) *KeywordExtractor {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToLower(w)] = struct{}{}
	}
	return &KeywordExtractor{stopWords: set}
}

// Extract lowercases text, strips punctuation and returns up to ten words
// that are longer than two characters and not stop words, in text order.
func (k *KeywordExtractor) Extract(text string) []string {
	cleaned := nonWordRe.ReplaceAllString(strings.ToLower(text), "")

	keywords := make([]string, 0, maxKeywords)
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 {
			continue
		}
		if _, stop := k.stopWords[word]; stop {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

var defaultExtractor = NewKeywordExtractor(interview.DefaultCorpus().StopWords)

// ExtractKeywords uses the built-in stop word list.
func ExtractKeywords(text string) []string {
	return defaultExtractor.Extract(text)
}
