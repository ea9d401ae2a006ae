// Package interview holds the practice question bank and the word lists and
// rule tables the analyzers score against. Everything here is data: the
// defaults can be replaced wholesale by a YAML corpus file.
package interview

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// GrammarRule is one offline grammar heuristic. A pattern may name a group
// "match"; the reported span is then that group rather than the whole match,
// which lets a pattern consume trailing context it only needs to check.
type GrammarRule struct {
	Message string `yaml:"message"`
	Pattern string `yaml:"pattern"`
	Type    string `yaml:"type"`
}

type Corpus struct {
	Questions    []string      `yaml:"questions"`
	StopWords    []string      `yaml:"stop_words"`
	FillerWords  []string      `yaml:"filler_words"`
	GrammarRules []GrammarRule `yaml:"grammar_rules"`
}

func DefaultCorpus() Corpus {
	return Corpus{
		Questions: []string{
			"Tell me about yourself.",
			"What are your greatest strengths?",
			"What do you consider to be your weaknesses?",
			"Why are you interested in working for our company?",
			"Where do you see yourself in 5 years?",
			"Why should we hire you?",
			"Describe a difficult work situation and how you overcame it.",
			"What is your greatest professional achievement?",
			"How do you handle stress and pressure?",
			"What are your salary expectations?",
			"Do you have any questions for me?",
		},
		StopWords: []string{
			"a", "an", "the", "and", "or", "but", "in", "on", "at", "to", "for", "with", "by",
			"about", "as", "into", "like", "through", "after", "over", "between", "out",
			"against", "during", "without", "before", "under", "around", "among", "is", "are",
			"was", "were", "be", "been", "being", "have", "has", "had", "do", "does", "did",
			"will", "would", "shall", "should", "may", "might", "must", "can", "could", "of",
			"that", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "your",
			"yours", "yourself", "yourselves", "he", "him", "his", "himself", "she", "her",
			"hers", "herself", "it", "its", "itself", "they", "them", "their", "theirs",
			"themselves",
		},
		FillerWords: []string{"um", "uh", "like", "you know", "so", "basically", "actually"},
		GrammarRules: []GrammarRule{
			{
				Message: "Use of passive voice",
				Pattern: `(?i)\b(is|are|was|were|be|been|being)\s+\w+ed\b`,
				Type:    "style",
			},
			{
				Message: "Double spaces between words",
				Pattern: `\s{2,}`,
				Type:    "typographical",
			},
			{
				Message: "Missing comma after introductory phrase",
				Pattern: `(?i)^(?P<match>(?:however|therefore|moreover|furthermore|consequently|nevertheless|additionally)\s+)(?:[^,]|$)`,
				Type:    "punctuation",
			},
			{
				Message: "Run-on sentence",
				Pattern: `(?i)\b(and|but|or|so|for|yet|nor)\b\s+\w+\s+\w+\s+\w+\s+\w+\s+\w+\s+\w+\s+\w+\s+\w+\s+\w+`,
				Type:    "grammar",
			},
			{
				Message: "Possible subject-verb agreement error",
				Pattern: `(?i)\b(the team|everyone|somebody|anybody|nobody|everybody)\s+\b(are|were|have)\b`,
				Type:    "grammar",
			},
		},
	}
}

// LoadCorpus reads a YAML corpus. Sections left out of the file keep their
// defaults.
func LoadCorpus(path string) (Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Corpus{}, fmt.Errorf("read corpus %s: %w", path, err)
	}

	var loaded Corpus
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Corpus{}, fmt.Errorf("parse corpus %s: %w", path, err)
	}

	corpus := DefaultCorpus()
	if len(loaded.Questions) > 0 {
		corpus.Questions = loaded.Questions
	}
	if len(loaded.StopWords) > 0 {
		corpus.StopWords = loaded.StopWords
	}
	if len(loaded.FillerWords) > 0 {
		corpus.FillerWords = loaded.FillerWords
	}
	if len(loaded.GrammarRules) > 0 {
		corpus.GrammarRules = loaded.GrammarRules
	}

	if err := corpus.Validate(); err != nil {
		return Corpus{}, fmt.Errorf("corpus %s: %w", path, err)
	}
	return corpus, nil
}

func (c Corpus) Validate() error {
	var errs []error
	if len(c.Questions) == 0 {
		errs = append(errs, ErrNoQuestions)
	}
	for i, q := range c.Questions {
		if strings.TrimSpace(q) == "" {
			errs = append(errs, fmt.Errorf("question %d is blank", i))
		}
	}
	for i, rule := range c.GrammarRules {
		if rule.Message == "" {
			errs = append(errs, fmt.Errorf("grammar rule %d has no message", i))
		}
		if _, err := regexp.Compile(rule.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("grammar rule %d (%s): %w", i, rule.Message, err))
		}
	}
	return errors.Join(errs...)
}
