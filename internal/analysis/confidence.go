package analysis

import (
	"math"
	"strings"

	"InterviewPractice_FeedbackService/internal/logger"
	"InterviewPractice_FeedbackService/internal/models"

	"github.com/rs/zerolog"
)

// wordsPerSecond is the assumed speaking pace used to estimate duration.
const wordsPerSecond = 2.5

const pauseMarks = ".!?,;"

var confidenceFallback = models.ConfidenceResult{
	Score:    7,
	Comments: "Your speaking confidence appears to be good based on your delivery pattern. Consider maintaining a steady pace and varying your tone to enhance audience engagement.",
	Metrics: models.ConfidenceMetrics{
		SpeakingRate:    150,
		PauseRate:       0.15,
		FillerWordRate:  0.02,
		PitchVariation:  0.6,
		VolumeVariation: 0.5,
	},
}

// ConfidenceAnalyzer estimates delivery confidence from the transcript text.
// Pitch and volume variation are simulated with the random source.
type ConfidenceAnalyzer struct {
	fillers map[string]struct{}
	rnd     Random
	log     zerolog.Logger
}

func NewConfidenceAnalyzer(fillerWords []string, rnd Random) *ConfidenceAnalyzer {
	fillers := make(map[string]struct{}, len(fillerWords))
	for _, w := range fillerWords {
		fillers[strings.ToLower(w)] = struct{}{}
	}
	return &ConfidenceAnalyzer{fillers: fillers, rnd: rnd, log: logger.Component("confidence")}
}

func (a *ConfidenceAnalyzer) Analyze(transcript string) (result models.ConfidenceResult, fallback bool) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Msg("Analyze(): confidence analysis failed")
			result, fallback = confidenceFallback, true
		}
	}()

	metrics := a.Metrics(transcript)
	score := ConfidenceScore(metrics)
	return models.ConfidenceResult{
		Score:    score,
		Comments: ConfidenceComments(metrics, score),
		Metrics:  metrics,
	}, false
}

// Metrics derives the speech metrics. With no words every rate is zero.
func (a *ConfidenceAnalyzer) Metrics(transcript string) models.ConfidenceMetrics {
	words := strings.Fields(transcript)
	wordCount := len(words)

	m := models.ConfidenceMetrics{WordCount: wordCount}
	if wordCount > 0 {
		fillerCount := 0
		for _, w := range words {
			if _, ok := a.fillers[strings.ToLower(w)]; ok {
				fillerCount++
			}
		}
		pauses := 0
		for _, r := range transcript {
			if strings.ContainsRune(pauseMarks, r) {
				pauses++
			}
		}

		m.EstimatedDuration = float64(wordCount) / wordsPerSecond
		m.FillerWordRate = float64(fillerCount) / float64(wordCount)
		m.SpeakingRate = float64(wordCount) / m.EstimatedDuration * 60
		m.PauseRate = float64(pauses) / float64(wordCount)
	}

	m.PitchVariation = 0.4 + a.rnd.Float64()*0.4
	m.VolumeVariation = 0.4 + a.rnd.Float64()*0.4
	return m
}

func ConfidenceScore(m models.ConfidenceMetrics) int {
	score := 7.0

	switch {
	case m.SpeakingRate > 180:
		score -= 0.5
	case m.SpeakingRate < 120:
		score -= 0.5
	default:
		score += 0.5
	}

	if m.FillerWordRate > 0.05 {
		score -= m.FillerWordRate * 30
	} else {
		score += 0.5
	}

	score += (m.PitchVariation - 0.5) * 2
	score += (m.VolumeVariation - 0.5) * 1.5

	if m.PauseRate < 0.05 {
		score -= 1
	} else if m.PauseRate > 0.2 {
		score += 0.5
	}

	return clampScore(score)
}

func ConfidenceComments(m models.ConfidenceMetrics, score int) string {
	var b strings.Builder

	switch {
	case score >= 9:
		b.WriteString("Your delivery demonstrates exceptional confidence. ")
	case score >= 7:
		b.WriteString("You speak with good confidence. ")
	case score >= 5:
		b.WriteString("Your speaking confidence is adequate but could be improved. ")
	default:
		b.WriteString("Your delivery lacks confidence and needs significant improvement. ")
	}

	switch {
	case m.SpeakingRate > 180:
		b.WriteString("Your speaking pace is quite fast, which might make it difficult for listeners to follow. Try slowing down. ")
	case m.SpeakingRate < 120:
		b.WriteString("You speak somewhat slowly, which might reduce perceived confidence. Try increasing your pace slightly. ")
	default:
		b.WriteString("Your speaking pace is well-balanced. ")
	}

	switch {
	case m.FillerWordRate > 0.08:
		b.WriteString(`You use a high number of filler words like "um" or "uh", which significantly reduces perceived confidence. `)
	case m.FillerWordRate > 0.03:
		b.WriteString("Try to reduce your use of filler words to sound more confident. ")
	default:
		b.WriteString("You use minimal filler words, which enhances your perceived confidence. ")
	}

	if m.PitchVariation < 0.5 {
		b.WriteString("Your tone lacks variation, which can make your delivery sound monotonous. Try varying your pitch to engage listeners. ")
	} else {
		b.WriteString("Your voice has good tonal variety, helping to maintain listener engagement. ")
	}

	if score < 8 {
		b.WriteString("Practice speaking with deliberate pauses and emphasis on key points to enhance your confidence.")
	} else {
		b.WriteString("Maintain this confident speaking style in your interviews.")
	}
	return b.String()
}

// clampScore rounds half up and clamps to [1,10].
func clampScore(score float64) int {
	rounded := int(math.Floor(score + 0.5))
	return min(10, max(1, rounded))
}
