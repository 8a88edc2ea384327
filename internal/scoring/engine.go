package scoring

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
)

// ErrEmptyRound is returned when a round has no questions to score against.
var ErrEmptyRound = errors.New("round has no questions")

// Answer quality signals, as fractions of a question's points.
const (
	ShortAnswerRunes    = 50
	LongAnswerRunes     = 150
	ShortAnswerShare    = 0.30
	LongAnswerShare     = 0.20
	TechKeywordShare    = 0.10
	TechKeywordCap      = 0.30
	CultureKeywordShare = 0.10
	CultureKeywordCap   = 0.20
	SpecificityShare    = 0.10
)

var specificityMarkers = []string{"example", "specifically", "experience"}

// RoundScore is the raw outcome of scoring one round.
type RoundScore struct {
	QuestionScores []float64
	RawScore       float64
}

// ScoreRound scores answers against the round's questions. Answers are
// matched by position; a missing answer counts as an empty string.
func ScoreRound(round models.Round, answers []string, intel *models.CompanyIntel) (RoundScore, error) {
	if len(round.Questions) == 0 {
		return RoundScore{}, ErrEmptyRound
	}

	var techKeywords, cultureKeywords []string
	if intel != nil {
		if round.Type == models.RoundTechnical {
			techKeywords = normalizeKeywords(intel.TechStack)
		}
		cultureKeywords = normalizeKeywords(intel.CultureKeywords())
	}

	out := RoundScore{QuestionScores: make([]float64, len(round.Questions))}
	for i, q := range round.Questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		score := ScoreAnswer(q.PointValue, answer, techKeywords, cultureKeywords)
		out.QuestionScores[i] = score
		out.RawScore += score
	}
	return out, nil
}

// ScoreAnswer applies the four independent signals to a single answer.
// Keyword lists are expected lowercased and deduplicated.
func ScoreAnswer(points float64, answer string, techKeywords, cultureKeywords []string) float64 {
	if points <= 0 {
		return 0
	}

	trimmed := strings.TrimSpace(answer)
	lower := strings.ToLower(trimmed)
	length := utf8.RuneCountInString(trimmed)

	score := 0.0
	if length >= ShortAnswerRunes {
		score += points * ShortAnswerShare
	}
	if length >= LongAnswerRunes {
		score += points * LongAnswerShare
	}

	score += capped(float64(countMatches(lower, techKeywords))*points*TechKeywordShare, points*TechKeywordCap)
	score += capped(float64(countMatches(lower, cultureKeywords))*points*CultureKeywordShare, points*CultureKeywordCap)

	for _, marker := range specificityMarkers {
		if strings.Contains(lower, marker) {
			score += points * SpecificityShare
			break
		}
	}

	return capped(score, points)
}

func countMatches(text string, keywords []string) int {
	if text == "" {
		return 0
	}
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}

func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

func capped(value, limit float64) float64 {
	if value > limit {
		return limit
	}
	return value
}
