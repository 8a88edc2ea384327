package scoring

import (
	"strings"
	"testing"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func techIntel() *models.CompanyIntel {
	return &models.CompanyIntel{
		Name:      "Acme",
		TechStack: []string{"Kubernetes", "Postgres", "Kafka", "Terraform"},
		Culture:   []string{"ownership", "bias for action"},
		Values:    []string{"customer obsession", "frugality"},
	}
}

func singleQuestionRound(roundType models.RoundType) models.Round {
	return models.Round{
		ID:        string(roundType) + "_1",
		Type:      roundType,
		Questions: []models.Question{{ID: "q1", Text: "Tell me", PointValue: 100}},
	}
}

func TestScoreRoundEmptyRound(t *testing.T) {
	_, err := ScoreRound(models.Round{Type: models.RoundTechnical}, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyRound)
}

func TestScoreRoundMissingAnswersScoreZero(t *testing.T) {
	round := models.Round{
		Type: models.RoundBehavioral,
		Questions: []models.Question{
			{ID: "q1", PointValue: 50},
			{ID: "q2", PointValue: 50},
		},
	}

	score, err := ScoreRound(round, nil, techIntel())
	require.NoError(t, err)
	assert.Equal(t, 0.0, score.RawScore)
	assert.Equal(t, []float64{0, 0}, score.QuestionScores)
}

func TestScoreAnswerLengthSignals(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   float64
	}{
		{"short", 49, 0},
		{"at first threshold", 50, 30},
		{"between thresholds", 149, 30},
		{"at second threshold", 150, 50},
		{"very long", 600, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAnswer(100, strings.Repeat("x", tt.length), nil, nil)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScoreAnswerCountsRunesNotBytes(t *testing.T) {
	// 50 two-byte runes
	got := ScoreAnswer(100, strings.Repeat("é", 50), nil, nil)
	assert.InDelta(t, 30, got, 1e-9)
}

func TestScoreRoundTechKeywordsOnlyInTechnicalRounds(t *testing.T) {
	answer := "we run kafka and POSTGRES"

	technical, err := ScoreRound(singleQuestionRound(models.RoundTechnical), []string{answer}, techIntel())
	require.NoError(t, err)
	assert.InDelta(t, 20, technical.RawScore, 1e-9)

	behavioral, err := ScoreRound(singleQuestionRound(models.RoundBehavioral), []string{answer}, techIntel())
	require.NoError(t, err)
	assert.InDelta(t, 0, behavioral.RawScore, 1e-9)
}

func TestScoreRoundKeywordCaps(t *testing.T) {
	answer := "kubernetes postgres kafka terraform ownership bias for action customer obsession frugality"

	score, err := ScoreRound(singleQuestionRound(models.RoundTechnical), []string{answer}, techIntel())
	require.NoError(t, err)
	// tech capped at 30, culture capped at 20, answer shorter than 150 but over 50
	assert.InDelta(t, 30+30+20, score.RawScore, 1e-9)
}

func TestScoreAnswerSpecificityIsFlat(t *testing.T) {
	got := ScoreAnswer(10, "for example, specifically my experience", nil, nil)
	assert.InDelta(t, 1, got, 1e-9)
}

func TestScoreAnswerCappedAtPoints(t *testing.T) {
	answer := strings.Repeat("kubernetes postgres kafka ownership frugality example ", 5)
	tech := []string{"kubernetes", "postgres", "kafka"}
	culture := []string{"ownership", "frugality"}

	got := ScoreAnswer(20, answer, tech, culture)
	assert.InDelta(t, 20, got, 1e-9)
}

func TestScoreRoundNilIntelScoresOnlyGenericSignals(t *testing.T) {
	answer := strings.Repeat("x", 160) + " example kafka"

	score, err := ScoreRound(singleQuestionRound(models.RoundTechnical), []string{answer}, nil)
	require.NoError(t, err)
	assert.InDelta(t, 60, score.RawScore, 1e-9)
}

func TestScoreRoundDeterministic(t *testing.T) {
	round := models.Round{
		Type: models.RoundTechnical,
		Questions: []models.Question{
			{ID: "q1", PointValue: 20},
			{ID: "q2", PointValue: 30},
			{ID: "q3", PointValue: 50},
		},
	}
	answers := []string{"kafka example", strings.Repeat("ownership ", 20), ""}

	first, err := ScoreRound(round, answers, techIntel())
	require.NoError(t, err)
	second, err := ScoreRound(round, answers, techIntel())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first.RawScore, 0.0)
	for i, q := range round.Questions {
		assert.LessOrEqual(t, first.QuestionScores[i], q.PointValue)
	}
}

func TestNormalizeKeywordsDedupes(t *testing.T) {
	got := normalizeKeywords([]string{"Go", " go ", "", "Rust"})
	assert.Equal(t, []string{"go", "rust"}, got)
}
