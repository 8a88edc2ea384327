package policy

import (
	"strings"
	"testing"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestComposer(t *testing.T) *FeedbackComposer {
	t.Helper()
	fc, err := NewFeedbackComposer()
	require.NoError(t, err)
	return fc
}

func threeQuestionRound(roundType models.RoundType) models.Round {
	return models.Round{
		ID:   string(roundType) + "_1",
		Type: roundType,
		Questions: []models.Question{
			{ID: "q1", PointValue: 40, Category: "system design"},
			{ID: "q2", PointValue: 30, Category: "databases"},
			{ID: "q3", PointValue: 30},
		},
	}
}

func TestNewFeedbackComposerLoadsAllRoundTypes(t *testing.T) {
	fc := newTestComposer(t)
	names := fc.TemplateNames()
	for _, want := range append(models.ValidRoundTypesList(), defaultTemplateName) {
		assert.Contains(t, names, want)
	}
}

func TestComposeThresholds(t *testing.T) {
	fc := newTestComposer(t)
	round := threeQuestionRound(models.RoundTechnical)

	fb := fc.Compose(FeedbackInput{
		Round:          round,
		QuestionScores: []float64{32, 15, 0}, // 80%, 50%, 0%
		FinalScore:     47,
	})

	require.Len(t, fb.Strengths, 1)
	assert.Contains(t, fb.Strengths[0], "system design")
	// q2 sits exactly at 50% and is neither strength nor improvement
	require.Len(t, fb.Improvements, 1)
	assert.Contains(t, fb.Improvements[0], "technical")
	assert.Equal(t, "Fair technical round; several answers stayed at the surface.", fb.Text)
}

func TestComposeIsDeterministic(t *testing.T) {
	fc := newTestComposer(t)
	in := FeedbackInput{
		Round:          threeQuestionRound(models.RoundBehavioral),
		QuestionScores: []float64{0, 0, 30},
		FinalScore:     30,
		Company:        &models.CompanyIntel{Name: "Amazon", PreparationTips: []string{"Learn the leadership principles.", "Prepare STAR stories."}},
	}

	first := fc.Compose(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, fc.Compose(in))
	}
	assert.True(t, strings.Contains(first.Text, "Tip for Amazon:"))
}

func TestComposeUnknownCompanyHasNoTip(t *testing.T) {
	fc := newTestComposer(t)
	fb := fc.Compose(FeedbackInput{
		Round:          threeQuestionRound(models.RoundCulturalFit),
		QuestionScores: []float64{0, 0, 0},
		FinalScore:     0,
	})

	assert.NotContains(t, fb.Text, "Tip for")
	assert.NotEmpty(t, fb.Improvements)
	for _, s := range fb.Improvements {
		assert.NotContains(t, s, "{{")
	}
}

func TestComposeEmptyScoresYieldEmptyLists(t *testing.T) {
	fc := newTestComposer(t)
	fb := fc.Compose(FeedbackInput{Round: threeQuestionRound(models.RoundAptitude), FinalScore: 90})
	assert.Empty(t, fb.Strengths)
	assert.Empty(t, fb.Improvements)
	assert.NotNil(t, fb.Strengths)
	assert.Equal(t, "Excellent aptitude round.", fb.Text)
}

func TestScoreBand(t *testing.T) {
	assert.Equal(t, bandExcellent, scoreBand(80))
	assert.Equal(t, bandGood, scoreBand(79.99))
	assert.Equal(t, bandFair, scoreBand(40))
	assert.Equal(t, bandWeak, scoreBand(39.9))
}
