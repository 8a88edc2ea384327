package report

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"gopkg.in/yaml.v3"
)

// Report thresholds.
const (
	RemedialThreshold = 60.0
	AdvancedThreshold = 80.0

	HighRiskHighAlerts     = 3
	MediumRiskMediumAlerts = 5

	IntegrityBase      = 100
	IntegrityAlertCost = 10
	IntegrityFloor     = 50
)

//go:embed recommendations.yaml
var recommendationsYAML []byte

type Advice struct {
	Generic  []string `yaml:"generic"`
	Remedial []string `yaml:"remedial"`
	Advanced []string `yaml:"advanced"`
}

// Aggregator folds a finished session into its FinalReport.
type Aggregator struct {
	advice Advice
}

func NewAggregator() (*Aggregator, error) {
	var advice Advice
	if err := yaml.Unmarshal(recommendationsYAML, &advice); err != nil {
		return nil, fmt.Errorf("failed to parse recommendations: %w", err)
	}
	return &Aggregator{advice: advice}, nil
}

// Build derives the report from the session alone, so calling it again for
// the same session returns an identical value.
func (a *Aggregator) Build(s models.Session) models.FinalReport {
	overall := OverallScore(s.RoundResults)

	strengths := []string{}
	improvements := []string{}
	for _, res := range s.RoundResults {
		strengths = appendUnique(strengths, res.Strengths...)
		improvements = appendUnique(improvements, res.Improvements...)
	}

	generatedAt := s.CreatedAt
	if s.EndedAt != nil {
		generatedAt = *s.EndedAt
	}

	return models.FinalReport{
		SessionID:             s.ID,
		UserID:                s.UserID,
		CompanyName:           s.CompanyName,
		JobTitle:              s.JobTitle,
		OverallScore:          overall,
		CompletedRounds:       len(s.RoundResults),
		TotalRounds:           len(s.Rounds),
		TotalTimeSpentSeconds: s.TotalTimeSpentSeconds,
		Strengths:             strengths,
		Improvements:          improvements,
		Recommendations:       a.recommendations(s.Company, overall),
		RiskLevel:             RiskLevel(s.ProctoringAlerts),
		ReadinessLevel:        ReadinessLevel(overall),
		Verdict:               Verdict(overall),
		RoundBreakdown:        breakdown(s),
		Security:              Security(s.ProctoringAlerts),
		GeneratedAt:           generatedAt,
	}
}

// OverallScore is the unweighted mean of every round's final score.
func OverallScore(results []models.RoundResult) float64 {
	if len(results) == 0 {
		return 0
	}
	sum := 0.0
	for _, res := range results {
		sum += res.FinalScore
	}
	return math.Round(sum/float64(len(results))*100) / 100
}

func RiskLevel(alerts []models.Alert) models.RiskLevel {
	high, medium := countSeverities(alerts)
	switch {
	case high >= HighRiskHighAlerts:
		return models.RiskHigh
	case high > 0 || medium >= MediumRiskMediumAlerts:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

func Security(alerts []models.Alert) models.SecurityReport {
	high, medium := countSeverities(alerts)
	integrity := IntegrityBase - IntegrityAlertCost*len(alerts)
	if integrity < IntegrityFloor {
		integrity = IntegrityFloor
	}
	return models.SecurityReport{
		TotalAlerts:          len(alerts),
		HighSeverityAlerts:   high,
		MediumSeverityAlerts: medium,
		IntegrityScore:       integrity,
	}
}

func ReadinessLevel(overall float64) string {
	switch {
	case overall >= AdvancedThreshold:
		return "advanced"
	case overall >= RemedialThreshold:
		return "intermediate"
	default:
		return "beginner"
	}
}

func Verdict(overall float64) string {
	switch {
	case overall >= 85:
		return "Strong hire: performance was consistently excellent across rounds."
	case overall >= 70:
		return "Hire: solid performance with a few areas to polish."
	case overall >= 55:
		return "Borderline: promising, but key areas need more preparation."
	default:
		return "Not yet ready: focus on fundamentals and retake the interview."
	}
}

func (a *Aggregator) recommendations(intel *models.CompanyIntel, overall float64) []string {
	out := []string{}
	if intel != nil && len(intel.PreparationTips) > 0 {
		out = appendUnique(out, intel.PreparationTips...)
	} else {
		out = appendUnique(out, a.advice.Generic...)
	}
	if overall < RemedialThreshold {
		out = appendUnique(out, a.advice.Remedial...)
	}
	if overall >= AdvancedThreshold {
		out = appendUnique(out, a.advice.Advanced...)
	}
	return out
}

func breakdown(s models.Session) []models.RoundBreakdown {
	out := make([]models.RoundBreakdown, 0, len(s.Rounds))
	for _, r := range s.Rounds {
		item := models.RoundBreakdown{RoundID: r.ID, Type: r.Type, Status: r.Status}
		if res, ok := s.ResultFor(r.ID); ok {
			score := res.FinalScore
			item.FinalScore = &score
			item.TimeSpentSeconds = res.TimeSpentSeconds
		}
		out = append(out, item)
	}
	return out
}

func countSeverities(alerts []models.Alert) (high, medium int) {
	for _, alert := range alerts {
		switch alert.Severity {
		case models.SeverityHigh:
			high++
		case models.SeverityMedium:
			medium++
		}
	}
	return high, medium
}

func appendUnique(list []string, items ...string) []string {
	for _, item := range items {
		if item == "" || contains(list, item) {
			continue
		}
		list = append(list, item)
	}
	return list
}

func contains(list []string, item string) bool {
	for _, existing := range list {
		if existing == item {
			return true
		}
	}
	return false
}
