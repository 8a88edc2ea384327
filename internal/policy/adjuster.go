package policy

import (
	"math"
	"strings"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
)

// Scoring curve constants. They are product tuning values.
const (
	TopTechTechnicalMultiplier   = 0.9
	CommerceBehavioralMultiplier = 1.1
	DefaultMultiplier            = 1.0

	OvertimeTolerance = 1.2
	OvertimePenalty   = 0.9

	HighAlertPenaltyStep = 0.1
	ProctoringFloor      = 0.7

	MinScore = 0.0
	MaxScore = 100.0
)

// Input is everything the adjuster needs for one round.
type Input struct {
	RawScore         float64
	RoundType        models.RoundType
	Company          *models.CompanyIntel
	TimeSpentSeconds int
	DurationMinutes  int
	Alerts           []models.Alert
}

// Adjustment records each factor so results can be explained later.
type Adjustment struct {
	CompanyMultiplier float64
	TimePenalty       float64
	ProctoringPenalty float64
	FinalScore        float64
}

// Adjust applies the company curve, the overtime step and the proctoring
// deduction to a raw round score.
func Adjust(in Input) Adjustment {
	adj := Adjustment{
		CompanyMultiplier: CompanyMultiplier(in.Company, in.RoundType),
		TimePenalty:       TimePenalty(in.TimeSpentSeconds, in.DurationMinutes),
		ProctoringPenalty: ProctoringPenalty(CountSeverity(in.Alerts, models.SeverityHigh)),
	}

	raw := math.Max(in.RawScore, 0)
	final := raw * adj.CompanyMultiplier * adj.TimePenalty * adj.ProctoringPenalty
	adj.FinalScore = roundTo2(clamp(final, MinScore, MaxScore))
	return adj
}

// CompanyMultiplier returns the grading curve for a company and round type.
// Unknown companies are graded at 1.0.
func CompanyMultiplier(intel *models.CompanyIntel, roundType models.RoundType) float64 {
	if intel == nil {
		return DefaultMultiplier
	}

	switch {
	case roundType == models.RoundTechnical && strings.EqualFold(intel.Tier, models.TierTopTech):
		return TopTechTechnicalMultiplier
	case roundType == models.RoundBehavioral && isCommerce(intel.Industry):
		return CommerceBehavioralMultiplier
	}
	return DefaultMultiplier
}

// TimePenalty is a single step once time spent exceeds the budget by more
// than the tolerance.
func TimePenalty(timeSpentSeconds, durationMinutes int) float64 {
	budget := float64(durationMinutes) * 60 * OvertimeTolerance
	if float64(timeSpentSeconds) > budget {
		return OvertimePenalty
	}
	return 1.0
}

// ProctoringPenalty costs a step per high severity alert, floored.
func ProctoringPenalty(highAlerts int) float64 {
	if highAlerts <= 0 {
		return 1.0
	}
	return math.Max(ProctoringFloor, 1-HighAlertPenaltyStep*float64(highAlerts))
}

func CountSeverity(alerts []models.Alert, severity models.Severity) int {
	n := 0
	for _, a := range alerts {
		if a.Severity == severity {
			n++
		}
	}
	return n
}

func isCommerce(industry string) bool {
	industry = strings.ToLower(strings.TrimSpace(industry))
	return industry == models.IndustryECommerce || industry == models.IndustryLogistics
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
