package models

import "time"

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

type RoundBreakdown struct {
	RoundID          string      `json:"roundId"`
	Type             RoundType   `json:"type"`
	Status           RoundStatus `json:"status"`
	FinalScore       *float64    `json:"finalScore,omitempty"`
	TimeSpentSeconds int         `json:"timeSpentSeconds"`
}

type SecurityReport struct {
	TotalAlerts          int `json:"totalAlerts"`
	HighSeverityAlerts   int `json:"highSeverityAlerts"`
	MediumSeverityAlerts int `json:"mediumSeverityAlerts"`
	IntegrityScore       int `json:"integrityScore"`
}

// FinalReport is the whole-session outcome, produced once the last round
// completes. Building it twice from the same session yields the same value.
type FinalReport struct {
	SessionID             string           `json:"sessionId"`
	UserID                string           `json:"userId"`
	CompanyName           string           `json:"companyName"`
	JobTitle              string           `json:"jobTitle"`
	OverallScore          float64          `json:"overallScore"`
	CompletedRounds       int              `json:"completedRounds"`
	TotalRounds           int              `json:"totalRounds"`
	TotalTimeSpentSeconds int              `json:"totalTimeSpentSeconds"`
	Strengths             []string         `json:"strengths"`
	Improvements          []string         `json:"improvements"`
	Recommendations       []string         `json:"recommendations"`
	RiskLevel             RiskLevel        `json:"riskLevel"`
	ReadinessLevel        string           `json:"readinessLevel"`
	Verdict               string           `json:"verdict"`
	RoundBreakdown        []RoundBreakdown `json:"roundBreakdown"`
	Security              SecurityReport   `json:"security"`
	GeneratedAt           time.Time        `json:"generatedAt"`
}

// Progress summarizes how far a session has advanced.
type Progress struct {
	SessionID                 string       `json:"sessionId"`
	State                     SessionState `json:"state"`
	CurrentRoundIndex         int          `json:"currentRoundIndex"`
	ActiveRoundIndex          int          `json:"activeRoundIndex"`
	CompletedRounds           int          `json:"completedRounds"`
	TotalRounds               int          `json:"totalRounds"`
	Percentage                float64      `json:"percentage"`
	EstimatedRemainingSeconds int          `json:"estimatedRemainingSeconds"`
}
