package models

import (
	"time"

	"gorm.io/datatypes"
)

// SessionRecord is the persisted form of a Session. The full snapshot and the
// final report are stored as JSON so the orchestrator shape can evolve
// without schema churn.
type SessionRecord struct {
	ID                string         `gorm:"primaryKey;size:64" json:"id"`
	UserID            string         `gorm:"index;size:128" json:"user_id"`
	InterviewID       string         `gorm:"index;size:128" json:"interview_id"`
	CompanyName       string         `gorm:"size:255" json:"company_name"`
	JobTitle          string         `gorm:"size:255" json:"job_title"`
	InterviewType     string         `gorm:"size:32" json:"interview_type"`
	State             string         `gorm:"size:32;index" json:"state"`
	CurrentRoundIndex int            `json:"current_round_index"`
	TotalRounds       int            `json:"total_rounds"`
	OverallScore      *float64       `json:"overall_score,omitempty"`
	RiskLevel         string         `gorm:"size:16" json:"risk_level,omitempty"`
	Snapshot          datatypes.JSON `json:"snapshot"`
	Report            datatypes.JSON `json:"report,omitempty"`
	EndedAt           *time.Time     `json:"ended_at,omitempty"`
	Exported          bool           `gorm:"not null;default:false;index" json:"exported"`
	ExportedAt        *time.Time     `json:"exported_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// ReportExportLine is one JSONL line written by the report exporter.
type ReportExportLine struct {
	SessionID     string      `json:"session_id"`
	UserID        string      `json:"user_id"`
	InterviewType string      `json:"interview_type"`
	Report        FinalReport `json:"report"`
}
