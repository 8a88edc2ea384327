package models

import (
	"strings"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/utils"
)

type StartSessionRequest struct {
	UserID        string `json:"userId"`
	InterviewID   string `json:"interviewId"`
	CompanyName   string `json:"companyName"`
	JobTitle      string `json:"jobTitle"`
	InterviewType string `json:"interviewType"`
}

// implements the Validator interface
func (r *StartSessionRequest) Validate() error {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.JobTitle = strings.TrimSpace(r.JobTitle)
	r.InterviewType = utils.NormalizeInterviewType(r.InterviewType)

	if r.CompanyName == "" {
		return &ErrorResponse{Code: "missing_company", Message: "companyName is required"}
	}
	if r.JobTitle == "" {
		return &ErrorResponse{Code: "missing_job_title", Message: "jobTitle is required"}
	}
	if r.InterviewType == "" {
		r.InterviewType = InterviewTypeMixed
	}
	if !IsValidInterviewType(r.InterviewType) {
		return &ErrorResponse{
			Code:    "invalid_interview_type",
			Message: "interviewType must be one of: " + strings.Join(ValidInterviewTypesList(), ", "),
		}
	}
	return nil
}

type SwitchRoundRequest struct {
	TargetIndex *int `json:"targetIndex"`
}

func (r *SwitchRoundRequest) Validate() error {
	if r.TargetIndex == nil {
		return &ErrorResponse{Code: "missing_target_index", Message: "targetIndex is required"}
	}
	if *r.TargetIndex < 0 {
		return &ErrorResponse{Code: "invalid_target_index", Message: "targetIndex must not be negative"}
	}
	return nil
}

type AlertRequest struct {
	Type      string     `json:"type"`
	Severity  string     `json:"severity"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

func (r *AlertRequest) Validate() error {
	r.Type = strings.TrimSpace(r.Type)
	r.Severity = utils.NormalizeSeverity(r.Severity)

	if r.Type == "" {
		return &ErrorResponse{Code: "missing_alert_type", Message: "alert type is required"}
	}
	if !ValidSeverities[Severity(r.Severity)] {
		return &ErrorResponse{Code: "invalid_severity", Message: "severity must be one of: low, medium, high"}
	}
	return nil
}

// ToAlert converts the request, stamping now when the client sent no timestamp.
func (r *AlertRequest) ToAlert(now time.Time) Alert {
	ts := now
	if r.Timestamp != nil && !r.Timestamp.IsZero() {
		ts = *r.Timestamp
	}
	return Alert{Type: r.Type, Severity: Severity(r.Severity), Timestamp: ts.UTC()}
}

// alertStampStep separates timestamp-less alerts that arrive in one batch.
const alertStampStep = time.Millisecond

// ToAlerts converts a batch of alert requests. Alerts without a timestamp
// get now plus their position in the batch so they stay distinct events.
func ToAlerts(reqs []AlertRequest, now time.Time) []Alert {
	alerts := make([]Alert, 0, len(reqs))
	for i := range reqs {
		alerts = append(alerts, reqs[i].ToAlert(now.Add(time.Duration(i)*alertStampStep)))
	}
	return alerts
}

type CompleteRoundRequest struct {
	Answers          []string       `json:"answers"`
	TimeSpentSeconds int            `json:"timeSpentSeconds"`
	Alerts           []AlertRequest `json:"alerts"`
}

func (r *CompleteRoundRequest) Validate() error {
	if r.TimeSpentSeconds < 0 {
		return &ErrorResponse{Code: "invalid_time_spent", Message: "timeSpentSeconds must not be negative"}
	}
	for i := range r.Alerts {
		if err := r.Alerts[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
