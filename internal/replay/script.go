// Package replay drives a scripted interview through the session manager.
// Scripts are YAML:
//
//	company: Google
//	job_title: Backend Engineer
//	interview_type: mixed
//	steps:
//	  - action: alert
//	    alert: {type: tab_switch, severity: high}
//	  - action: complete
//	    answers: ["..."]
//	    time_spent_seconds: 1200
//	  - action: switch
//	    round: 0
package replay

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ActionSwitch   = "switch"
	ActionAlert    = "alert"
	ActionComplete = "complete"
)

var ErrInvalidScript = errors.New("invalid replay script")

type Script struct {
	UserID        string `yaml:"user_id"`
	InterviewID   string `yaml:"interview_id"`
	Company       string `yaml:"company"`
	JobTitle      string `yaml:"job_title"`
	InterviewType string `yaml:"interview_type"`
	Steps         []Step `yaml:"steps"`
}

type AlertSpec struct {
	Type     string `yaml:"type"`
	Severity string `yaml:"severity"`
}

// Step is one scripted action. Round defaults to the active round for
// complete steps and is required for switch steps.
type Step struct {
	Action           string      `yaml:"action"`
	Round            *int        `yaml:"round"`
	Answers          []string    `yaml:"answers"`
	TimeSpentSeconds int         `yaml:"time_spent_seconds"`
	Alert            *AlertSpec  `yaml:"alert"`
	Alerts           []AlertSpec `yaml:"alerts"`
}

func Parse(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

func (s *Script) Validate() error {
	if strings.TrimSpace(s.Company) == "" {
		return fmt.Errorf("%w: company is required", ErrInvalidScript)
	}
	if strings.TrimSpace(s.JobTitle) == "" {
		return fmt.Errorf("%w: job_title is required", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		switch st.Action {
		case ActionSwitch:
			if st.Round == nil {
				return fmt.Errorf("%w: step %d: switch needs a round", ErrInvalidScript, i+1)
			}
		case ActionAlert:
			if st.Alert == nil {
				return fmt.Errorf("%w: step %d: alert needs an alert", ErrInvalidScript, i+1)
			}
		case ActionComplete:
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScript, i+1, st.Action)
		}
	}
	return nil
}
