package orchestrator

import (
	"fmt"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/policy"
	"github.com/Nitingarg01/Major-project-sub001/internal/report"

	"github.com/google/uuid"
)

// Orchestrator drives sessions through the round state machine. It holds no
// per-session state: every method takes a Session value and returns a new
// one, leaving the input untouched.
type Orchestrator struct {
	feedback   *policy.FeedbackComposer
	aggregator *report.Aggregator
	now        func() time.Time
}

type Option func(*Orchestrator)

// WithClock replaces the wall clock used for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

func New(feedback *policy.FeedbackComposer, aggregator *report.Aggregator, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		feedback:   feedback,
		aggregator: aggregator,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewDefault wires the embedded feedback templates and recommendations.
func NewDefault(opts ...Option) (*Orchestrator, error) {
	fc, err := policy.NewFeedbackComposer()
	if err != nil {
		return nil, err
	}
	agg, err := report.NewAggregator()
	if err != nil {
		return nil, err
	}
	return New(fc, agg, opts...), nil
}

type SessionParams struct {
	ID            string
	InterviewID   string
	UserID        string
	CompanyName   string
	JobTitle      string
	InterviewType string
	Rounds        []models.Round
	Company       *models.CompanyIntel
}

// NewSession creates a not-started session. Rounds are copied and reset to
// pending; a session without rounds, or with a round that has no questions,
// is rejected with ErrEmptyRound.
func (o *Orchestrator) NewSession(p SessionParams) (models.Session, error) {
	if len(p.Rounds) == 0 {
		return models.Session{}, fmt.Errorf("session has no rounds: %w", ErrEmptyRound)
	}

	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}

	s := models.Session{
		ID:            id,
		InterviewID:   p.InterviewID,
		UserID:        p.UserID,
		CompanyName:   p.CompanyName,
		JobTitle:      p.JobTitle,
		InterviewType: p.InterviewType,
		State:         models.SessionNotStarted,
		Rounds:        p.Rounds,
		RoundResults:  []models.RoundResult{},
		Company:       p.Company,
		CreatedAt:     o.now().UTC(),
	}
	s = s.Clone()

	for i := range s.Rounds {
		if len(s.Rounds[i].Questions) == 0 {
			return models.Session{}, fmt.Errorf("round %s: %w", s.Rounds[i].ID, ErrEmptyRound)
		}
		s.Rounds[i].Status = models.RoundPending
		s.Rounds[i].Score = nil
	}
	return s, nil
}

// Start moves a session from not started to active with round 0 in progress.
func (o *Orchestrator) Start(s models.Session) (models.Session, error) {
	switch s.State {
	case models.SessionFinished:
		return s, ErrSessionFinished
	case models.SessionActive:
		return s, fmt.Errorf("session already started: %w", ErrIllegalTransition)
	}
	if len(s.Rounds) == 0 {
		return s, ErrEmptyRound
	}

	out := s.Clone()
	started := o.now().UTC()
	out.State = models.SessionActive
	out.StartedAt = &started
	out.CurrentRoundIndex = 0
	out.ActiveRoundIndex = 0
	out.Rounds[0].Status = models.RoundInProgress
	return out, nil
}

// FinalReport rebuilds the report of a finished session. The result only
// depends on the session, so repeated calls return identical reports.
func (o *Orchestrator) FinalReport(s models.Session) (models.FinalReport, error) {
	if s.State != models.SessionFinished {
		return models.FinalReport{}, ErrSessionNotFinished
	}
	return o.aggregator.Build(s), nil
}
