package sessions

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/catalog"
	"github.com/Nitingarg01/Major-project-sub001/internal/company"
	"github.com/Nitingarg01/Major-project-sub001/internal/metrics"
	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/orchestrator"
	"github.com/Nitingarg01/Major-project-sub001/internal/utils"

	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// Store persists session snapshots. LoadSession reports ok=false for
// unknown ids.
type Store interface {
	SaveSession(ctx context.Context, s models.Session, report *models.FinalReport) error
	LoadSession(ctx context.Context, id string) (models.Session, bool, error)
}

// FinishedRecorder is told about every session that reaches Finished.
type FinishedRecorder interface {
	RecordFinished(ctx context.Context, s models.Session, report models.FinalReport) error
}

type StartParams struct {
	UserID        string
	InterviewID   string
	CompanyName   string
	JobTitle      string
	InterviewType string
}

// Manager owns the live sessions of this process. Each session has a single
// writer; readers see immutable snapshots.
type Manager struct {
	orch      *orchestrator.Orchestrator
	builder   *catalog.Builder
	companies company.Source
	store     Store
	finished  FinishedRecorder
	logger    *zap.Logger
	now       func() time.Time

	mu      sync.RWMutex
	entries map[string]*entry
}

type Option func(*Manager)

func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

func WithFinishedRecorder(rec FinishedRecorder) Option {
	return func(m *Manager) { m.finished = rec }
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithClock sets the clock used for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(orch *orchestrator.Orchestrator, builder *catalog.Builder, companies company.Source, opts ...Option) *Manager {
	m := &Manager{
		orch:      orch,
		builder:   builder,
		companies: companies,
		logger:    zap.NewNop(),
		now:       time.Now,
		entries:   make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start builds the round catalog for the target company and role, creates
// the session and activates its first round.
func (m *Manager) Start(ctx context.Context, p StartParams) (models.Session, error) {
	p.InterviewType = utils.NormalizeInterviewType(p.InterviewType)
	if p.InterviewType == "" {
		p.InterviewType = models.InterviewTypeMixed
	}
	intel := m.lookupCompany(ctx, p.CompanyName)

	rounds, err := m.builder.Build(ctx, catalog.Request{
		CompanyName:   p.CompanyName,
		JobTitle:      p.JobTitle,
		InterviewType: p.InterviewType,
		Company:       intel,
	})
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to build rounds: %w", err)
	}

	s, err := m.orch.NewSession(orchestrator.SessionParams{
		InterviewID:   p.InterviewID,
		UserID:        p.UserID,
		CompanyName:   p.CompanyName,
		JobTitle:      p.JobTitle,
		InterviewType: p.InterviewType,
		Rounds:        rounds,
		Company:       intel,
	})
	if err != nil {
		return models.Session{}, err
	}
	if s, err = m.orch.Start(s); err != nil {
		return models.Session{}, err
	}

	e := newEntry(s, m.now())
	m.mu.Lock()
	m.entries[s.ID] = e
	m.mu.Unlock()

	metrics.SessionsStarted.WithLabelValues(p.InterviewType).Inc()
	metrics.ActiveSessions.Inc()
	m.persist(ctx, s, nil)
	e.publish(Event{Type: EventSessionStarted, Session: s.Clone()})

	m.logger.Info("session started",
		zap.String("session_id", s.ID),
		zap.String("user_id", s.UserID),
		zap.String("company", s.CompanyName),
		zap.Int("rounds", len(s.Rounds)),
		zap.Bool("company_known", intel != nil))
	return s.Clone(), nil
}

// lookupCompany never fails the caller: an unavailable source means the
// company is treated as unknown.
func (m *Manager) lookupCompany(ctx context.Context, name string) *models.CompanyIntel {
	if m.companies == nil {
		return nil
	}
	intel, err := m.companies.Lookup(ctx, name)
	if err != nil {
		m.logger.Warn("company lookup failed, continuing without intel",
			zap.String("company", name), zap.Error(err))
		return nil
	}
	return intel
}

func (m *Manager) Get(ctx context.Context, id string) (models.Session, error) {
	e, err := m.entry(ctx, id)
	if err != nil {
		return models.Session{}, err
	}
	return e.snapshot(m.now()).Clone(), nil
}

func (m *Manager) CanSwitchTo(ctx context.Context, id string, target int) (bool, error) {
	e, err := m.entry(ctx, id)
	if err != nil {
		return false, err
	}
	return orchestrator.CanSwitchTo(*e.snapshot(m.now()), target), nil
}

func (m *Manager) SwitchTo(ctx context.Context, id string, target int) (models.Session, error) {
	s, err := m.mutate(ctx, id, func(s models.Session) (models.Session, *Event, error) {
		next, err := orchestrator.SwitchTo(s, target)
		if err != nil {
			return s, nil, err
		}
		return next, &Event{Type: EventRoundSwitched}, nil
	})
	if errors.Is(err, orchestrator.ErrIllegalTransition) {
		metrics.RejectedTransitions.WithLabelValues("switch").Inc()
	}
	return s, err
}

func (m *Manager) CompleteRound(ctx context.Context, id string, sub orchestrator.Submission) (orchestrator.Completion, error) {
	var completion orchestrator.Completion
	_, err := m.mutate(ctx, id, func(s models.Session) (models.Session, *Event, error) {
		c, err := m.orch.CompleteRound(s, sub)
		if err != nil {
			return s, nil, err
		}
		completion = c
		result := c.Result

		ev := &Event{Type: EventRoundCompleted, Result: &result}
		if c.Report != nil {
			ev.Type = EventSessionFinished
			ev.Report = c.Report
		}
		return c.Session, ev, nil
	})
	if err != nil {
		if errors.Is(err, orchestrator.ErrInvalidRoundIndex) {
			metrics.RejectedTransitions.WithLabelValues("complete").Inc()
		}
		return orchestrator.Completion{}, err
	}

	metrics.RoundsCompleted.WithLabelValues(string(completion.Result.RoundType)).Inc()
	metrics.RoundScores.WithLabelValues(string(completion.Result.RoundType)).Observe(completion.Result.FinalScore)
	if completion.Report != nil {
		m.onFinished(ctx, completion.Session, *completion.Report)
	}

	completion.Session = completion.Session.Clone()
	return completion, nil
}

func (m *Manager) RecordAlert(ctx context.Context, id string, alert models.Alert) (models.Session, error) {
	s, err := m.mutate(ctx, id, func(s models.Session) (models.Session, *Event, error) {
		next, err := orchestrator.RecordAlert(s, alert)
		if err != nil {
			return s, nil, err
		}
		recorded := next.ProctoringAlerts[len(next.ProctoringAlerts)-1]
		return next, &Event{Type: EventAlertRecorded, Alert: &recorded}, nil
	})
	if err == nil {
		metrics.ProctoringAlerts.WithLabelValues(string(alert.Severity)).Inc()
	}
	return s, err
}

func (m *Manager) Report(ctx context.Context, id string) (models.FinalReport, error) {
	s, err := m.Get(ctx, id)
	if err != nil {
		return models.FinalReport{}, err
	}
	return m.orch.FinalReport(s)
}

func (m *Manager) Progress(ctx context.Context, id string) (models.Progress, error) {
	e, err := m.entry(ctx, id)
	if err != nil {
		return models.Progress{}, err
	}
	return orchestrator.Progress(*e.snapshot(m.now())), nil
}

// Subscribe streams events for one session. The returned cancel func must
// be called to release the subscription; it is safe to call twice.
func (m *Manager) Subscribe(ctx context.Context, id string) (<-chan Event, func(), error) {
	e, err := m.entry(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := e.subscribe()
	return ch, cancel, nil
}

// EvictIdle drops sessions untouched for longer than ttl that have no live
// subscribers. Evicted sessions can be rehydrated from the store.
func (m *Manager) EvictIdle(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl).UnixNano()

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, e := range m.entries {
		if e.lastAccess.Load() > cutoff || e.subscriberCount() > 0 {
			continue
		}
		delete(m.entries, id)
		evicted++
	}

	if evicted > 0 {
		metrics.ActiveSessions.Sub(float64(evicted))
		metrics.SessionsEvicted.Add(float64(evicted))
		m.logger.Info("evicted idle sessions", zap.Int("count", evicted), zap.Duration("ttl", ttl))
	}
	return evicted
}

// Len is the number of sessions held in memory.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// mutate runs fn under the session's writer lock and publishes the result.
func (m *Manager) mutate(ctx context.Context, id string, fn func(models.Session) (models.Session, *Event, error)) (models.Session, error) {
	e, err := m.entry(ctx, id)
	if err != nil {
		return models.Session{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	current := e.snapshot(m.now())
	next, ev, err := fn(*current)
	if err != nil {
		return current.Clone(), err
	}

	e.store(next)
	var report *models.FinalReport
	if ev != nil {
		report = ev.Report
	}
	m.persist(ctx, next, report)

	if ev != nil {
		ev.Session = next.Clone()
		e.publish(*ev)
	}
	return next.Clone(), nil
}

func (m *Manager) entry(ctx context.Context, id string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if ok {
		return e, nil
	}
	return m.rehydrate(ctx, id)
}

func (m *Manager) rehydrate(ctx context.Context, id string) (*entry, error) {
	if m.store == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}

	s, ok, err := m.store.LoadSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to rehydrate session: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	e := newEntry(s, m.now())
	m.entries[id] = e
	metrics.ActiveSessions.Inc()
	m.logger.Debug("session rehydrated", zap.String("session_id", id))
	return e, nil
}

func (m *Manager) persist(ctx context.Context, s models.Session, report *models.FinalReport) {
	if m.store == nil {
		return
	}
	if err := m.store.SaveSession(ctx, s, report); err != nil {
		m.logger.Error("failed to persist session", zap.String("session_id", s.ID), zap.Error(err))
	}
}

func (m *Manager) onFinished(ctx context.Context, s models.Session, report models.FinalReport) {
	metrics.SessionsFinished.WithLabelValues(string(report.RiskLevel)).Inc()
	m.logger.Info("session finished",
		zap.String("session_id", s.ID),
		zap.Float64("overall_score", report.OverallScore),
		zap.String("risk_level", string(report.RiskLevel)))

	if m.finished == nil {
		return
	}
	if err := m.finished.RecordFinished(ctx, s, report); err != nil {
		m.logger.Warn("failed to record finished session", zap.String("session_id", s.ID), zap.Error(err))
	}
}

type entry struct {
	mu         sync.Mutex
	current    atomic.Pointer[models.Session]
	lastAccess atomic.Int64

	subsMu  sync.Mutex
	subs    map[int]chan Event
	nextSub int
}

func newEntry(s models.Session, now time.Time) *entry {
	e := &entry{subs: make(map[int]chan Event)}
	e.store(s)
	e.lastAccess.Store(now.UnixNano())
	return e
}

// snapshot returns the published session. Callers must not modify it.
func (e *entry) snapshot(now time.Time) *models.Session {
	e.lastAccess.Store(now.UnixNano())
	return e.current.Load()
}

func (e *entry) store(s models.Session) {
	snap := s.Clone()
	e.current.Store(&snap)
}
