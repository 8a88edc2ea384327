package orchestrator

import (
	"fmt"
	"math"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
)

// CanSwitchTo reports whether target is reachable: any round up to the
// furthest one reached, or exactly one further once the furthest round has
// been entered.
func CanSwitchTo(s models.Session, target int) bool {
	if s.State != models.SessionActive || target < 0 || target >= len(s.Rounds) {
		return false
	}
	if target <= s.CurrentRoundIndex {
		return true
	}
	if target != s.CurrentRoundIndex+1 {
		return false
	}
	status := s.Rounds[s.CurrentRoundIndex].Status
	return status == models.RoundInProgress || status == models.RoundCompleted
}

// SwitchTo moves the active round to target. Rounds left in progress are
// closed, the target is (re)opened, and the round alert buffer is reset.
func SwitchTo(s models.Session, target int) (models.Session, error) {
	if err := requireActive(s); err != nil {
		return s, err
	}
	if !CanSwitchTo(s, target) {
		return s, fmt.Errorf("round %d from furthest round %d: %w", target, s.CurrentRoundIndex, ErrIllegalTransition)
	}

	out := s.Clone()
	switchTo(&out, target)
	return out, nil
}

// switchTo assumes the transition was already validated.
func switchTo(s *models.Session, target int) {
	from := s.ActiveRoundIndex
	if from < len(s.Rounds) && s.Rounds[from].Status == models.RoundInProgress {
		s.Rounds[from].Status = models.RoundCompleted
	}
	for i := from + 1; i < target; i++ {
		if s.Rounds[i].Status == models.RoundInProgress {
			s.Rounds[i].Status = models.RoundCompleted
		}
	}

	s.Rounds[target].Status = models.RoundInProgress
	s.ActiveRoundIndex = target
	if target > s.CurrentRoundIndex {
		s.CurrentRoundIndex = target
	}
	s.RoundAlerts = nil
}

// RecordAlert appends a proctoring alert to the session history and to the
// active round's buffer.
func RecordAlert(s models.Session, alert models.Alert) (models.Session, error) {
	if err := requireActive(s); err != nil {
		return s, err
	}
	if alert.Type == "" || !models.ValidSeverities[alert.Severity] {
		return s, fmt.Errorf("type %q severity %q: %w", alert.Type, alert.Severity, ErrInvalidAlert)
	}

	out := s.Clone()
	alert.RoundIndex = out.ActiveRoundIndex
	out.ProctoringAlerts = append(out.ProctoringAlerts, alert)
	out.RoundAlerts = append(out.RoundAlerts, alert)
	return out, nil
}

// Progress summarizes completion and the time budget still ahead.
func Progress(s models.Session) models.Progress {
	p := models.Progress{
		SessionID:         s.ID,
		State:             s.State,
		CurrentRoundIndex: s.CurrentRoundIndex,
		ActiveRoundIndex:  s.ActiveRoundIndex,
		TotalRounds:       len(s.Rounds),
	}

	for _, r := range s.Rounds {
		if r.Status == models.RoundCompleted {
			p.CompletedRounds++
			continue
		}
		p.EstimatedRemainingSeconds += r.DurationMinutes * 60
	}
	if p.TotalRounds > 0 {
		p.Percentage = math.Round(float64(p.CompletedRounds)/float64(p.TotalRounds)*10000) / 100
	}
	return p
}

func requireActive(s models.Session) error {
	switch s.State {
	case models.SessionNotStarted:
		return ErrSessionNotStarted
	case models.SessionFinished:
		return ErrSessionFinished
	}
	return nil
}
