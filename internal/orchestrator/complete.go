package orchestrator

import (
	"fmt"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/policy"
	"github.com/Nitingarg01/Major-project-sub001/internal/scoring"
)

// Submission is what the client sends when a round ends, either on demand
// or when an external timer fires.
type Submission struct {
	RoundIndex       int
	Answers          []string
	TimeSpentSeconds int
	Alerts           []models.Alert
}

// Completion is the outcome of CompleteRound. Report is set only when the
// completion finished the session.
type Completion struct {
	Session models.Session
	Result  models.RoundResult
	Report  *models.FinalReport
}

// CompleteRound scores the in-progress round, records its result and moves
// the session on. Completing the last outstanding round finishes the
// session and builds the final report before returning.
func (o *Orchestrator) CompleteRound(s models.Session, sub Submission) (Completion, error) {
	if err := requireActive(s); err != nil {
		return Completion{Session: s}, err
	}
	idx := sub.RoundIndex
	if idx < 0 || idx >= len(s.Rounds) || s.Rounds[idx].Status != models.RoundInProgress {
		return Completion{Session: s}, fmt.Errorf("round %d: %w", idx, ErrInvalidRoundIndex)
	}

	out := s.Clone()
	round := out.Rounds[idx]

	submitted := make([]models.Alert, 0, len(sub.Alerts))
	for _, a := range sub.Alerts {
		a.RoundIndex = idx
		submitted = append(submitted, a)
	}
	roundAlerts := mergeAlerts(out.RoundAlerts, submitted)

	raw, err := scoring.ScoreRound(round, sub.Answers, out.Company)
	if err != nil {
		return Completion{Session: s}, fmt.Errorf("round %s: %w", round.ID, err)
	}

	timeSpent := sub.TimeSpentSeconds
	if timeSpent < 0 {
		timeSpent = 0
	}

	adj := policy.Adjust(policy.Input{
		RawScore:         raw.RawScore,
		RoundType:        round.Type,
		Company:          out.Company,
		TimeSpentSeconds: timeSpent,
		DurationMinutes:  round.DurationMinutes,
		Alerts:           roundAlerts,
	})
	fb := o.feedback.Compose(policy.FeedbackInput{
		Round:          round,
		QuestionScores: raw.QuestionScores,
		FinalScore:     adj.FinalScore,
		Company:        out.Company,
	})

	result := models.RoundResult{
		RoundID:           round.ID,
		RoundIndex:        idx,
		RoundType:         round.Type,
		Answers:           alignAnswers(sub.Answers, len(round.Questions)),
		TimeSpentSeconds:  timeSpent,
		QuestionScores:    raw.QuestionScores,
		RawScore:          raw.RawScore,
		CompanyMultiplier: adj.CompanyMultiplier,
		TimePenalty:       adj.TimePenalty,
		ProctoringPenalty: adj.ProctoringPenalty,
		FinalScore:        adj.FinalScore,
		Feedback:          fb.Text,
		Strengths:         fb.Strengths,
		Improvements:      fb.Improvements,
		CompletedAt:       o.now().UTC(),
	}

	out.RoundResults = upsertResult(out.RoundResults, result)
	score := result.FinalScore
	out.Rounds[idx].Status = models.RoundCompleted
	out.Rounds[idx].Score = &score
	out.TotalTimeSpentSeconds += timeSpent
	out.ProctoringAlerts = mergeAlerts(out.ProctoringAlerts, submitted)

	next := idx + 1
	if idx == out.CurrentRoundIndex {
		out.CurrentRoundIndex = next
	} else {
		// a reviewed round was re-completed; resume at the furthest round
		next = out.CurrentRoundIndex
	}

	if out.CurrentRoundIndex == len(out.Rounds) {
		ended := o.now().UTC()
		out.State = models.SessionFinished
		out.ActiveRoundIndex = len(out.Rounds)
		out.RoundAlerts = nil
		out.EndedAt = &ended

		final := o.aggregator.Build(out)
		return Completion{Session: out, Result: result, Report: &final}, nil
	}

	switchTo(&out, next)
	return Completion{Session: out, Result: result}, nil
}

// upsertResult replaces the result for the same round in place or appends.
func upsertResult(results []models.RoundResult, result models.RoundResult) []models.RoundResult {
	for i := range results {
		if results[i].RoundID == result.RoundID {
			results[i] = result
			return results
		}
	}
	return append(results, result)
}

// mergeAlerts appends the alerts in extra that base does not already hold.
// Each alert in base absorbs at most one submitted copy, and submitted
// alerts are never compared with each other, so repeated events in one
// batch all count.
func mergeAlerts(base, extra []models.Alert) []models.Alert {
	out := append([]models.Alert(nil), base...)
	matched := make([]bool, len(base))
	for _, a := range extra {
		dup := false
		for i, existing := range base {
			if !matched[i] && existing.SameEvent(a) {
				matched[i] = true
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, a)
		}
	}
	return out
}

func alignAnswers(answers []string, n int) []string {
	out := make([]string, n)
	copy(out, answers)
	return out
}
