package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/orchestrator"
	"github.com/Nitingarg01/Major-project-sub001/internal/sessions"
	"github.com/Nitingarg01/Major-project-sub001/internal/utils"
)

type Outcome struct {
	Session models.Session       `json:"session"`
	Results []models.RoundResult `json:"results"`
	Report  *models.FinalReport  `json:"report,omitempty"`
}

// Runner replays scripts. Alerts are stamped on a simulated clock that
// starts at the run and ticks one second per alert, so repeated alerts in a
// script stay distinct events.
type Runner struct {
	manager *sessions.Manager
	now     func() time.Time
	clock   time.Time
}

func NewRunner(manager *sessions.Manager) *Runner {
	return &Runner{manager: manager, now: time.Now}
}

// Run starts a session and applies the steps in order. The first failing
// step aborts the run; its error names the step.
func (r *Runner) Run(ctx context.Context, script Script) (Outcome, error) {
	if err := script.Validate(); err != nil {
		return Outcome{}, err
	}

	s, err := r.manager.Start(ctx, sessions.StartParams{
		UserID:        script.UserID,
		InterviewID:   script.InterviewID,
		CompanyName:   script.Company,
		JobTitle:      script.JobTitle,
		InterviewType: script.InterviewType,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to start session: %w", err)
	}

	r.clock = r.now().UTC()
	out := Outcome{Session: s, Results: []models.RoundResult{}}
	for i, st := range script.Steps {
		if err := r.apply(ctx, &out, st); err != nil {
			return out, fmt.Errorf("step %d (%s): %w", i+1, st.Action, err)
		}
	}
	return out, nil
}

func (r *Runner) apply(ctx context.Context, out *Outcome, st Step) error {
	id := out.Session.ID

	switch st.Action {
	case ActionSwitch:
		s, err := r.manager.SwitchTo(ctx, id, *st.Round)
		if err != nil {
			return err
		}
		out.Session = s

	case ActionAlert:
		s, err := r.manager.RecordAlert(ctx, id, r.alert(*st.Alert))
		if err != nil {
			return err
		}
		out.Session = s

	case ActionComplete:
		index := out.Session.ActiveRoundIndex
		if st.Round != nil {
			index = *st.Round
		}
		alerts := make([]models.Alert, 0, len(st.Alerts))
		for _, a := range st.Alerts {
			alerts = append(alerts, r.alert(a))
		}

		c, err := r.manager.CompleteRound(ctx, id, orchestrator.Submission{
			RoundIndex:       index,
			Answers:          st.Answers,
			TimeSpentSeconds: st.TimeSpentSeconds,
			Alerts:           alerts,
		})
		if err != nil {
			return err
		}
		out.Session = c.Session
		out.Results = append(out.Results, c.Result)
		if c.Report != nil {
			out.Report = c.Report
		}
	}
	return nil
}

func (r *Runner) alert(a AlertSpec) models.Alert {
	r.clock = r.clock.Add(time.Second)
	return models.Alert{
		Type:      a.Type,
		Severity:  models.Severity(utils.NormalizeSeverity(a.Severity)),
		Timestamp: r.clock,
	}
}
