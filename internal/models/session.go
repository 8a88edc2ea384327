package models

import "time"

type RoundType string

const (
	RoundTechnical   RoundType = "technical"
	RoundBehavioral  RoundType = "behavioral"
	RoundDSA         RoundType = "dsa"
	RoundAptitude    RoundType = "aptitude"
	RoundCulturalFit RoundType = "cultural-fit"
)

type RoundStatus string

const (
	RoundPending    RoundStatus = "pending"
	RoundInProgress RoundStatus = "in-progress"
	RoundCompleted  RoundStatus = "completed"
)

type SessionState string

const (
	SessionNotStarted SessionState = "not_started"
	SessionActive     SessionState = "active"
	SessionFinished   SessionState = "finished"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Question is one prompt inside a round. DSA and aptitude rounds reuse the
// same shape; Category carries the problem or topic tag.
type Question struct {
	ID         string  `json:"id" yaml:"id"`
	Text       string  `json:"text" yaml:"text"`
	PointValue float64 `json:"pointValue" yaml:"point_value"`
	Category   string  `json:"category,omitempty" yaml:"category"`
	Difficulty string  `json:"difficulty,omitempty" yaml:"difficulty"`
}

type Round struct {
	ID              string      `json:"id"`
	Type            RoundType   `json:"type"`
	Status          RoundStatus `json:"status"`
	Questions       []Question  `json:"questions"`
	DurationMinutes int         `json:"durationMinutes"`
	Score           *float64    `json:"score,omitempty"`
}

// TotalPoints is the maximum raw score the round can produce.
func (r Round) TotalPoints() float64 {
	total := 0.0
	for _, q := range r.Questions {
		total += q.PointValue
	}
	return total
}

// Alert is a proctoring signal pushed by the monitoring client.
type Alert struct {
	Type       string    `json:"type"`
	Severity   Severity  `json:"severity"`
	Timestamp  time.Time `json:"timestamp"`
	RoundIndex int       `json:"roundIndex"`
}

// SameEvent reports whether two alerts describe the same monitoring event.
func (a Alert) SameEvent(other Alert) bool {
	return a.Type == other.Type && a.Severity == other.Severity && a.Timestamp.Equal(other.Timestamp)
}

type RoundResult struct {
	RoundID           string    `json:"roundId"`
	RoundIndex        int       `json:"roundIndex"`
	RoundType         RoundType `json:"roundType"`
	Answers           []string  `json:"answers"`
	TimeSpentSeconds  int       `json:"timeSpentSeconds"`
	QuestionScores    []float64 `json:"questionScores"`
	RawScore          float64   `json:"rawScore"`
	CompanyMultiplier float64   `json:"companyMultiplier"`
	TimePenalty       float64   `json:"timePenalty"`
	ProctoringPenalty float64   `json:"proctoringPenalty"`
	FinalScore        float64   `json:"finalScore"`
	Feedback          string    `json:"feedback"`
	Strengths         []string  `json:"strengths"`
	Improvements      []string  `json:"improvements"`
	CompletedAt       time.Time `json:"completedAt"`
}

// Session is one user's attempt at a multi-round interview.
//
// CurrentRoundIndex is the furthest round reached and never decreases.
// ActiveRoundIndex is the round being worked, which can be lower after the
// candidate navigates back to review an earlier round.
type Session struct {
	ID                    string        `json:"id"`
	InterviewID           string        `json:"interviewId"`
	UserID                string        `json:"userId"`
	CompanyName           string        `json:"companyName"`
	JobTitle              string        `json:"jobTitle"`
	InterviewType         string        `json:"interviewType"`
	State                 SessionState  `json:"state"`
	Rounds                []Round       `json:"rounds"`
	CurrentRoundIndex     int           `json:"currentRoundIndex"`
	ActiveRoundIndex      int           `json:"activeRoundIndex"`
	RoundResults          []RoundResult `json:"roundResults"`
	TotalTimeSpentSeconds int           `json:"totalTimeSpentSeconds"`
	ProctoringAlerts      []Alert       `json:"proctoringAlerts"`
	RoundAlerts           []Alert       `json:"roundAlerts"`
	Company               *CompanyIntel `json:"company,omitempty"`
	CreatedAt             time.Time     `json:"createdAt"`
	StartedAt             *time.Time    `json:"startedAt,omitempty"`
	EndedAt               *time.Time    `json:"endedAt,omitempty"`
}

func (s Session) IsFinished() bool {
	return s.State == SessionFinished
}

// ResultFor returns the result recorded for roundID, if any.
func (s Session) ResultFor(roundID string) (RoundResult, bool) {
	for _, res := range s.RoundResults {
		if res.RoundID == roundID {
			return res, true
		}
	}
	return RoundResult{}, false
}

// Clone returns a deep copy that shares no slices or pointers with s.
func (s Session) Clone() Session {
	out := s

	if s.Rounds != nil {
		out.Rounds = make([]Round, len(s.Rounds))
		for i, r := range s.Rounds {
			out.Rounds[i] = r.clone()
		}
	}
	if s.RoundResults != nil {
		out.RoundResults = make([]RoundResult, len(s.RoundResults))
		for i, res := range s.RoundResults {
			out.RoundResults[i] = res.clone()
		}
	}
	out.ProctoringAlerts = cloneSlice(s.ProctoringAlerts)
	out.RoundAlerts = cloneSlice(s.RoundAlerts)
	if s.Company != nil {
		c := s.Company.Clone()
		out.Company = &c
	}
	out.StartedAt = cloneTime(s.StartedAt)
	out.EndedAt = cloneTime(s.EndedAt)
	return out
}

func (r Round) clone() Round {
	out := r
	out.Questions = cloneSlice(r.Questions)
	if r.Score != nil {
		score := *r.Score
		out.Score = &score
	}
	return out
}

func (res RoundResult) clone() RoundResult {
	out := res
	out.Answers = cloneSlice(res.Answers)
	out.QuestionScores = cloneSlice(res.QuestionScores)
	out.Strengths = cloneSlice(res.Strengths)
	out.Improvements = cloneSlice(res.Improvements)
	return out
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
