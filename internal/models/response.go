package models

// uniform error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// simple acknowledgement payload
type Resp struct {
	OK   bool   `json:"ok"`
	Info string `json:"info,omitempty"`
}

type CanSwitchResponse struct {
	SessionID   string `json:"sessionId"`
	TargetIndex int    `json:"targetIndex"`
	Allowed     bool   `json:"allowed"`
}

type CompleteRoundResponse struct {
	Session Session      `json:"session"`
	Result  RoundResult  `json:"result"`
	Report  *FinalReport `json:"report,omitempty"`
}

// UserStats is the per-user rollup kept in redis.
type UserStats struct {
	UserID            string    `json:"userId"`
	SessionsCompleted int       `json:"sessionsCompleted"`
	TotalScore        float64   `json:"totalScore"`
	AverageScore      float64   `json:"averageScore"`
	BestScore         float64   `json:"bestScore"`
	LastScore         float64   `json:"lastScore"`
	LastRiskLevel     RiskLevel `json:"lastRiskLevel,omitempty"`
}
