package orchestrator

import (
	"errors"

	"github.com/Nitingarg01/Major-project-sub001/internal/scoring"
)

var (
	// ErrIllegalTransition means the requested round is not reachable from
	// the session's current position. Callers re-check CanSwitchTo.
	ErrIllegalTransition = errors.New("illegal round transition")
	// ErrInvalidRoundIndex means the round is not in progress, typically a
	// double submit or a stale client.
	ErrInvalidRoundIndex = errors.New("round is not in progress")
	// ErrEmptyRound is fatal for the session.
	ErrEmptyRound = scoring.ErrEmptyRound

	ErrSessionNotStarted  = errors.New("session has not started")
	ErrSessionFinished    = errors.New("session is finished")
	ErrSessionNotFinished = errors.New("session is not finished")
	ErrInvalidAlert       = errors.New("invalid alert")
)
