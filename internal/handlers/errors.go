package handlers

import (
	"errors"
	"net/http"

	"github.com/Nitingarg01/Major-project-sub001/internal/catalog"
	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/orchestrator"
	"github.com/Nitingarg01/Major-project-sub001/internal/sessions"
	"github.com/Nitingarg01/Major-project-sub001/internal/utils"

	"go.uber.org/zap"
)

// errNotOwner rejects an authenticated caller acting on someone else's session.
var errNotOwner = errors.New("session belongs to another user")

type errorMapping struct {
	target error
	status int
	code   string
}

var sessionErrors = []errorMapping{
	{sessions.ErrSessionNotFound, http.StatusNotFound, "not_found"},
	{orchestrator.ErrIllegalTransition, http.StatusConflict, "illegal_transition"},
	{orchestrator.ErrInvalidRoundIndex, http.StatusConflict, "invalid_round_index"},
	{orchestrator.ErrSessionFinished, http.StatusConflict, "session_finished"},
	{orchestrator.ErrSessionNotFinished, http.StatusConflict, "session_not_finished"},
	{orchestrator.ErrSessionNotStarted, http.StatusConflict, "session_not_started"},
	{orchestrator.ErrEmptyRound, http.StatusUnprocessableEntity, "empty_round"},
	{orchestrator.ErrInvalidAlert, http.StatusBadRequest, "invalid_alert"},
	{catalog.ErrUnknownInterviewType, http.StatusBadRequest, "invalid_interview_type"},
	{errNotOwner, http.StatusForbidden, "forbidden"},
}

// writeSessionError maps manager and state machine errors onto HTTP
// responses. Anything unrecognised is logged and reported as a 500.
func writeSessionError(w http.ResponseWriter, logger *zap.Logger, err error) {
	for _, m := range sessionErrors {
		if errors.Is(err, m.target) {
			utils.JSON(w, m.status, models.ErrorResponse{Code: m.code, Message: err.Error()})
			return
		}
	}

	logger.Error("request failed", zap.Error(err))
	utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
		Code:    "internal_error",
		Message: "internal server error",
	})
}
