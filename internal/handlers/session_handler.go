package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/middleware"
	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/orchestrator"
	"github.com/Nitingarg01/Major-project-sub001/internal/sessions"
	"github.com/Nitingarg01/Major-project-sub001/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SessionHandler struct {
	manager *sessions.Manager
	logger  *zap.Logger
	now     func() time.Time
}

func NewSessionHandler(manager *sessions.Manager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		logger:  logger,
		now:     time.Now,
	}
}

// StartSession handles POST /api/v1/sessions
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.StartSessionRequest](r)

	// an authenticated caller always starts sessions for themselves
	if userID := middleware.UserIDFromContext(r.Context()); userID != "" {
		req.UserID = userID
	}

	s, err := h.manager.Start(r.Context(), sessions.StartParams{
		UserID:        req.UserID,
		InterviewID:   req.InterviewID,
		CompanyName:   req.CompanyName,
		JobTitle:      req.JobTitle,
		InterviewType: req.InterviewType,
	})
	if err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusCreated, s)
}

// GetSession handles GET /api/v1/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.ownedSession(r)
	if err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, s)
}

// GetProgress handles GET /api/v1/sessions/{id}/progress
func (h *SessionHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ownedSession(r); err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	p, err := h.manager.Progress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

// CanSwitch handles GET /api/v1/sessions/{id}/rounds/{index}/can-switch
func (h *SessionHandler) CanSwitch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	index, ok := roundIndexParam(w, r)
	if !ok {
		return
	}

	if _, err := h.ownedSession(r); err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	allowed, err := h.manager.CanSwitchTo(r.Context(), id, index)
	if err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.CanSwitchResponse{SessionID: id, TargetIndex: index, Allowed: allowed})
}

// SwitchRound handles POST /api/v1/sessions/{id}/switch
func (h *SessionHandler) SwitchRound(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.SwitchRoundRequest](r)

	if _, err := h.ownedSession(r); err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	s, err := h.manager.SwitchTo(r.Context(), chi.URLParam(r, "id"), *req.TargetIndex)
	if err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, s)
}

// CompleteRound handles POST /api/v1/sessions/{id}/rounds/{index}/complete
func (h *SessionHandler) CompleteRound(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.CompleteRoundRequest](r)
	index, ok := roundIndexParam(w, r)
	if !ok {
		return
	}

	if _, err := h.ownedSession(r); err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	c, err := h.manager.CompleteRound(r.Context(), chi.URLParam(r, "id"), orchestrator.Submission{
		RoundIndex:       index,
		Answers:          req.Answers,
		TimeSpentSeconds: req.TimeSpentSeconds,
		Alerts:           models.ToAlerts(req.Alerts, h.now()),
	})
	if err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, models.CompleteRoundResponse{Session: c.Session, Result: c.Result, Report: c.Report})
}

// RecordAlert handles POST /api/v1/sessions/{id}/alerts
func (h *SessionHandler) RecordAlert(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.AlertRequest](r)

	if _, err := h.ownedSession(r); err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	s, err := h.manager.RecordAlert(r.Context(), chi.URLParam(r, "id"), req.ToAlert(h.now()))
	if err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusAccepted, s)
}

// GetReport handles GET /api/v1/sessions/{id}/report
func (h *SessionHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	if _, err := h.ownedSession(r); err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	report, err := h.manager.Report(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

// ownedSession loads the session named in the route and rejects an
// authenticated caller who does not own it. Unauthenticated requests are
// only possible when auth is disabled.
func (h *SessionHandler) ownedSession(r *http.Request) (models.Session, error) {
	s, err := h.manager.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return models.Session{}, err
	}
	if caller := middleware.UserIDFromContext(r.Context()); caller != "" && caller != s.UserID {
		return models.Session{}, fmt.Errorf("session %s: %w", s.ID, errNotOwner)
	}
	return s, nil
}

func roundIndexParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
			Code:    "invalid_round_index",
			Message: "round index must be an integer",
		})
		return 0, false
	}
	return index, true
}
