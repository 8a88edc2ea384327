package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Nitingarg01/Major-project-sub001/internal/middleware"
	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

type HistoryLister interface {
	ListByUser(ctx context.Context, userID string, limit int) ([]models.SessionRecord, error)
}

type StatsReader interface {
	GetUserStats(ctx context.Context, userID string) (*models.UserStats, error)
}

// UserHandler serves per-user history and stats. Either backend may be nil
// when the deployment runs without a database or redis.
type UserHandler struct {
	history HistoryLister
	stats   StatsReader
	logger  *zap.Logger
}

func NewUserHandler(history HistoryLister, stats StatsReader, logger *zap.Logger) *UserHandler {
	return &UserHandler{history: history, stats: stats, logger: logger}
}

// GetHistory handles GET /api/v1/users/{userId}/sessions?limit=N
func (h *UserHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		unavailable(w, "session history")
		return
	}
	userID, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			utils.JSON(w, http.StatusBadRequest, models.ErrorResponse{
				Code:    "invalid_limit",
				Message: "limit must be a positive integer",
			})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.history.ListByUser(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to list sessions", zap.String("user_id", userID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "failed to list sessions",
		})
		return
	}
	utils.JSON(w, http.StatusOK, records)
}

// GetStats handles GET /api/v1/users/{userId}/stats
func (h *UserHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		unavailable(w, "user stats")
		return
	}
	userID, ok := h.resolveUser(w, r)
	if !ok {
		return
	}

	stats, err := h.stats.GetUserStats(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to read user stats", zap.String("user_id", userID), zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "internal_error",
			Message: "failed to read user stats",
		})
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

// resolveUser rejects an authenticated caller asking for another user's data.
func (h *UserHandler) resolveUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := chi.URLParam(r, "userId")
	if caller := middleware.UserIDFromContext(r.Context()); caller != "" && caller != userID {
		utils.JSON(w, http.StatusForbidden, models.ErrorResponse{
			Code:    "forbidden",
			Message: "cannot read another user's data",
		})
		return "", false
	}
	return userID, true
}

func unavailable(w http.ResponseWriter, what string) {
	utils.JSON(w, http.StatusServiceUnavailable, models.ErrorResponse{
		Code:    "unavailable",
		Message: what + " is not configured",
	})
}
