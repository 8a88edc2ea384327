package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// UserStatsPrefix keys the per-user stats hash.
	UserStatsPrefix = "user_stats:"
	// FinishedChannel carries one InterviewFinishedEvent per finished session.
	FinishedChannel = "interview_finished"

	statsTTL = 90 * 24 * time.Hour
)

// recordFinishedScript folds one score into the stats hash. best_score is
// compared and written on the server so concurrent finishes for the same
// user cannot overwrite a higher score.
var recordFinishedScript = redis.NewScript(`
local count = redis.call('HINCRBY', KEYS[1], 'sessions_completed', 1)
redis.call('HINCRBYFLOAT', KEYS[1], 'total_score', ARGV[1])
local best = redis.call('HGET', KEYS[1], 'best_score')
if count == 1 or not best or tonumber(ARGV[1]) > tonumber(best) then
	redis.call('HSET', KEYS[1], 'best_score', ARGV[1])
end
redis.call('HSET', KEYS[1], 'last_score', ARGV[1], 'last_risk_level', ARGV[2], 'last_updated', ARGV[3])
redis.call('EXPIRE', KEYS[1], ARGV[4])
return count
`)

type InterviewFinishedEvent struct {
	SessionID     string           `json:"sessionId"`
	UserID        string           `json:"userId"`
	CompanyName   string           `json:"companyName"`
	JobTitle      string           `json:"jobTitle"`
	InterviewType string           `json:"interviewType"`
	OverallScore  float64          `json:"overallScore"`
	RiskLevel     models.RiskLevel `json:"riskLevel"`
	EndedAt       time.Time        `json:"endedAt"`
}

// Recorder keeps rolling per-user interview stats in redis.
type Recorder struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRecorder(rdb *redis.Client, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{rdb: rdb, logger: logger}
}

func userKey(userID string) string {
	return fmt.Sprintf("%s%s", UserStatsPrefix, userID)
}

// GetUserStats returns zeroed stats for users that have never finished.
func (r *Recorder) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	data, err := r.rdb.HGetAll(ctx, userKey(userID)).Result()
	if err == redis.Nil || (err == nil && len(data) == 0) {
		return &models.UserStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats for %s: %w", userID, err)
	}

	stats := &models.UserStats{UserID: userID}
	stats.SessionsCompleted, _ = strconv.Atoi(data["sessions_completed"])
	stats.TotalScore, _ = strconv.ParseFloat(data["total_score"], 64)
	stats.BestScore, _ = strconv.ParseFloat(data["best_score"], 64)
	stats.LastScore, _ = strconv.ParseFloat(data["last_score"], 64)
	stats.LastRiskLevel = models.RiskLevel(data["last_risk_level"])
	if stats.SessionsCompleted > 0 {
		stats.AverageScore = math.Round(stats.TotalScore/float64(stats.SessionsCompleted)*100) / 100
	}
	return stats, nil
}

// RecordFinished folds a finished session into the user's stats and
// announces it on FinishedChannel.
func (r *Recorder) RecordFinished(ctx context.Context, s models.Session, report models.FinalReport) error {
	if s.UserID == "" {
		return nil
	}

	key := userKey(s.UserID)
	err := recordFinishedScript.Run(ctx, r.rdb, []string{key},
		strconv.FormatFloat(report.OverallScore, 'f', -1, 64),
		string(report.RiskLevel),
		time.Now().Unix(),
		int64(statsTTL/time.Second),
	).Err()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("failed to update stats for %s: %w", s.UserID, err)
	}

	r.publishFinished(ctx, s, report)
	return nil
}

func (r *Recorder) publishFinished(ctx context.Context, s models.Session, report models.FinalReport) {
	event := InterviewFinishedEvent{
		SessionID:     s.ID,
		UserID:        s.UserID,
		CompanyName:   s.CompanyName,
		JobTitle:      s.JobTitle,
		InterviewType: s.InterviewType,
		OverallScore:  report.OverallScore,
		RiskLevel:     report.RiskLevel,
		EndedAt:       report.GeneratedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Warn("failed to marshal finished event", zap.String("session_id", s.ID), zap.Error(err))
		return
	}
	if err := r.rdb.Publish(ctx, FinishedChannel, payload).Err(); err != nil {
		r.logger.Warn("failed to publish finished event", zap.String("session_id", s.ID), zap.Error(err))
	}
}

// Ping reports whether redis is reachable.
func (r *Recorder) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
