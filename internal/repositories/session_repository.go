package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// columns refreshed on every save; export bookkeeping and created_at are
// left alone so re-saving a session never re-queues it for export
var upsertColumns = []string{
	"user_id", "interview_id", "company_name", "job_title", "interview_type",
	"state", "current_round_index", "total_rounds", "overall_score", "risk_level",
	"snapshot", "report", "ended_at", "updated_at",
}

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// SaveSession upserts the session snapshot. report is stored only for
// finished sessions.
func (r *SessionRepository) SaveSession(ctx context.Context, s models.Session, report *models.FinalReport) error {
	record, err := NewSessionRecord(s, report)
	if err != nil {
		return err
	}

	err = r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", s.ID, err)
	}
	return nil
}

// LoadSession returns ok=false when no record exists for id.
func (r *SessionRepository) LoadSession(ctx context.Context, id string) (models.Session, bool, error) {
	var record models.SessionRecord
	err := r.DB.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var s models.Session
	if err := json.Unmarshal(record.Snapshot, &s); err != nil {
		return models.Session{}, false, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return s, true, nil
}

// ListByUser returns the user's sessions, newest first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.SessionRecord, error) {
	records := []models.SessionRecord{}

	query := r.DB.WithContext(ctx).
		Omit("snapshot").
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list sessions for user %s: %w", userID, err)
	}
	return records, nil
}

// GetUnexportedReports returns finished sessions whose report has not been
// exported yet, oldest first.
func (r *SessionRepository) GetUnexportedReports(ctx context.Context, limit int) ([]models.SessionRecord, error) {
	var records []models.SessionRecord

	query := r.DB.WithContext(ctx).
		Where("state = ? AND exported = ?", string(models.SessionFinished), false).
		Order("ended_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get unexported reports: %w", err)
	}
	return records, nil
}

func (r *SessionRepository) MarkAsExported(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.DB.WithContext(ctx).Model(&models.SessionRecord{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"exported":    true,
			"exported_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark reports as exported: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ExportToJSONL renders one ReportExportLine per record. Records without a
// stored report are skipped; the returned count is the number of lines.
func (r *SessionRepository) ExportToJSONL(records []models.SessionRecord) ([]byte, int, error) {
	var lines []string

	for _, rec := range records {
		if len(rec.Report) == 0 {
			continue
		}

		var report models.FinalReport
		if err := json.Unmarshal(rec.Report, &report); err != nil {
			return nil, 0, fmt.Errorf("failed to decode report for session %s: %w", rec.ID, err)
		}

		line, err := json.Marshal(models.ReportExportLine{
			SessionID:     rec.ID,
			UserID:        rec.UserID,
			InterviewType: rec.InterviewType,
			Report:        report,
		})
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal export line: %w", err)
		}
		lines = append(lines, string(line))
	}

	if len(lines) == 0 {
		return nil, 0, nil
	}
	return []byte(strings.Join(lines, "\n") + "\n"), len(lines), nil
}

// NewSessionRecord flattens a session into its table row.
func NewSessionRecord(s models.Session, report *models.FinalReport) (models.SessionRecord, error) {
	snapshot, err := json.Marshal(s)
	if err != nil {
		return models.SessionRecord{}, fmt.Errorf("failed to encode session %s: %w", s.ID, err)
	}

	record := models.SessionRecord{
		ID:                s.ID,
		UserID:            s.UserID,
		InterviewID:       s.InterviewID,
		CompanyName:       s.CompanyName,
		JobTitle:          s.JobTitle,
		InterviewType:     s.InterviewType,
		State:             string(s.State),
		CurrentRoundIndex: s.CurrentRoundIndex,
		TotalRounds:       len(s.Rounds),
		Snapshot:          datatypes.JSON(snapshot),
		EndedAt:           s.EndedAt,
		CreatedAt:         s.CreatedAt,
	}

	if report != nil {
		encoded, err := json.Marshal(report)
		if err != nil {
			return models.SessionRecord{}, fmt.Errorf("failed to encode report for %s: %w", s.ID, err)
		}
		overall := report.OverallScore
		record.OverallScore = &overall
		record.RiskLevel = string(report.RiskLevel)
		record.Report = datatypes.JSON(encoded)
	}
	return record, nil
}
