package repositories

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func activeSession(id, userID string, created time.Time) models.Session {
	return models.Session{
		ID:            id,
		UserID:        userID,
		CompanyName:   "Google",
		JobTitle:      "Backend Engineer",
		InterviewType: "technical",
		State:         models.SessionActive,
		Rounds: []models.Round{{
			ID:              "technical_1",
			Type:            models.RoundTechnical,
			Status:          models.RoundInProgress,
			DurationMinutes: 60,
			Questions:       []models.Question{{ID: "q1", Text: "Explain goroutines.", PointValue: 100}},
		}},
		RoundResults: []models.RoundResult{},
		CreatedAt:    created,
	}
}

func finish(s models.Session, score float64, ended time.Time) (models.Session, *models.FinalReport) {
	s.State = models.SessionFinished
	s.CurrentRoundIndex = 1
	s.ActiveRoundIndex = 1
	s.Rounds[0].Status = models.RoundCompleted
	s.EndedAt = &ended
	report := &models.FinalReport{
		SessionID:    s.ID,
		UserID:       s.UserID,
		OverallScore: score,
		RiskLevel:    models.RiskLow,
		GeneratedAt:  ended,
	}
	return s, report
}

func TestSaveAndLoadSession(t *testing.T) {
	repo := NewSessionRepository(testhelpers.SetupTestDB(t))
	ctx := context.Background()

	s := activeSession("s-1", "user-1", baseTime)
	require.NoError(t, repo.SaveSession(ctx, s, nil))

	loaded, ok, err := repo.LoadSession(ctx, "s-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, models.SessionActive, loaded.State)
	require.Len(t, loaded.Rounds, 1)
	assert.Equal(t, "Explain goroutines.", loaded.Rounds[0].Questions[0].Text)
	assert.True(t, s.CreatedAt.Equal(loaded.CreatedAt))
}

func TestLoadSessionMissing(t *testing.T) {
	repo := NewSessionRepository(testhelpers.SetupTestDB(t))

	_, ok, err := repo.LoadSession(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveSessionUpserts(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	s := activeSession("s-1", "user-1", baseTime)
	require.NoError(t, repo.SaveSession(ctx, s, nil))

	finished, report := finish(s, 72.5, baseTime.Add(time.Hour))
	require.NoError(t, repo.SaveSession(ctx, finished, report))

	var count int64
	require.NoError(t, db.Model(&models.SessionRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var record models.SessionRecord
	require.NoError(t, db.First(&record, "id = ?", "s-1").Error)
	assert.Equal(t, string(models.SessionFinished), record.State)
	require.NotNil(t, record.OverallScore)
	assert.Equal(t, 72.5, *record.OverallScore)
	assert.Equal(t, "low", record.RiskLevel)
	assert.False(t, record.Exported)
}

func TestListByUser(t *testing.T) {
	repo := NewSessionRepository(testhelpers.SetupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.SaveSession(ctx, activeSession("old", "user-1", baseTime), nil))
	require.NoError(t, repo.SaveSession(ctx, activeSession("new", "user-1", baseTime.Add(time.Hour)), nil))
	require.NoError(t, repo.SaveSession(ctx, activeSession("other", "user-2", baseTime), nil))

	records, err := repo.ListByUser(ctx, "user-1", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "old", records[1].ID)

	limited, err := repo.ListByUser(ctx, "user-1", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := repo.ListByUser(ctx, "ghost", 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestExportLifecycle(t *testing.T) {
	repo := NewSessionRepository(testhelpers.SetupTestDB(t))
	ctx := context.Background()

	first, firstReport := finish(activeSession("a", "user-1", baseTime), 40, baseTime.Add(time.Hour))
	second, secondReport := finish(activeSession("b", "user-2", baseTime), 80, baseTime.Add(2*time.Hour))
	require.NoError(t, repo.SaveSession(ctx, first, firstReport))
	require.NoError(t, repo.SaveSession(ctx, second, secondReport))
	require.NoError(t, repo.SaveSession(ctx, activeSession("c", "user-3", baseTime), nil))

	records, err := repo.GetUnexportedReports(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)

	data, lines, err := repo.ExportToJSONL(records)
	require.NoError(t, err)
	assert.Equal(t, 2, lines)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	var decoded []models.ReportExportLine
	for scanner.Scan() {
		var line models.ReportExportLine
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		decoded = append(decoded, line)
	}
	require.Len(t, decoded, 2)
	assert.Equal(t, "a", decoded[0].SessionID)
	assert.Equal(t, 40.0, decoded[0].Report.OverallScore)

	n, err := repo.MarkAsExported(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	records, err = repo.GetUnexportedReports(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, records)

	// saving again must not re-queue an exported report
	require.NoError(t, repo.SaveSession(ctx, first, firstReport))
	records, err = repo.GetUnexportedReports(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestExportToJSONLSkipsRecordsWithoutReport(t *testing.T) {
	repo := NewSessionRepository(nil)

	data, lines, err := repo.ExportToJSONL([]models.SessionRecord{{ID: "x"}})
	require.NoError(t, err)
	assert.Zero(t, lines)
	assert.Nil(t, data)
}

func TestMarkAsExportedEmpty(t *testing.T) {
	repo := NewSessionRepository(testhelpers.SetupTestDB(t))
	n, err := repo.MarkAsExported(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepositoryErrorsSurface(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	repo := NewSessionRepository(db)
	testhelpers.DropSessionTable(t, db)

	ctx := context.Background()
	assert.Error(t, repo.SaveSession(ctx, activeSession("s", "u", baseTime), nil))
	_, _, err := repo.LoadSession(ctx, "s")
	assert.Error(t, err)
	_, err = repo.ListByUser(ctx, "u", 0)
	assert.Error(t, err)
}
