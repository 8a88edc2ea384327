package jobs

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/repositories"
	"github.com/Nitingarg01/Major-project-sub001/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportNow = time.Date(2025, 3, 15, 2, 0, 0, 0, time.UTC)

func saveFinished(t *testing.T, repo *repositories.SessionRepository, id string, score float64) {
	t.Helper()
	ended := exportNow.Add(-time.Hour)
	s := models.Session{
		ID:        id,
		UserID:    "user-" + id,
		State:     models.SessionFinished,
		Rounds:    []models.Round{{ID: "dsa_1", Type: models.RoundDSA, Status: models.RoundCompleted}},
		CreatedAt: ended.Add(-time.Hour),
		EndedAt:   &ended,
	}
	report := &models.FinalReport{SessionID: id, UserID: s.UserID, OverallScore: score, RiskLevel: models.RiskLow, GeneratedAt: ended}
	require.NoError(t, repo.SaveSession(context.Background(), s, report))
}

func newExporter(t *testing.T) (*ReportExporterJob, *repositories.SessionRepository, string) {
	t.Helper()
	repo := repositories.NewSessionRepository(testhelpers.SetupTestDB(t))
	dir := t.TempDir()
	job := NewReportExporterJob(repo, &ExporterConfig{Schedule: "0 2 * * *", ExportDir: dir, ExportEnabled: true}, nil)
	job.now = func() time.Time { return exportNow }
	return job, repo, dir
}

func TestRunExportWritesJSONL(t *testing.T) {
	job, repo, dir := newExporter(t)
	saveFinished(t, repo, "a", 40)
	saveFinished(t, repo, "b", 90)

	path, err := job.RunExport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report_export_20250315_020000.jsonl"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []models.ReportExportLine
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line models.ReportExportLine
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line))
		lines = append(lines, line)
	}
	require.Len(t, lines, 2)

	pending, err := repo.GetUnexportedReports(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// a second pass finds nothing
	path, err = job.RunExport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestRunExportNothingPending(t *testing.T) {
	job, _, dir := newExporter(t)

	path, err := job.RunExport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExporterDisabledDoesNotSchedule(t *testing.T) {
	job, _, _ := newExporter(t)
	job.config.ExportEnabled = false
	require.NoError(t, job.Start())
	assert.Empty(t, job.cron.Entries())
	job.Stop()
}

func TestExporterRejectsBadSchedule(t *testing.T) {
	job, _, _ := newExporter(t)
	job.config.Schedule = "not a schedule"
	assert.Error(t, job.Start())
}

type fakeEvictor struct{ calls atomic.Int32 }

func (f *fakeEvictor) EvictIdle(ttl time.Duration) int {
	f.calls.Add(1)
	return 2
}

type fakePurger struct{}

func (fakePurger) Purge() int { return 3 }

func TestRunSweep(t *testing.T) {
	ev := &fakeEvictor{}
	job := NewSessionSweeperJob(ev, fakePurger{}, "@every 5m", 30*time.Minute, nil)

	evicted, purged := job.RunSweep()
	assert.Equal(t, 2, evicted)
	assert.Equal(t, 3, purged)

	noCache := NewSessionSweeperJob(ev, nil, "@every 5m", 30*time.Minute, nil)
	_, purged = noCache.RunSweep()
	assert.Zero(t, purged)
	assert.Equal(t, int32(2), ev.calls.Load())
}

func TestSweeperStartValidates(t *testing.T) {
	assert.Error(t, NewSessionSweeperJob(&fakeEvictor{}, nil, "@every 5m", 0, nil).Start())
	assert.Error(t, NewSessionSweeperJob(&fakeEvictor{}, nil, "bogus", time.Minute, nil).Start())

	job := NewSessionSweeperJob(&fakeEvictor{}, nil, "@every 5m", time.Minute, nil)
	require.NoError(t, job.Start())
	assert.Len(t, job.cron.Entries(), 1)
	job.Stop()
}
