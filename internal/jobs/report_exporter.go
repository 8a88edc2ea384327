package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReportExporterJob writes finished session reports to JSONL files on a
// schedule so they can be loaded into offline analysis.
type ReportExporterJob struct {
	repo   *repositories.SessionRepository
	config *ExporterConfig
	cron   *cron.Cron
	logger *zap.Logger
	now    func() time.Time
}

type ExporterConfig struct {
	Schedule      string // cron schedule, e.g. "0 2 * * *"
	ExportDir     string
	ExportEnabled bool
	BatchSize     int // 0 exports everything pending
}

func NewReportExporterJob(repo *repositories.SessionRepository, config *ExporterConfig, logger *zap.Logger) *ReportExporterJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportExporterJob{
		repo:   repo,
		config: config,
		cron:   cron.New(),
		logger: logger,
		now:    time.Now,
	}
}

// Start schedules RunExport. It is a no-op when export is disabled.
func (j *ReportExporterJob) Start() error {
	if !j.config.ExportEnabled {
		j.logger.Info("report export is disabled, skipping scheduler")
		return nil
	}

	_, err := j.cron.AddFunc(j.config.Schedule, func() {
		if _, err := j.RunExport(context.Background()); err != nil {
			j.logger.Error("report export failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule report export: %w", err)
	}

	j.cron.Start()
	j.logger.Info("report exporter started", zap.String("schedule", j.config.Schedule))
	return nil
}

func (j *ReportExporterJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// RunExport performs one export pass and returns the written file path, or
// "" when nothing was pending.
func (j *ReportExporterJob) RunExport(ctx context.Context) (string, error) {
	records, err := j.repo.GetUnexportedReports(ctx, j.config.BatchSize)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		j.logger.Debug("no unexported reports")
		return "", nil
	}

	data, lines, err := j.repo.ExportToJSONL(records)
	if err != nil {
		return "", err
	}

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}

	path := ""
	if lines > 0 {
		if err := os.MkdirAll(j.config.ExportDir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}

		timestamp := j.now().UTC().Format("20060102_150405")
		path = filepath.Join(j.config.ExportDir, fmt.Sprintf("report_export_%s.jsonl", timestamp))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write export file: %w", err)
		}
	}

	// records without a report are marked too so they are not retried forever
	if _, err := j.repo.MarkAsExported(ctx, ids); err != nil {
		return path, err
	}

	j.logger.Info("exported session reports",
		zap.Int("records", len(records)),
		zap.Int("lines", lines),
		zap.String("file", path))
	return path, nil
}
