package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Evictor interface {
	EvictIdle(ttl time.Duration) int
}

type Purger interface {
	Purge() int
}

// SessionSweeperJob periodically drops idle in-memory sessions and expired
// company cache entries.
type SessionSweeperJob struct {
	sessions Evictor
	cache    Purger
	schedule string
	idleTTL  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewSessionSweeperJob accepts a nil cache.
func NewSessionSweeperJob(sessions Evictor, cache Purger, schedule string, idleTTL time.Duration, logger *zap.Logger) *SessionSweeperJob {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionSweeperJob{
		sessions: sessions,
		cache:    cache,
		schedule: schedule,
		idleTTL:  idleTTL,
		cron:     cron.New(),
		logger:   logger,
	}
}

func (j *SessionSweeperJob) Start() error {
	if j.idleTTL <= 0 {
		return fmt.Errorf("session sweeper: idle ttl must be positive, got %s", j.idleTTL)
	}
	if _, err := j.cron.AddFunc(j.schedule, func() { j.RunSweep() }); err != nil {
		return fmt.Errorf("failed to schedule session sweeper: %w", err)
	}
	j.cron.Start()
	j.logger.Info("session sweeper started", zap.String("schedule", j.schedule), zap.Duration("idle_ttl", j.idleTTL))
	return nil
}

func (j *SessionSweeperJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// RunSweep returns the number of evicted sessions and purged cache entries.
func (j *SessionSweeperJob) RunSweep() (evicted, purged int) {
	evicted = j.sessions.EvictIdle(j.idleTTL)
	if j.cache != nil {
		purged = j.cache.Purge()
	}
	if evicted > 0 || purged > 0 {
		j.logger.Info("sweep finished", zap.Int("sessions_evicted", evicted), zap.Int("cache_purged", purged))
	}
	return evicted, purged
}
