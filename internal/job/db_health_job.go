package job

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type DBStatter interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

// DBHealthJob pings the pool and logs its usage counters.
type DBHealthJob struct {
	db      DBStatter
	timeout time.Duration
}

func NewDBHealthJob(db DBStatter, timeout time.Duration) *DBHealthJob {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &DBHealthJob{db: db, timeout: timeout}
}

func (j *DBHealthJob) Name() string {
	return "db_health"
}

func (j *DBHealthJob) Run(ctx context.Context) error {
	if j.db == nil {
		return nil
	}
	pingCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()
	if err := j.db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	stats := j.db.Stats()
	logutil.GetLogger(ctx).Info("database healthy",
		zap.Int("open", stats.OpenConnections),
		zap.Int("in_use", stats.InUse),
		zap.Int("idle", stats.Idle),
		zap.Int64("wait_count", stats.WaitCount),
		zap.Duration("wait_duration", stats.WaitDuration),
	)
	return nil
}
