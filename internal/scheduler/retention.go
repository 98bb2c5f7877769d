package scheduler

import (
	"time"
)

// Purger deletes history rows recorded before a cutoff.
type Purger interface {
	PurgeOlderThan(cutoff time.Time) (int64, error)
}

// RetentionJob purges history entries older than the configured number of
// days. Registered with an "@daily" schedule; not created at all when
// retention is disabled.
type RetentionJob struct {
	purger Purger
	days   int
}

// NewRetentionJob creates the retention job.
func NewRetentionJob(purger Purger, days int) *RetentionJob {
	return &RetentionJob{purger: purger, days: days}
}

// Name implements Job.
func (j *RetentionJob) Name() string { return "history-retention" }

// Run implements Job.
func (j *RetentionJob) Run() error {
	cutoff := time.Now().AddDate(0, 0, -j.days)
	_, err := j.purger.PurgeOlderThan(cutoff)
	return err
}
