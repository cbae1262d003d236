package cron

import (
	"fmt"
	"time"

	"github.com/learning-master/api/model"
)

const (
	// Cart items untouched for this long are considered abandoned
	staleCartAge = 7 * 24 * time.Hour
	// Cron job logs older than this are pruned
	cronLogRetention = 90 * 24 * time.Hour
)

// SweepStaleCarts deletes cart items that have sat untouched for over a week.
// Runs hourly.
func (m *CronManager) SweepStaleCarts() {
	jobName := "sweep_stale_carts"

	cutoff := time.Now().Add(-staleCartAge)
	result := m.db.Where("created_at < ?", cutoff).Delete(&model.CartItem{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to delete stale cart items: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d stale cart items", result.RowsAffected))
}

// PruneCronLogs removes cron job logs past the retention window. Runs daily.
func (m *CronManager) PruneCronLogs() {
	jobName := "prune_cron_logs"

	cutoff := time.Now().Add(-cronLogRetention)
	result := m.db.Unscoped().Where("started_at < ?", cutoff).Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to prune cron logs: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Pruned %d cron job logs", result.RowsAffected))
}
