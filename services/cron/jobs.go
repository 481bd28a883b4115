package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/okravets/institutions-api/model"
)

// CollectCatalogStats logs the current catalog size. Kept lightweight: two
// counts, no locks held.
func (m *CronManager) CollectCatalogStats() {
	jobName := "catalog_stats"

	var institutions, disciplines int64
	if err := m.db.Model(&model.Institution{}).Count(&institutions).Error; err != nil {
		m.logJobError(jobName, err)
		return
	}
	if err := m.db.Model(&model.Discipline{}).Count(&disciplines).Error; err != nil {
		m.logJobError(jobName, err)
		return
	}

	message := fmt.Sprintf("%d institutions, %d disciplines", institutions, disciplines)
	m.logJobComplete(jobName, message)
}

// PruneOldLogs removes audit rows past the retention window and cron job
// logs older than 90 days.
func (m *CronManager) PruneOldLogs() {
	jobName := "prune_old_logs"

	totalCleaned := 0

	cutoffAudit := time.Now().Add(-m.auditRetention)
	result := m.db.Where("created_at < ?", cutoffAudit).Delete(&model.AuditLog{})
	if result.Error != nil {
		log.Printf("[CRON] Failed to prune audit logs: %v", result.Error)
		m.logJobError(jobName, result.Error)
		return
	}
	log.Printf("[CRON] Pruned %d old audit logs", result.RowsAffected)
	totalCleaned += int(result.RowsAffected)

	cutoffLogs := time.Now().Add(-90 * 24 * time.Hour)
	result = m.db.Where("created_at < ?", cutoffLogs).Delete(&model.CronJobLog{})
	if result.Error != nil {
		log.Printf("[CRON] Failed to prune cron logs: %v", result.Error)
		m.logJobError(jobName, result.Error)
		return
	}
	log.Printf("[CRON] Pruned %d old cron logs", result.RowsAffected)
	totalCleaned += int(result.RowsAffected)

	m.logJobComplete(jobName, fmt.Sprintf("pruned %d rows", totalCleaned))
}
