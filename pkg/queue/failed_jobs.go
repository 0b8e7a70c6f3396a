package queue

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// FailedJobRecord is one job that exhausted its attempts.
type FailedJobRecord struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	JobType  string    `gorm:"size:255;not null;index" json:"job_type"`
	Payload  string    `gorm:"type:text;not null" json:"payload"`
	Error    string    `gorm:"type:text" json:"error"`
	Attempts int       `gorm:"not null;default:0" json:"attempts"`
	FailedAt time.Time `gorm:"autoCreateTime" json:"failed_at"`
}

func (FailedJobRecord) TableName() string { return "failed_jobs" }

// Migrate creates the failed_jobs table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&FailedJobRecord{})
}

func (m *Manager) persistFailed(ctx context.Context, name string, payload []byte, lastErr error, attempts int) {
	record := FailedJobRecord{
		JobType:  name,
		Payload:  string(payload),
		Attempts: attempts,
		FailedAt: time.Now(),
	}
	if lastErr != nil {
		record.Error = lastErr.Error()
	}

	if m.opts.DB == nil {
		m.mu.Lock()
		record.ID = uint(len(m.failed) + 1)
		m.failed = append(m.failed, record)
		m.mu.Unlock()
		return
	}

	if err := m.opts.DB.WithContext(ctx).Create(&record).Error; err != nil {
		m.log.Error("queue: persist failed job", "type", name, "error", err)
		m.mu.Lock()
		m.failed = append(m.failed, record)
		m.mu.Unlock()
	}
}

// FailedJobs lists failed jobs, newest first.
func (m *Manager) FailedJobs(ctx context.Context) ([]FailedJobRecord, error) {
	m.mu.RLock()
	mem := make([]FailedJobRecord, 0, len(m.failed))
	for i := len(m.failed) - 1; i >= 0; i-- {
		mem = append(mem, m.failed[i])
	}
	m.mu.RUnlock()

	if m.opts.DB == nil {
		return mem, nil
	}

	var out []FailedJobRecord
	if err := m.opts.DB.WithContext(ctx).Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return append(out, mem...), nil
}
