package models

import "time"

// StatsSnapshot is one aggregate refresh, kept for the performance chart.
type StatsSnapshot struct {
	ID             string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Account        string    `gorm:"type:varchar(128);index" json:"account"`
	Reputation     int64     `json:"reputation"`
	CompletedTasks int64     `json:"completed_tasks"`
	TotalEarnings  string    `gorm:"type:varchar(80);not null;default:'0'" json:"total_earnings"` // wei
	BalanceWei     string    `gorm:"type:varchar(80);not null;default:'0'" json:"balance_wei"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

// LogEntry is one line of the agent work log.
type LogEntry struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Actor     string    `gorm:"type:varchar(64);not null" json:"actor"`
	Key       string    `gorm:"type:varchar(128)" json:"key,omitempty"` // i18n key, empty for free text
	Message   string    `gorm:"type:text;not null" json:"message"`
	Language  string    `gorm:"type:varchar(8)" json:"language"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
