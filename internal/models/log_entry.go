package model

import (
	"time"

	"github.com/bobimat/workshop-tasks/internal/constants"
)

// LogEntry records one status change or reference rename. TaskReference is a
// copy of the task's reference at write time, not a foreign key.
type LogEntry struct {
	ID             string                `gorm:"primaryKey;size:36" json:"id"`
	TaskReference  string                `gorm:"size:100;not null;index" json:"task_reference"`
	PreviousStatus *constants.TaskStatus `gorm:"type:varchar(32)" json:"previous_status"`
	NewStatus      constants.TaskStatus  `gorm:"type:varchar(32);not null" json:"new_status"`
	UserEmail      string                `gorm:"size:255;not null" json:"user_email"`
	UserName       string                `gorm:"size:255" json:"user_name"`
	Timestamp      time.Time             `gorm:"not null;index" json:"timestamp"`
}

func (LogEntry) TableName() string {
	return "logs"
}

// IsRename reports whether the entry marks a reference rename rather than a
// status transition.
func (e LogEntry) IsRename() bool {
	return e.PreviousStatus != nil && *e.PreviousStatus == e.NewStatus
}
