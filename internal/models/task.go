package model

import (
	"time"

	"github.com/bobimat/workshop-tasks/internal/constants"
)

type Task struct {
	ID             string                `gorm:"primaryKey;size:36" json:"id"`
	Reference      string                `gorm:"size:100;not null;uniqueIndex" json:"reference"`
	Status         constants.TaskStatus  `gorm:"type:varchar(32);not null" json:"status"`
	PreviousStatus *constants.TaskStatus `gorm:"type:varchar(32)" json:"previous_status"`
	UpdatedBy      string                `gorm:"size:255" json:"updated_by"`
	UpdatedAt      time.Time             `gorm:"autoUpdateTime:false" json:"updated_at"`
	CreatedAt      time.Time             `gorm:"autoCreateTime:false;<-:create" json:"created_at"`
}
