package model

import (
	"time"

	"github.com/bobimat/workshop-tasks/internal/constants"
)

type User struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Email     string         `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Role      constants.Role `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime:false" json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == constants.RoleAdmin
}
