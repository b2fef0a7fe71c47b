package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactModel mirrors the 'contacts' table. The compound (user_id, priority)
// index serves the fan-out ordering query.
type ContactModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index:idx_contacts_user_priority,priority:1"`
	Name              string    `gorm:"type:varchar(100);not null"`
	Phone             string    `gorm:"type:varchar(32);not null"`
	Email             string    `gorm:"type:varchar(255)"`
	Relationship      string    `gorm:"type:varchar(32);not null"`
	Priority          int       `gorm:"not null;index:idx_contacts_user_priority,priority:2"`
	IsActive          bool      `gorm:"not null;default:true"`
	LastNotified      *time.Time
	NotificationCount int `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (ContactModel) TableName() string {
	return "contacts"
}
