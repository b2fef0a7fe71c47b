package model

import (
	"time"

	"github.com/google/uuid"
)

// AlertModel mirrors the 'alerts' table.
type AlertModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_alerts_user_created,priority:1"`
	Type         string    `gorm:"type:varchar(32);not null"`
	Severity     int       `gorm:"not null;default:3"`
	Status       string    `gorm:"type:varchar(16);not null;default:'active';index"`
	Latitude     float64   `gorm:"not null"`
	Longitude    float64   `gorm:"not null"`
	Accuracy     *float64
	Message      string `gorm:"type:varchar(500)"`
	ResolvedAt   *time.Time
	ResolvedBy   string `gorm:"type:varchar(16)"`
	ResponseTime *int
	CreatedAt    time.Time `gorm:"index:idx_alerts_user_created,priority:2,sort:desc"`
	UpdatedAt    time.Time

	Notifications []AlertNotificationModel `gorm:"foreignKey:AlertID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (AlertModel) TableName() string {
	return "alerts"
}

// AlertNotificationModel mirrors the 'alert_notifications' table: one row per
// fan-out attempt, ordered by the auto-incrementing primary key.
type AlertNotificationModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	AlertID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ContactID  uuid.UUID `gorm:"type:uuid;not null"`
	NotifiedAt time.Time `gorm:"not null"`
	Method     string    `gorm:"type:varchar(8);not null"`
	Status     string    `gorm:"type:varchar(12);not null"`
}

// TableName explicitly sets the table name for GORM.
func (AlertNotificationModel) TableName() string {
	return "alert_notifications"
}
