package entity

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// AlertType identifies what kind of trigger raised an alert.
type AlertType string

const (
	AlertTypeSOSButtonPress  AlertType = "SOS_BUTTON_PRESS"
	AlertTypeHealthEmergency AlertType = "HEALTH_EMERGENCY"
	AlertTypePanicButton     AlertType = "PANIC_BUTTON"
	AlertTypeFallDetection   AlertType = "FALL_DETECTION"
	AlertTypeManualTrigger   AlertType = "MANUAL_TRIGGER"
)

// Valid reports whether the alert type is one of the enumerated triggers.
func (t AlertType) Valid() bool {
	switch t {
	case AlertTypeSOSButtonPress, AlertTypeHealthEmergency, AlertTypePanicButton,
		AlertTypeFallDetection, AlertTypeManualTrigger:
		return true
	}

	return false
}

// AlertStatus is the lifecycle tag governing permitted mutations.
// Transitions are monotonic: active -> resolved or active -> cancelled.
type AlertStatus string

const (
	AlertStatusActive    AlertStatus = "active"
	AlertStatusResolved  AlertStatus = "resolved"
	AlertStatusCancelled AlertStatus = "cancelled"
)

// Valid reports whether the status is a known lifecycle tag.
func (s AlertStatus) Valid() bool {
	switch s {
	case AlertStatusActive, AlertStatusResolved, AlertStatusCancelled:
		return true
	}

	return false
}

// Terminal reports whether no further status transitions are permitted.
func (s AlertStatus) Terminal() bool {
	return s == AlertStatusResolved || s == AlertStatusCancelled
}

// ResolverKind identifies who resolved an alert.
type ResolverKind string

const (
	ResolverUser         ResolverKind = "user"
	ResolverContact      ResolverKind = "contact"
	ResolverSystem       ResolverKind = "system"
	ResolverProfessional ResolverKind = "professional"
)

// Valid reports whether the resolver kind is enumerated.
func (r ResolverKind) Valid() bool {
	switch r {
	case ResolverUser, ResolverContact, ResolverSystem, ResolverProfessional:
		return true
	}

	return false
}

// DeliveryMethod is the channel a notification was attempted on.
type DeliveryMethod string

const (
	DeliverySMS   DeliveryMethod = "sms"
	DeliveryEmail DeliveryMethod = "email"
	DeliveryPush  DeliveryMethod = "push"
)

// DeliveryStatus records the outcome of a single notification attempt.
type DeliveryStatus string

const (
	DeliverySent      DeliveryStatus = "sent"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryFailed    DeliveryStatus = "failed"
)

// Severity bounds for alerts. DefaultSeverity applies when the trigger does
// not specify one.
const (
	SeverityMin     = 1
	SeverityMax     = 5
	DefaultSeverity = 3
)

// MaxMessageLength caps the optional free-text message attached to an alert.
const MaxMessageLength = 500

// Location is the geolocation captured when an alert was raised.
type Location struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"` // Reported accuracy in meters, when the device provides it.
}

// Valid reports whether latitude and longitude are finite numbers within
// geographic bounds.
func (l Location) Valid() bool {
	if math.IsNaN(l.Latitude) || math.IsInf(l.Latitude, 0) {
		return false
	}
	if math.IsNaN(l.Longitude) || math.IsInf(l.Longitude, 0) {
		return false
	}

	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

// NotificationRecord is one entry in an alert's ordered fan-out history.
type NotificationRecord struct {
	ContactID  uuid.UUID      `json:"contact_id"`
	NotifiedAt time.Time      `json:"notified_at"`
	Method     DeliveryMethod `json:"method"`
	Status     DeliveryStatus `json:"status"`
}

// Alert is one emergency event raised by a user.
type Alert struct {
	ID               uuid.UUID            `json:"id"`
	UserID           uuid.UUID            `json:"user_id"`
	Type             AlertType            `json:"type"`
	Severity         int                  `json:"severity"` // 1..5, defaults to 3.
	Status           AlertStatus          `json:"status"`
	Location         Location             `json:"location"`
	Message          string               `json:"message,omitempty"`
	ContactsNotified []NotificationRecord `json:"contacts_notified"`
	ResolvedAt       *time.Time           `json:"resolved_at,omitempty"`
	ResolvedBy       ResolverKind         `json:"resolved_by,omitempty"`
	ResponseTime     *int                 `json:"response_time,omitempty"` // Seconds between creation and resolution.
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// CanTransitionTo reports whether moving to the target status is a legal
// lifecycle transition for the alert's current status.
func (a *Alert) CanTransitionTo(target AlertStatus) bool {
	if a.Status.Terminal() {
		return false
	}

	return a.Status == AlertStatusActive && target.Terminal()
}
