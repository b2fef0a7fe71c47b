package entity

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Relationship categorizes how a contact relates to the user who owns it.
type Relationship string

const (
	RelationshipFamily            Relationship = "Family"
	RelationshipFriend            Relationship = "Friend"
	RelationshipColleague         Relationship = "Colleague"
	RelationshipNeighbor          Relationship = "Neighbor"
	RelationshipDoctor            Relationship = "Doctor"
	RelationshipEmergencyServices Relationship = "Emergency Services"
	RelationshipOther             Relationship = "Other"
)

// Valid reports whether the relationship is one of the enumerated categories.
func (r Relationship) Valid() bool {
	switch r {
	case RelationshipFamily, RelationshipFriend, RelationshipColleague,
		RelationshipNeighbor, RelationshipDoctor, RelationshipEmergencyServices,
		RelationshipOther:
		return true
	}

	return false
}

// Contact priority bounds. 1 is notified first.
const (
	ContactPriorityHighest = 1
	ContactPriorityLowest  = 4
)

// phonePattern accepts international-style numbers with common separators.
var phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)

// ValidPhone reports whether the given phone number matches the loose phone pattern.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidPriority reports whether the priority is within [1,4].
func ValidPriority(priority int) bool {
	return priority >= ContactPriorityHighest && priority <= ContactPriorityLowest
}

// Contact is an emergency contact belonging to exactly one user. Active
// contacts are notified in ascending priority order when an alert is raised.
type Contact struct {
	ID                uuid.UUID    `json:"id"`
	UserID            uuid.UUID    `json:"user_id"`
	Name              string       `json:"name"`
	Phone             string       `json:"phone"`
	Email             string       `json:"email,omitempty"`
	Relationship      Relationship `json:"relationship"`
	Priority          int          `json:"priority"`  // 1 (highest) .. 4 (lowest)
	IsActive          bool         `json:"is_active"` // Inactive contacts are skipped during fan-out.
	LastNotified      *time.Time   `json:"last_notified"`
	NotificationCount int          `json:"notification_count"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
