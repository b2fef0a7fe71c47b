package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlertStatusTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    AlertStatus
		to      AlertStatus
		allowed bool
	}{
		{"active to resolved", AlertStatusActive, AlertStatusResolved, true},
		{"active to cancelled", AlertStatusActive, AlertStatusCancelled, true},
		{"active to active", AlertStatusActive, AlertStatusActive, false},
		{"resolved is terminal", AlertStatusResolved, AlertStatusCancelled, false},
		{"cancelled is terminal", AlertStatusCancelled, AlertStatusResolved, false},
		{"resolved cannot reopen", AlertStatusResolved, AlertStatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			alert := &Alert{Status: tt.from}
			assert.Equal(t, tt.allowed, alert.CanTransitionTo(tt.to))
		})
	}
}

func TestAlertTypeValid(t *testing.T) {
	t.Parallel()

	for _, typ := range []AlertType{
		AlertTypeSOSButtonPress, AlertTypeHealthEmergency, AlertTypePanicButton,
		AlertTypeFallDetection, AlertTypeManualTrigger,
	} {
		assert.True(t, typ.Valid(), string(typ))
	}

	assert.False(t, AlertType("SHOUTING").Valid())
	assert.False(t, AlertType("").Valid())
}

func TestLocationValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		location Location
		want     bool
	}{
		{"bangalore", Location{Latitude: 12.97, Longitude: 77.59}, true},
		{"poles", Location{Latitude: -90, Longitude: 180}, true},
		{"zero island", Location{}, true},
		{"latitude too high", Location{Latitude: 90.1, Longitude: 0}, false},
		{"longitude too low", Location{Latitude: 0, Longitude: -180.5}, false},
		{"nan latitude", Location{Latitude: math.NaN(), Longitude: 0}, false},
		{"infinite longitude", Location{Latitude: 0, Longitude: math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.location.Valid())
		})
	}
}

func TestResolverKindValid(t *testing.T) {
	t.Parallel()

	for _, kind := range []ResolverKind{ResolverUser, ResolverContact, ResolverSystem, ResolverProfessional} {
		assert.True(t, kind.Valid(), string(kind))
	}
	assert.False(t, ResolverKind("bystander").Valid())
}
