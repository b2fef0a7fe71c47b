package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelationshipValid(t *testing.T) {
	t.Parallel()

	for _, rel := range []Relationship{
		RelationshipFamily, RelationshipFriend, RelationshipColleague,
		RelationshipNeighbor, RelationshipDoctor, RelationshipEmergencyServices,
		RelationshipOther,
	} {
		assert.True(t, rel.Valid(), string(rel))
	}

	assert.False(t, Relationship("Acquaintance").Valid())
	assert.False(t, Relationship("family").Valid(), "relationship categories are case sensitive")
}

func TestValidPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		phone string
		want  bool
	}{
		{"+15550001111", true},
		{"555 000 1111", true},
		{"(555) 000-1111", true},
		{"5550001111", true},
		{"12345", false},
		{"call-me-maybe-now", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ValidPhone(tt.phone))
		})
	}
}

func TestValidPriority(t *testing.T) {
	t.Parallel()

	assert.True(t, ValidPriority(ContactPriorityHighest))
	assert.True(t, ValidPriority(2))
	assert.True(t, ValidPriority(ContactPriorityLowest))
	assert.False(t, ValidPriority(0))
	assert.False(t, ValidPriority(5))
	assert.False(t, ValidPriority(-1))
}
