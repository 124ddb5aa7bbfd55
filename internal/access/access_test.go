package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanMutate(t *testing.T) {
	cases := []struct {
		name    string
		actor   uint64
		role    Role
		owner   uint64
		allowed bool
	}{
		{"owner may mutate own resource", 7, RoleUser, 7, true},
		{"unrelated user may not", 8, RoleUser, 7, false},
		{"admin bypasses ownership", 99, RoleAdmin, 7, true},
		{"admin may mutate own resource too", 7, RoleAdmin, 7, true},
		{"unknown role is denied", 7, Role("GUEST"), 7, false},
		{"empty role is denied", 7, Role(""), 7, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanMutate(tc.actor, tc.role, tc.owner))
		})
	}
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("OWNER").Valid())
	assert.False(t, Role("").Valid())
}
