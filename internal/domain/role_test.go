package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		parsed, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}

	_, err := ParseRole("root")
	assert.True(t, errors.Is(err, ErrInvalidRole))

	_, err = ParseRole("Admin")
	assert.True(t, errors.Is(err, ErrInvalidRole), "role names are case sensitive")
}

func TestRole_JSON(t *testing.T) {
	data, err := json.Marshal(RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, `"super-admin"`, string(data))

	var r Role
	require.NoError(t, json.Unmarshal([]byte(`"customer"`), &r))
	assert.Equal(t, RoleCustomer, r)

	assert.Error(t, json.Unmarshal([]byte(`"guest"`), &r))

	_, err = json.Marshal(Role(0))
	assert.Error(t, err)
}

func TestRole_MustValidPanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { Role(0).MustValid() })
	assert.Panics(t, func() { Role(9).MustValid() })
	assert.NotPanics(t, func() { RoleAdmin.MustValid() })
}

func TestNewUser_RejectsInvalidRole(t *testing.T) {
	_, err := NewUser("1", "Ghost", "ghost@demo.com", Role(0), true)
	assert.True(t, errors.Is(err, ErrInvalidRole))

	u, err := NewUser("2", "Sarah Johnson", "admin@demo.com", RoleAdmin, true)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestDestination_Allows(t *testing.T) {
	d := Destination{ID: DestUsers, AllowedRoles: []Role{RoleSuperAdmin, RoleAdmin}}
	assert.True(t, d.Allows(RoleAdmin))
	assert.False(t, d.Allows(RoleCustomer))
}
