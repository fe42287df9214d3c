package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleRankOrdering(t *testing.T) {
	// admin > hr > finance > manager > team_member
	ordered := []Role{RoleAdmin, RoleHR, RoleFinance, RoleManager, RoleTeamMember}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1].Rank(), ordered[i].Rank(),
			"%s must outrank %s", ordered[i-1], ordered[i])
	}
}

func TestRoleRankUnknownRole(t *testing.T) {
	unknown := Role("superuser")
	assert.False(t, unknown.Valid())
	assert.Greater(t, unknown.Rank(), RoleTeamMember.Rank())
}

func TestPrimaryRole(t *testing.T) {
	cases := []struct {
		name  string
		roles []Role
		want  Role
		ok    bool
	}{
		{"single role", []Role{RoleManager}, RoleManager, true},
		{"highest privilege wins", []Role{RoleTeamMember, RoleHR, RoleManager}, RoleHR, true},
		{"admin beats everything", []Role{RoleFinance, RoleAdmin, RoleTeamMember}, RoleAdmin, true},
		{"empty set", nil, Role(""), false},
		{"only invalid roles", []Role{Role("ghost")}, Role(""), false},
		{"invalid roles ignored", []Role{Role("ghost"), RoleFinance}, RoleFinance, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := PrimaryRole(c.roles)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}
