package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   Role
		wantOK bool
	}{
		{in: "customer", want: RoleCustomer, wantOK: true},
		{in: "deluxe", want: RoleDeluxe, wantOK: true},
		{in: "accounting", want: RoleAccounting, wantOK: true},
		{in: "admin", want: RoleAdmin, wantOK: true},
		{in: "", want: RoleNone, wantOK: false},
		{in: "Admin", want: RoleNone, wantOK: false},
		{in: "root", want: RoleNone, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := ParseRole(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestRolePredicatesAreExclusive(t *testing.T) {
	t.Parallel()

	roles := []Role{RoleNone, RoleCustomer, RoleDeluxe, RoleAccounting, RoleAdmin, Role("bogus")}
	for _, r := range roles {
		n := 0
		for _, p := range []bool{r.IsCustomer(), r.IsDeluxe(), r.IsAdmin()} {
			if p {
				n++
			}
		}
		assert.LessOrEqual(t, n, 1, "role %q", r)
	}

	assert.True(t, RoleCustomer.IsCustomer())
	assert.True(t, RoleDeluxe.IsDeluxe())
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleAccounting.IsCustomer())
	assert.False(t, RoleNone.IsDeluxe())
}
