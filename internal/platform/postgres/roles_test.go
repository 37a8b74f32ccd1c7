package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/linguary/lingua-api/internal/domain"
)

func TestEncodeRoles(t *testing.T) {
	assert.Equal(t, "LEARNER,ADMIN", encodeRoles([]domain.Role{domain.RoleLearner, domain.RoleAdmin}))
	assert.Equal(t, "LEARNER", encodeRoles([]domain.Role{domain.RoleLearner}))
	assert.Equal(t, "", encodeRoles(nil))
}

func TestDecodeRoles(t *testing.T) {
	assert.Equal(t, []domain.Role{domain.RoleLearner, domain.RoleAdmin}, decodeRoles("LEARNER,ADMIN"))
	assert.Equal(t, []domain.Role{domain.RoleTutor}, decodeRoles(" TUTOR "))
	assert.Nil(t, decodeRoles(""))
}

func TestRolesRoundTrip(t *testing.T) {
	roles := []domain.Role{domain.RoleLearner, domain.RoleTutor, domain.RoleAdmin}
	assert.Equal(t, roles, decodeRoles(encodeRoles(roles)))
}
