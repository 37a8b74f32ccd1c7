package postgres

import (
	"strings"

	"github.com/linguary/lingua-api/internal/domain"
)

// Roles are stored in a single text column as a comma-separated list,
// e.g. "LEARNER,ADMIN".

func encodeRoles(roles []domain.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}

func decodeRoles(encoded string) []domain.Role {
	if encoded == "" {
		return nil
	}
	parts := strings.Split(encoded, ",")
	roles := make([]domain.Role, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, domain.Role(p))
		}
	}
	return roles
}
