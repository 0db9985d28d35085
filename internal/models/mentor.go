package models

import "strings"

type Mentor struct {
	ID         int64   `json:"id"`
	ExternalID string  `json:"-"`
	Name       string  `json:"name"`
	Roles      string  `json:"roles"`
	Rating     float64 `json:"rating"`
	Email      string  `json:"email"`
}

// RoleSet parses the stored comma-delimited roles column into trimmed role
// names. Empty segments are dropped.
func (m *Mentor) RoleSet() []string {
	parts := strings.Split(m.Roles, ",")
	roles := make([]string, 0, len(parts))
	for _, part := range parts {
		if role := strings.TrimSpace(part); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

// OffersRole reports whether the mentor lists the given role. Matching is
// case-sensitive against trimmed role names.
func (m *Mentor) OffersRole(role string) bool {
	role = strings.TrimSpace(role)
	for _, r := range m.RoleSet() {
		if r == role {
			return true
		}
	}
	return false
}

type MentorAvailability struct {
	Mentor
	RoleList     []string             `json:"role_list"`
	Availability []AvailabilityWindow `json:"availability"`
}
