package domain

import "github.com/google/uuid"

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID       uuid.UUID
	Username string
	Role     string
}

func (a Actor) IsHOD() bool {
	return a.Role == RoleHOD
}
