package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Name         string
	Handle       string
	Role         Role

	// Recruiters post jobs only once approved by an admin; candidates are
	// approved implicitly.
	Approved bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
