package seeder

import (
	"context"

	"talenthub/internal/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UsersSeeder creates a pre-approved recruiter account for development, so
// listing creation can be exercised without an admin flipping the approved
// flag by hand.
type UsersSeeder struct{}

func (UsersSeeder) Name() string { return "users" }

func (UsersSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "users",
		"id", "email", "password_hash", "name", "handle", "role", "approved",
	); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("recruiter-dev-pass"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Exec(
		ctx,
		`INSERT INTO users (id, email, password_hash, name, handle, role, approved)
		 VALUES ($1, $2, $3, $4, $5, $6, true)
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New(), "recruiter@talenthub.local", string(hash),
		"Dev Recruiter", "@dev-recruiter", "recruiter",
	)
	return err
}
