package seeder

import (
	"context"

	"talenthub/internal/database"
)

type JobsSeeder struct{}

func (JobsSeeder) Name() string { return "jobs" }

func (JobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "jobs",
		"id", "role", "company", "location", "salary", "type",
		"description", "requirements", "benefits", "employer_id",
		"posted_date", "is_active",
	); err != nil {
		return err
	}

	items := []struct {
		ID           string
		Role         string
		Company      string
		Location     string
		Salary       string
		Type         string
		Description  string
		Requirements []string
		Benefits     []string
		EmployerID   string
	}{
		{
			ID: "seed-backend-1", Role: "Backend Engineer", Company: "Acme",
			Location: "Remote", Salary: "$120k-$150k", Type: "Full-time",
			Description:  "Build and operate the services behind the hiring platform.",
			Requirements: []string{"Go", "PostgreSQL", "3+ years experience"},
			Benefits:     []string{"Remote-first", "Health insurance"},
			EmployerID:   "seed-employer-acme",
		},
		{
			ID: "seed-frontend-1", Role: "Frontend Engineer", Company: "Acme",
			Location: "Berlin", Salary: "$100k-$130k", Type: "Full-time",
			Description:  "Own the candidate-facing web experience.",
			Requirements: []string{"TypeScript", "React"},
			Benefits:     []string{"Relocation support"},
			EmployerID:   "seed-employer-acme",
		},
		{
			ID: "seed-design-1", Role: "Product Designer", Company: "Northwind",
			Location: "Remote", Salary: "$90k-$110k", Type: "Contract",
			Description:  "Design the recruiter workflow end to end.",
			Requirements: []string{"Figma", "Portfolio"},
			Benefits:     []string{},
			EmployerID:   "seed-employer-northwind",
		},
	}

	for _, it := range items {
		_, err := db.Exec(
			ctx,
			`INSERT INTO jobs (id, role, company, location, salary, type, description, requirements, benefits, employer_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (id) DO NOTHING`,
			it.ID, it.Role, it.Company, it.Location, it.Salary, it.Type,
			it.Description, it.Requirements, it.Benefits, it.EmployerID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
