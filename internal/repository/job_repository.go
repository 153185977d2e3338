package repository

import (
	"context"
	"time"

	"talenthub/internal/database"
	"talenthub/internal/domain/job"
)

// JobRepository reads the remote job catalog. The catalog is the server of
// record for Jobs; this client never writes it.
type JobRepository interface {
	ListActiveJobs(ctx context.Context) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) ListActiveJobs(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id,
		        COALESCE(role, ''),
		        COALESCE(company, ''),
		        COALESCE(location, ''),
		        COALESCE(salary, ''),
		        COALESCE(type, ''),
		        COALESCE(description, ''),
		        COALESCE(requirements, '{}'),
		        COALESCE(benefits, '{}'),
		        COALESCE(employer_id, ''),
		        posted_date
		 FROM jobs
		 WHERE is_active = true
		 ORDER BY posted_date DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var (
			j     job.Job
			jtype string
			ts    time.Time
		)
		if err := rows.Scan(
			&j.ID, &j.Role, &j.Company, &j.Location, &j.Salary, &jtype,
			&j.Description, &j.Requirements, &j.Benefits, &j.EmployerID, &ts,
		); err != nil {
			return nil, err
		}
		j.Type = job.EmploymentType(jtype)
		j.PostedDate = ts
		if j.Requirements == nil {
			j.Requirements = []string{}
		}
		if j.Benefits == nil {
			j.Benefits = []string{}
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
