package job

import "time"

type EmploymentType string

const (
	TypeFullTime  EmploymentType = "Full-time"
	TypePartTime  EmploymentType = "Part-time"
	TypeContract  EmploymentType = "Contract"
	TypeFreelance EmploymentType = "Freelance"
)

// Job is a posted position. Immutable after creation except for deletion
// by its owning employer.
type Job struct {
	ID           string
	Role         string
	Company      string
	Location     string
	Salary       string
	Type         EmploymentType
	Description  string
	Requirements []string
	Benefits     []string
	EmployerID   string
	PostedDate   time.Time
}

func IsValidType(t EmploymentType) bool {
	switch t {
	case TypeFullTime, TypePartTime, TypeContract, TypeFreelance:
		return true
	}
	return false
}
