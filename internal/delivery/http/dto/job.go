package dto

type JobResponse struct {
	ID           string   `json:"id"`
	Role         string   `json:"role"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Salary       string   `json:"salary"`
	Type         string   `json:"type"`
	Description  string   `json:"description,omitempty"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
	EmployerID   string   `json:"employer_id"`
	PostedDate   string   `json:"posted_date"`
}

type CreateJobRequest struct {
	Role         string   `json:"role"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Salary       string   `json:"salary"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
}
