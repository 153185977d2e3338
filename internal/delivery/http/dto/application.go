package dto

type CandidateResponse struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar,omitempty"`
	Handle      string `json:"handle,omitempty"`
	CVURL       string `json:"cv_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	Website     string `json:"website,omitempty"`
}

type NoteResponse struct {
	ID         string `json:"id"`
	AuthorID   string `json:"author_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at"`
}

type ApplicationResponse struct {
	ID          string            `json:"id"`
	JobID       string            `json:"job_id"`
	Candidate   CandidateResponse `json:"candidate"`
	Status      string            `json:"status"`
	AppliedDate string            `json:"applied_date"`
	Notes       []NoteResponse    `json:"notes"`
}

type ApplyRequest struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar"`
	Handle      string `json:"handle"`
	CVURL       string `json:"cv_url"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	Website     string `json:"website"`
}

type AddNoteRequest struct {
	Content string `json:"content"`
}
