package application

import "time"

type Status string

const (
	StatusPending     Status = "pending"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
)

// CandidateSnapshot is the candidate's data captured at apply-time. It is
// intentionally decoupled from the candidate's live profile.
type CandidateSnapshot struct {
	CandidateID string
	Name        string
	Email       string
	Avatar      string
	Handle      string
	CVURL       string
	Bio         string
	Location    string
	Website     string
}

type Note struct {
	ID         string
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  time.Time
}

// Application is one candidate submission against one Job. Status starts at
// pending; shortlist/reject are unguarded overwrites, so an application can
// move between shortlisted and rejected freely.
type Application struct {
	ID          string
	JobID       string
	Candidate   CandidateSnapshot
	Status      Status
	AppliedDate time.Time
	Notes       []Note
}
