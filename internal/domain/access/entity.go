package access

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request is a recruiter-to-recruiter ask for read access to another
// recruiter's listing. Approval grants access by join: a listing is shared
// with the requester while the request's status is exactly approved.
type Request struct {
	ID            string
	RequesterID   string
	RequesterName string
	ListingID     string
	OwnerID       string
	Status        Status
	RequestedAt   time.Time
}
