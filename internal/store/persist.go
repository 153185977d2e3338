package store

import (
	"encoding/json"
	"time"

	"talenthub/internal/domain/access"
	"talenthub/internal/domain/application"
)

// Blob keys in local durable storage. The values are JSON arrays with date
// fields as ISO-8601 strings, matching what earlier sessions wrote.
const (
	keyApplications   = "talenthub.applications"
	keyAccessRequests = "talenthub.access_requests"
	keyProfile        = "talenthub.profile"
)

type noteRecord struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type candidateRecord struct {
	CandidateID string `json:"candidateId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Avatar      string `json:"avatar,omitempty"`
	Handle      string `json:"handle,omitempty"`
	CVURL       string `json:"cvUrl,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	Website     string `json:"website,omitempty"`
}

type applicationRecord struct {
	ID          string          `json:"id"`
	JobID       string          `json:"jobId"`
	Candidate   candidateRecord `json:"candidate"`
	Status      string          `json:"status"`
	AppliedDate time.Time       `json:"appliedDate"`
	Notes       []noteRecord    `json:"notes"`
}

type accessRequestRecord struct {
	ID            string    `json:"id"`
	RequesterID   string    `json:"requesterId"`
	RequesterName string    `json:"requesterName"`
	ListingID     string    `json:"listingId"`
	OwnerID       string    `json:"ownerId"`
	Status        string    `json:"status"`
	RequestedAt   time.Time `json:"requestedAt"`
}

func (s *Store) loadApplications() []application.Application {
	b, ok := s.readBlob(keyApplications)
	if !ok {
		return []application.Application{}
	}

	var recs []applicationRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		// Destructive recovery: a corrupt blob is dropped whole, no
		// partial salvage.
		s.logger.Printf("[Persist] corrupt applications blob, dropping key: %v", err)
		s.deleteBlob(keyApplications)
		return []application.Application{}
	}

	out := make([]application.Application, 0, len(recs))
	for _, r := range recs {
		out = append(out, applicationFromRecord(r))
	}
	return out
}

func (s *Store) loadAccessRequests() []access.Request {
	b, ok := s.readBlob(keyAccessRequests)
	if !ok {
		return []access.Request{}
	}

	var recs []accessRequestRecord
	if err := json.Unmarshal(b, &recs); err != nil {
		s.logger.Printf("[Persist] corrupt access requests blob, dropping key: %v", err)
		s.deleteBlob(keyAccessRequests)
		return []access.Request{}
	}

	out := make([]access.Request, 0, len(recs))
	for _, r := range recs {
		out = append(out, access.Request{
			ID:            r.ID,
			RequesterID:   r.RequesterID,
			RequesterName: r.RequesterName,
			ListingID:     r.ListingID,
			OwnerID:       r.OwnerID,
			Status:        access.Status(r.Status),
			RequestedAt:   r.RequestedAt,
		})
	}
	return out
}

// persistApplicationsAsync mirrors the collection to local storage without
// blocking the caller. Empty collections are skipped; failures are logged
// and never surfaced, the state simply stays memory-only for the session.
// Callers hold s.mu, which is what orders the queued snapshots.
func (s *Store) persistApplicationsAsync(snapshot []application.Application) {
	if s.blobs == nil || len(snapshot) == 0 {
		return
	}
	recs := make([]applicationRecord, 0, len(snapshot))
	for _, a := range snapshot {
		recs = append(recs, applicationToRecord(a))
	}
	s.queueBlob(keyApplications, recs)
}

func (s *Store) persistAccessRequestsAsync(snapshot []access.Request) {
	if s.blobs == nil || len(snapshot) == 0 {
		return
	}
	recs := make([]accessRequestRecord, 0, len(snapshot))
	for _, r := range snapshot {
		recs = append(recs, accessRequestRecord{
			ID:            r.ID,
			RequesterID:   r.RequesterID,
			RequesterName: r.RequesterName,
			ListingID:     r.ListingID,
			OwnerID:       r.OwnerID,
			Status:        string(r.Status),
			RequestedAt:   r.RequestedAt,
		})
	}
	s.queueBlob(keyAccessRequests, recs)
}

// queueBlob hands a snapshot to the persist goroutine. A newer snapshot of
// the same key replaces a queued one, so the blob converges on the latest
// state; a slow write can never be overtaken by an older snapshot.
func (s *Store) queueBlob(key string, value any) {
	s.persistMu.Lock()
	s.pending[key] = value
	s.persistMu.Unlock()

	select {
	case s.persistCh <- struct{}{}:
	default:
	}
}

func (s *Store) persistLoop() {
	for range s.persistCh {
		for {
			s.persistMu.Lock()
			var (
				key   string
				value any
				found bool
			)
			for k, v := range s.pending {
				key, value, found = k, v, true
				delete(s.pending, k)
				break
			}
			s.persistMu.Unlock()
			if !found {
				break
			}
			s.writeBlob(key, value)
		}
	}
}

func (s *Store) readBlob(key string) ([]byte, bool) {
	if s.blobs == nil {
		return nil, false
	}
	b, ok, err := s.blobs.Get(key)
	if err != nil {
		s.logger.Printf("[Persist] read failed key=%s: %v", key, err)
		return nil, false
	}
	return b, ok
}

func (s *Store) writeBlob(key string, value any) {
	b, err := json.Marshal(value)
	if err != nil {
		s.logger.Printf("[Persist] encode failed key=%s: %v", key, err)
		return
	}
	if err := s.blobs.Set(key, b); err != nil {
		s.logger.Printf("[Persist] write failed key=%s: %v", key, err)
	}
}

func (s *Store) deleteBlob(key string) {
	if s.blobs == nil {
		return
	}
	if err := s.blobs.Delete(key); err != nil {
		s.logger.Printf("[Persist] delete failed key=%s: %v", key, err)
	}
}

func applicationToRecord(a application.Application) applicationRecord {
	notes := make([]noteRecord, 0, len(a.Notes))
	for _, n := range a.Notes {
		notes = append(notes, noteRecord(n))
	}
	return applicationRecord{
		ID:          a.ID,
		JobID:       a.JobID,
		Candidate:   candidateRecord(a.Candidate),
		Status:      string(a.Status),
		AppliedDate: a.AppliedDate,
		Notes:       notes,
	}
}

func applicationFromRecord(r applicationRecord) application.Application {
	notes := make([]application.Note, 0, len(r.Notes))
	for _, n := range r.Notes {
		notes = append(notes, application.Note(n))
	}
	return application.Application{
		ID:          r.ID,
		JobID:       r.JobID,
		Candidate:   application.CandidateSnapshot(r.Candidate),
		Status:      application.Status(r.Status),
		AppliedDate: r.AppliedDate,
		Notes:       notes,
	}
}
