package store

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"talenthub/internal/domain/access"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/job"
)

// Change topics emitted after mutations. The websocket hub fans these out to
// connected presentation clients.
const (
	TopicJobsUpdated         = "jobs_updated"
	TopicApplicationsUpdated = "applications_updated"
	TopicAccessUpdated       = "access_updated"
)

// CatalogSource is the remote system of record for Jobs. It is read once at
// startup; Jobs are never written back through it.
type CatalogSource interface {
	ListActiveJobs(ctx context.Context) ([]job.Job, error)
}

// BlobStore holds keyed JSON blobs in local durable storage.
type BlobStore interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Notifier receives a topic after every mutation that changed state.
type Notifier interface {
	Notify(topic string)
}

// Store is the single in-memory authority for Jobs, Applications and access
// Requests during a session. Every mutation installs a fresh collection
// slice; queries hand out copies, never aliases into live state.
type Store struct {
	mu             sync.RWMutex
	jobs           []job.Job
	applications   []application.Application
	accessRequests []access.Request
	profile        *application.CandidateSnapshot
	loading        bool

	catalog  CatalogSource
	blobs    BlobStore
	notifier Notifier
	logger   *log.Logger

	// Durable writes go through a single goroutine so snapshots land in
	// mutation order; pending holds the newest unwritten snapshot per key.
	persistMu sync.Mutex
	pending   map[string]any
	persistCh chan struct{}

	now func() time.Time
}

func New(catalog CatalogSource, blobs BlobStore, notifier Notifier, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	s := &Store{
		catalog:   catalog,
		blobs:     blobs,
		notifier:  notifier,
		logger:    logger,
		loading:   true,
		pending:   make(map[string]any),
		persistCh: make(chan struct{}, 1),
		now:       time.Now,
	}
	go s.persistLoop()
	return s
}

// Load populates the session state: Jobs from the remote catalog,
// Applications and access Requests from local storage. A catalog failure
// yields an empty job list for the session; it is not retried and there is
// no cached fallback.
func (s *Store) Load(ctx context.Context) {
	var jobs []job.Job
	if s.catalog != nil {
		loaded, err := s.catalog.ListActiveJobs(ctx)
		if err != nil {
			s.logger.Printf("[Store] job catalog fetch failed, starting empty: %v", err)
		} else {
			jobs = loaded
		}
	} else {
		s.logger.Printf("[Store] no job catalog configured, starting empty")
	}

	apps := s.loadApplications()
	reqs := s.loadAccessRequests()
	profile := s.loadProfile()

	s.mu.Lock()
	s.jobs = jobs
	s.applications = apps
	s.accessRequests = reqs
	s.profile = profile
	s.loading = false
	s.mu.Unlock()

	s.logger.Printf("[Store] session loaded | jobs=%d applications=%d access_requests=%d", len(jobs), len(apps), len(reqs))
}

// Loading reports whether the initial catalog fetch has resolved yet.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Jobs returns the full session catalog, newest first.
func (s *Store) Jobs() []job.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneJobs(s.jobs)
}

// VisibleJobs filters the catalog with two AND-combined case-insensitive
// substring matches: search against role, company and description; location
// against the location field. Empty queries match everything.
func (s *Store) VisibleJobs(search, location string) []job.Job {
	search = strings.ToLower(strings.TrimSpace(search))
	location = strings.ToLower(strings.TrimSpace(location))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]job.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if search != "" &&
			!strings.Contains(strings.ToLower(j.Role), search) &&
			!strings.Contains(strings.ToLower(j.Company), search) &&
			!strings.Contains(strings.ToLower(j.Description), search) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(j.Location), location) {
			continue
		}
		out = append(out, cloneJob(j))
	}
	return out
}

// Applications returns the full application collection in insertion order.
func (s *Store) Applications() []application.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneApplications(s.applications)
}

// ApplicationsForJob returns applications against one job, in insertion
// order. Applications survive their job's deletion, so this can return rows
// for a job id no longer in the catalog.
func (s *Store) ApplicationsForJob(jobID string) []application.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]application.Application, 0)
	for _, a := range s.applications {
		if a.JobID == jobID {
			out = append(out, cloneApplication(a))
		}
	}
	return out
}

// ApplicationsForCandidate matches on candidate id or candidate email. The
// dual key covers users who applied before they had an account id.
func (s *Store) ApplicationsForCandidate(candidateID string) []application.Application {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]application.Application, 0)
	for _, a := range s.applications {
		if a.Candidate.CandidateID == candidateID || a.Candidate.Email == candidateID {
			out = append(out, cloneApplication(a))
		}
	}
	return out
}

func (s *Store) JobsByEmployer(employerID string) []job.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]job.Job, 0)
	for _, j := range s.jobs {
		if j.EmployerID == employerID {
			out = append(out, cloneJob(j))
		}
	}
	return out
}

// SharedListings returns jobs the requester can read through an approved
// access request. Access is computed by join on every call: flipping a
// request's status away from approved revokes it implicitly.
func (s *Store) SharedListings(requesterID string) []job.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()

	approved := make(map[string]bool)
	for _, r := range s.accessRequests {
		if r.RequesterID == requesterID && r.Status == access.StatusApproved {
			approved[r.ListingID] = true
		}
	}

	out := make([]job.Job, 0, len(approved))
	for _, j := range s.jobs {
		if approved[j.ID] {
			out = append(out, cloneJob(j))
		}
	}
	return out
}

// AccessRequestsForOwner returns every request targeting the owner's
// listings, historical ones included.
func (s *Store) AccessRequestsForOwner(ownerID string) []access.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]access.Request, 0)
	for _, r := range s.accessRequests {
		if r.OwnerID == ownerID {
			out = append(out, r)
		}
	}
	return out
}

// AccessRequestsForRequester returns every request the requester has filed.
func (s *Store) AccessRequestsForRequester(requesterID string) []access.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]access.Request, 0)
	for _, r := range s.accessRequests {
		if r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out
}

// ApplyToJob records a new pending application carrying the candidate
// snapshot verbatim. Applying twice creates two distinct applications; there
// is deliberately no (candidate, job) uniqueness check.
func (s *Store) ApplyToJob(jobID string, snap application.CandidateSnapshot) application.Application {
	now := s.now()
	app := application.Application{
		ID:          newEntityID(now),
		JobID:       jobID,
		Candidate:   snap,
		Status:      application.StatusPending,
		AppliedDate: now,
		Notes:       []application.Note{},
	}

	s.mu.Lock()
	next := make([]application.Application, 0, len(s.applications)+1)
	next = append(next, s.applications...)
	next = append(next, app)
	s.applications = next
	s.persistApplicationsAsync(next)
	s.mu.Unlock()

	s.notify(TopicApplicationsUpdated)
	return cloneApplication(app)
}

// ShortlistApplication overwrites the application's status. Unknown ids are
// ignored; an already-rejected application can be shortlisted again.
func (s *Store) ShortlistApplication(id string) {
	s.setApplicationStatus(id, application.StatusShortlisted)
}

// RejectApplication overwrites the application's status with the same
// unguarded semantics as ShortlistApplication.
func (s *Store) RejectApplication(id string) {
	s.setApplicationStatus(id, application.StatusRejected)
}

func (s *Store) setApplicationStatus(id string, status application.Status) {
	s.mu.Lock()
	next := make([]application.Application, len(s.applications))
	for i, a := range s.applications {
		if a.ID == id {
			a.Status = status
		}
		next[i] = a
	}
	s.applications = next
	s.persistApplicationsAsync(next)
	s.mu.Unlock()

	s.notify(TopicApplicationsUpdated)
}

// AddNoteToApplication appends a note to the target application. Unknown ids
// are ignored. Content trimming is the caller's concern.
func (s *Store) AddNoteToApplication(id, content, authorID, authorName string) {
	now := s.now()
	note := application.Note{
		ID:         newNoteID(now),
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
		CreatedAt:  now,
	}

	s.mu.Lock()
	next := make([]application.Application, len(s.applications))
	for i, a := range s.applications {
		if a.ID == id {
			notes := make([]application.Note, 0, len(a.Notes)+1)
			notes = append(notes, a.Notes...)
			notes = append(notes, note)
			a.Notes = notes
		}
		next[i] = a
	}
	s.applications = next
	s.persistApplicationsAsync(next)
	s.mu.Unlock()

	s.notify(TopicApplicationsUpdated)
}

// CreateJob adds a job to the session catalog with a fresh id and the
// current time as posting date. The catalog stays newest-first by prepending
// rather than sorting. Jobs are not written back to the remote catalog.
func (s *Store) CreateJob(j job.Job) job.Job {
	now := s.now()
	j.ID = newEntityID(now)
	j.PostedDate = now
	if j.Requirements == nil {
		j.Requirements = []string{}
	}
	if j.Benefits == nil {
		j.Benefits = []string{}
	}

	s.mu.Lock()
	next := make([]job.Job, 0, len(s.jobs)+1)
	next = append(next, j)
	next = append(next, s.jobs...)
	s.jobs = next
	s.mu.Unlock()

	s.notify(TopicJobsUpdated)
	return cloneJob(j)
}

// DeleteJob removes the job from the catalog. Its applications are kept:
// they stay queryable by job id but no longer resolve to a job when joined
// for display. That orphaning is accepted behavior, not a bug.
func (s *Store) DeleteJob(id string) {
	s.mu.Lock()
	next := make([]job.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		if j.ID == id {
			continue
		}
		next = append(next, j)
	}
	s.jobs = next
	s.mu.Unlock()

	s.notify(TopicJobsUpdated)
}

// RequestListingAccess files a pending request from one recruiter to view
// another's listing.
func (s *Store) RequestListingAccess(requesterID, requesterName, listingID, ownerID string) access.Request {
	now := s.now()
	req := access.Request{
		ID:            newEntityID(now),
		RequesterID:   requesterID,
		RequesterName: requesterName,
		ListingID:     listingID,
		OwnerID:       ownerID,
		Status:        access.StatusPending,
		RequestedAt:   now,
	}

	s.mu.Lock()
	next := make([]access.Request, 0, len(s.accessRequests)+1)
	next = append(next, s.accessRequests...)
	next = append(next, req)
	s.accessRequests = next
	s.persistAccessRequestsAsync(next)
	s.mu.Unlock()

	s.notify(TopicAccessUpdated)
	return req
}

// ApproveAccessRequest overwrites the request's status; unknown ids are
// ignored and a rejected request can be re-approved.
func (s *Store) ApproveAccessRequest(id string) {
	s.setAccessRequestStatus(id, access.StatusApproved)
}

// RejectAccessRequest overwrites the request's status with the same
// unguarded semantics as ApproveAccessRequest.
func (s *Store) RejectAccessRequest(id string) {
	s.setAccessRequestStatus(id, access.StatusRejected)
}

func (s *Store) setAccessRequestStatus(id string, status access.Status) {
	s.mu.Lock()
	next := make([]access.Request, len(s.accessRequests))
	for i, r := range s.accessRequests {
		if r.ID == id {
			r.Status = status
		}
		next[i] = r
	}
	s.accessRequests = next
	s.persistAccessRequestsAsync(next)
	s.mu.Unlock()

	s.notify(TopicAccessUpdated)
}

func (s *Store) notify(topic string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(topic)
}

func cloneJob(j job.Job) job.Job {
	if j.Requirements != nil {
		j.Requirements = append([]string(nil), j.Requirements...)
	}
	if j.Benefits != nil {
		j.Benefits = append([]string(nil), j.Benefits...)
	}
	return j
}

func cloneJobs(jobs []job.Job) []job.Job {
	out := make([]job.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, cloneJob(j))
	}
	return out
}

func cloneApplication(a application.Application) application.Application {
	if a.Notes != nil {
		a.Notes = append([]application.Note(nil), a.Notes...)
	}
	return a
}

func cloneApplications(apps []application.Application) []application.Application {
	out := make([]application.Application, 0, len(apps))
	for _, a := range apps {
		out = append(out, cloneApplication(a))
	}
	return out
}
