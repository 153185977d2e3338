package store

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"talenthub/internal/domain/access"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/job"
)

type fakeBlobStore struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{m: make(map[string][]byte)}
}

func (f *fakeBlobStore) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.m[key]
	return b, ok, nil
}

func (f *fakeBlobStore) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[key] = value
	return nil
}

func (f *fakeBlobStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, key)
	return nil
}

func (f *fakeBlobStore) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.m[key]
	return ok
}

type fakeCatalog struct {
	jobs []job.Job
	err  error
}

func (f fakeCatalog) ListActiveJobs(context.Context) ([]job.Job, error) {
	return f.jobs, f.err
}

type recordingNotifier struct {
	mu     sync.Mutex
	topics []string
}

func (n *recordingNotifier) Notify(topic string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.topics = append(n.topics, topic)
}

func (n *recordingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.topics) == 0 {
		return ""
	}
	return n.topics[len(n.topics)-1]
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestStore() *Store {
	s := New(nil, nil, nil, testLogger())
	s.Load(context.Background())
	return s
}

func seedJob(s *Store, role, company, location, employerID string) job.Job {
	return s.CreateJob(job.Job{
		Role:       role,
		Company:    company,
		Location:   location,
		Type:       job.TypeFullTime,
		EmployerID: employerID,
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestVisibleJobs_FilterSemantics(t *testing.T) {
	s := newTestStore()
	seedJob(s, "Backend Engineer", "Acme", "Remote", "e1")
	seedJob(s, "Designer", "Globex", "Berlin", "e1")
	j3 := s.CreateJob(job.Job{
		Role:        "Support",
		Company:     "Initech",
		Location:    "Remote, EU",
		Type:        job.TypeContract,
		Description: "Help our backend team",
		EmployerID:  "e2",
	})

	got := s.VisibleJobs("backend", "")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for %q, got %d", "backend", len(got))
	}
	for _, j := range got {
		if j.Role == "Designer" {
			t.Fatalf("designer job should not match backend query")
		}
	}

	// Description matches count too.
	found := false
	for _, j := range got {
		if j.ID == j3.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("job matching on description was excluded")
	}

	got = s.VisibleJobs("backend", "remote")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches with location filter, got %d", len(got))
	}

	got = s.VisibleJobs("BACKEND", "BERLIN")
	if len(got) != 0 {
		t.Fatalf("AND-combined filters should exclude all, got %d", len(got))
	}

	if n := len(s.VisibleJobs("", "")); n != 3 {
		t.Fatalf("empty queries should match all 3 jobs, got %d", n)
	}
}

func TestApplyToJob_NoDedup(t *testing.T) {
	s := newTestStore()
	j := seedJob(s, "Backend Engineer", "Acme", "Remote", "e1")

	snap := application.CandidateSnapshot{CandidateID: "c1", Name: "Jane Doe", Email: "jane@x.com"}
	a1 := s.ApplyToJob(j.ID, snap)
	a2 := s.ApplyToJob(j.ID, snap)

	if a1.ID == a2.ID {
		t.Fatalf("two applies must create two distinct applications")
	}

	apps := s.ApplicationsForJob(j.ID)
	if len(apps) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(apps))
	}

	// Each is independently transitionable.
	s.ShortlistApplication(a1.ID)
	apps = s.ApplicationsForJob(j.ID)
	for _, a := range apps {
		switch a.ID {
		case a1.ID:
			if a.Status != application.StatusShortlisted {
				t.Fatalf("a1 expected shortlisted, got %s", a.Status)
			}
		case a2.ID:
			if a.Status != application.StatusPending {
				t.Fatalf("a2 expected pending, got %s", a.Status)
			}
		}
	}
}

func TestStatusTransitions_LastWriteWins(t *testing.T) {
	s := newTestStore()
	j := seedJob(s, "Backend Engineer", "Acme", "Remote", "e1")
	a := s.ApplyToJob(j.ID, application.CandidateSnapshot{CandidateID: "c1", Email: "c1@x.com"})

	s.ShortlistApplication(a.ID)
	s.RejectApplication(a.ID)

	apps := s.ApplicationsForJob(j.ID)
	if len(apps) != 1 || apps[0].Status != application.StatusRejected {
		t.Fatalf("expected final status rejected, got %+v", apps)
	}

	// Terminal states are not enforced: re-shortlisting a rejected
	// application works.
	s.ShortlistApplication(a.ID)
	if got := s.ApplicationsForJob(j.ID)[0].Status; got != application.StatusShortlisted {
		t.Fatalf("expected shortlisted after un-reject, got %s", got)
	}
}

func TestStatusTransition_UnknownIDIsNoop(t *testing.T) {
	s := newTestStore()
	j := seedJob(s, "Backend Engineer", "Acme", "Remote", "e1")
	a := s.ApplyToJob(j.ID, application.CandidateSnapshot{CandidateID: "c1", Email: "c1@x.com"})

	s.ShortlistApplication("no-such-id")
	s.AddNoteToApplication("no-such-id", "ghost", "e1", "E One")

	apps := s.ApplicationsForJob(j.ID)
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	if apps[0].ID != a.ID || apps[0].Status != application.StatusPending || len(apps[0].Notes) != 0 {
		t.Fatalf("unknown-id mutations must not touch existing applications: %+v", apps[0])
	}
}

func TestDeleteJob_OrphansApplications(t *testing.T) {
	s := newTestStore()
	j := seedJob(s, "Backend Engineer", "Acme", "Remote", "e1")
	s.ApplyToJob(j.ID, application.CandidateSnapshot{CandidateID: "c1", Email: "c1@x.com"})

	s.DeleteJob(j.ID)

	if got := s.JobsByEmployer("e1"); len(got) != 0 {
		t.Fatalf("deleted job still listed for employer: %d", len(got))
	}
	if got := s.ApplicationsForJob(j.ID); len(got) != 1 {
		t.Fatalf("applications must survive job deletion, got %d", len(got))
	}
}

func TestApplicationsForCandidate_DualKey(t *testing.T) {
	s := newTestStore()
	j := seedJob(s, "Backend Engineer", "Acme", "Remote", "e1")

	// Applied before having an account: the email doubles as the id.
	s.ApplyToJob(j.ID, application.CandidateSnapshot{CandidateID: "jane@x.com", Email: "jane@x.com"})
	s.ApplyToJob(j.ID, application.CandidateSnapshot{CandidateID: "acct-1", Email: "jane@x.com"})

	if got := s.ApplicationsForCandidate("jane@x.com"); len(got) != 2 {
		t.Fatalf("email lookup expected 2, got %d", len(got))
	}
	if got := s.ApplicationsForCandidate("acct-1"); len(got) != 1 {
		t.Fatalf("id lookup expected 1, got %d", len(got))
	}
	if got := s.ApplicationsForCandidate("someone-else"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestSharedListings_ApprovedJoinOnly(t *testing.T) {
	s := newTestStore()
	j := seedJob(s, "Backend Engineer", "Acme", "Remote", "owner-1")

	req := s.RequestListingAccess("viewer-1", "Viewer One", j.ID, "owner-1")

	if got := s.SharedListings("viewer-1"); len(got) != 0 {
		t.Fatalf("pending request must not grant access, got %d", len(got))
	}

	s.ApproveAccessRequest(req.ID)
	got := s.SharedListings("viewer-1")
	if len(got) != 1 || got[0].ID != j.ID {
		t.Fatalf("approved request must grant access, got %+v", got)
	}
	if got := s.SharedListings("viewer-2"); len(got) != 0 {
		t.Fatalf("other requesters must not gain access")
	}

	// Flipping away from approved revokes implicitly.
	s.RejectAccessRequest(req.ID)
	if got := s.SharedListings("viewer-1"); len(got) != 0 {
		t.Fatalf("rejected request must revoke access, got %d", len(got))
	}

	// And back: re-approval restores it.
	s.ApproveAccessRequest(req.ID)
	if got := s.SharedListings("viewer-1"); len(got) != 1 {
		t.Fatalf("re-approved request must restore access, got %d", len(got))
	}
}

func TestAccessRequestsForOwner_IncludesHistorical(t *testing.T) {
	s := newTestStore()
	j1 := seedJob(s, "Backend Engineer", "Acme", "Remote", "owner-1")
	j2 := seedJob(s, "SRE", "Acme", "Remote", "owner-1")

	r1 := s.RequestListingAccess("viewer-1", "Viewer One", j1.ID, "owner-1")
	s.RequestListingAccess("viewer-2", "Viewer Two", j2.ID, "owner-1")
	s.RequestListingAccess("viewer-1", "Viewer One", "other-listing", "owner-2")

	s.RejectAccessRequest(r1.ID)

	got := s.AccessRequestsForOwner("owner-1")
	if len(got) != 2 {
		t.Fatalf("expected 2 requests for owner-1, got %d", len(got))
	}
	for _, r := range got {
		if r.OwnerID != "owner-1" {
			t.Fatalf("foreign request leaked into owner view: %+v", r)
		}
	}
}

func TestCreateJob_PrependsNewestFirst(t *testing.T) {
	s := newTestStore()
	seedJob(s, "First", "Acme", "Remote", "e1")
	j2 := seedJob(s, "Second", "Acme", "Remote", "e1")

	jobs := s.Jobs()
	if len(jobs) != 2 || jobs[0].ID != j2.ID {
		t.Fatalf("newest job must come first, got %+v", jobs)
	}
	if jobs[0].Requirements == nil || jobs[0].Benefits == nil {
		t.Fatalf("optional arrays must default to empty, not nil")
	}
}

func TestCatalogFetchFailure_StartsEmpty(t *testing.T) {
	s := New(fakeCatalog{err: context.DeadlineExceeded}, nil, nil, testLogger())
	s.Load(context.Background())

	if s.Loading() {
		t.Fatalf("loading must resolve even on fetch failure")
	}
	if got := s.Jobs(); len(got) != 0 {
		t.Fatalf("failed fetch must yield empty catalog, got %d", len(got))
	}
}

func TestMutations_NotifyTopics(t *testing.T) {
	n := &recordingNotifier{}
	s := New(nil, nil, n, testLogger())
	s.Load(context.Background())

	j := s.CreateJob(job.Job{Role: "Backend Engineer", Company: "Acme", Type: job.TypeFullTime, EmployerID: "e1"})
	if n.last() != TopicJobsUpdated {
		t.Fatalf("expected %s, got %s", TopicJobsUpdated, n.last())
	}

	s.ApplyToJob(j.ID, application.CandidateSnapshot{CandidateID: "c1", Email: "c1@x.com"})
	if n.last() != TopicApplicationsUpdated {
		t.Fatalf("expected %s, got %s", TopicApplicationsUpdated, n.last())
	}

	s.RequestListingAccess("viewer-1", "Viewer One", j.ID, "e1")
	if n.last() != TopicAccessUpdated {
		t.Fatalf("expected %s, got %s", TopicAccessUpdated, n.last())
	}
}

func TestQueries_ReturnCopies(t *testing.T) {
	s := newTestStore()
	j := seedJob(s, "Backend Engineer", "Acme", "Remote", "e1")
	a := s.ApplyToJob(j.ID, application.CandidateSnapshot{CandidateID: "c1", Email: "c1@x.com"})
	s.AddNoteToApplication(a.ID, "first", "e1", "E One")

	apps := s.ApplicationsForJob(j.ID)
	apps[0].Status = application.StatusRejected
	apps[0].Notes[0].Content = "tampered"

	fresh := s.ApplicationsForJob(j.ID)
	if fresh[0].Status != application.StatusPending {
		t.Fatalf("caller mutation leaked into store state")
	}
	if fresh[0].Notes[0].Content != "first" {
		t.Fatalf("caller note mutation leaked into store state")
	}

	jobs := s.Jobs()
	jobs[0].Requirements = append(jobs[0].Requirements, "tampered")
	if len(s.Jobs()[0].Requirements) != 0 {
		t.Fatalf("caller requirements mutation leaked into store state")
	}
}

func TestScenario_ApplyShortlistNote(t *testing.T) {
	s := newTestStore()
	j := s.CreateJob(job.Job{
		Role:       "Backend Engineer",
		Company:    "Acme",
		Location:   "Remote",
		Salary:     "$100k-$140k",
		Type:       job.TypeFullTime,
		EmployerID: "e1",
	})

	s.ApplyToJob(j.ID, application.CandidateSnapshot{
		CandidateID: "c1",
		Name:        "Jane Doe",
		Email:       "jane@x.com",
		Handle:      "@jane",
	})

	apps := s.ApplicationsForJob(j.ID)
	if len(apps) != 1 {
		t.Fatalf("expected 1 application, got %d", len(apps))
	}
	a := apps[0]
	if a.Status != application.StatusPending {
		t.Fatalf("expected pending, got %s", a.Status)
	}
	if a.JobID != j.ID || a.Candidate.Email != "jane@x.com" {
		t.Fatalf("unexpected application: %+v", a)
	}

	s.ShortlistApplication(a.ID)
	if got := s.ApplicationsForJob(j.ID)[0].Status; got != application.StatusShortlisted {
		t.Fatalf("expected shortlisted, got %s", got)
	}

	s.AddNoteToApplication(a.ID, "Great portfolio", "e1", "Eve Recruiter")
	notes := s.ApplicationsForJob(j.ID)[0].Notes
	if len(notes) != 1 || notes[0].Content != "Great portfolio" {
		t.Fatalf("expected one note with content, got %+v", notes)
	}
	if notes[0].AuthorName != "Eve Recruiter" || notes[0].ID == "" {
		t.Fatalf("note metadata missing: %+v", notes[0])
	}
}

func TestAccessStatusOverwrite_UnknownIDIsNoop(t *testing.T) {
	s := newTestStore()
	j := seedJob(s, "Backend Engineer", "Acme", "Remote", "owner-1")
	r := s.RequestListingAccess("viewer-1", "Viewer One", j.ID, "owner-1")

	s.ApproveAccessRequest("no-such-id")

	got := s.AccessRequestsForOwner("owner-1")
	if len(got) != 1 || got[0].ID != r.ID || got[0].Status != access.StatusPending {
		t.Fatalf("unknown-id approval must not touch existing requests: %+v", got)
	}
}
