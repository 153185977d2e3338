package store

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"talenthub/internal/domain/access"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/job"
)

func TestPersistence_RoundTripAcrossSessions(t *testing.T) {
	blobs := newFakeBlobStore()

	s1 := New(nil, blobs, nil, testLogger())
	s1.Load(context.Background())

	j := s1.CreateJob(job.Job{Role: "Backend Engineer", Company: "Acme", Type: job.TypeFullTime, EmployerID: "e1"})
	a := s1.ApplyToJob(j.ID, application.CandidateSnapshot{
		CandidateID: "c1",
		Name:        "Jane Doe",
		Email:       "jane@x.com",
	})
	s1.AddNoteToApplication(a.ID, "Great portfolio", "e1", "Eve Recruiter")
	r := s1.RequestListingAccess("viewer-1", "Viewer One", j.ID, "e1")
	s1.ApproveAccessRequest(r.ID)

	waitFor(t, func() bool {
		return blobs.has(keyApplications) && blobs.has(keyAccessRequests)
	})
	// Wait for the note write, not just the first apply write.
	waitFor(t, func() bool {
		b, _, _ := blobs.Get(keyApplications)
		return len(b) > 0 && containsSubstring(b, "Great portfolio")
	})
	waitFor(t, func() bool {
		b, _, _ := blobs.Get(keyAccessRequests)
		return len(b) > 0 && containsSubstring(b, "approved")
	})

	// Fresh session over the same local storage, no remote catalog.
	s2 := New(nil, blobs, nil, testLogger())
	s2.Load(context.Background())

	apps := s2.Applications()
	if len(apps) != 1 {
		t.Fatalf("expected 1 restored application, got %d", len(apps))
	}
	got := apps[0]
	if got.ID != a.ID || got.JobID != j.ID || got.Candidate.Email != "jane@x.com" {
		t.Fatalf("restored application mismatch: %+v", got)
	}
	if !got.AppliedDate.Equal(a.AppliedDate) {
		t.Fatalf("appliedDate not equivalent: %v vs %v", got.AppliedDate, a.AppliedDate)
	}
	if got.AppliedDate.UnixMilli() != a.AppliedDate.UnixMilli() {
		t.Fatalf("appliedDate lost millisecond precision")
	}
	if len(got.Notes) != 1 {
		t.Fatalf("expected 1 restored note, got %d", len(got.Notes))
	}
	orig := s1.Applications()[0].Notes[0]
	if !got.Notes[0].CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("note createdAt not equivalent: %v vs %v", got.Notes[0].CreatedAt, orig.CreatedAt)
	}

	reqs := s2.AccessRequestsForOwner("e1")
	if len(reqs) != 1 || reqs[0].Status != access.StatusApproved {
		t.Fatalf("restored access request mismatch: %+v", reqs)
	}
	// Jobs are remote-only: without a catalog the join has nothing to
	// resolve against, even though the approval survived.
	if shared := s2.SharedListings("viewer-1"); len(shared) != 0 {
		t.Fatalf("shared listings without a catalog should be empty, got %d", len(shared))
	}
}

func TestPersistence_CorruptBlobIsDropped(t *testing.T) {
	blobs := newFakeBlobStore()
	if err := blobs.Set(keyApplications, []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	if err := blobs.Set(keyAccessRequests, []byte("[{\"id\":")); err != nil {
		t.Fatal(err)
	}

	s := New(nil, blobs, nil, testLogger())
	s.Load(context.Background())

	if got := s.Applications(); len(got) != 0 {
		t.Fatalf("corrupt blob must yield empty collection, got %d", len(got))
	}
	if blobs.has(keyApplications) {
		t.Fatalf("corrupt applications key must be deleted outright")
	}
	if blobs.has(keyAccessRequests) {
		t.Fatalf("corrupt access requests key must be deleted outright")
	}
}

func TestPersistence_EmptyCollectionsNotWritten(t *testing.T) {
	blobs := newFakeBlobStore()
	s := New(nil, blobs, nil, testLogger())
	s.Load(context.Background())

	// A status overwrite on a missing id replaces the (empty) collection
	// but must not write an empty blob.
	s.ShortlistApplication("no-such-id")

	if blobs.has(keyApplications) {
		t.Fatalf("empty collection must not be persisted")
	}
}

func TestProfile_RoundTrip(t *testing.T) {
	blobs := newFakeBlobStore()
	s1 := New(nil, blobs, nil, testLogger())
	s1.Load(context.Background())

	s1.SetProfile(application.CandidateSnapshot{
		CandidateID: "c1",
		Name:        "Jane Doe",
		Email:       "jane@x.com",
		Handle:      "@jane",
	})
	waitFor(t, func() bool { return blobs.has(keyProfile) })

	s2 := New(nil, blobs, nil, testLogger())
	s2.Load(context.Background())

	snap, ok := s2.Profile()
	if !ok {
		t.Fatalf("profile must survive a session restart")
	}
	if snap.Name != "Jane Doe" || snap.Handle != "@jane" {
		t.Fatalf("restored profile mismatch: %+v", snap)
	}
}

func containsSubstring(b []byte, sub string) bool {
	return bytes.Contains(b, []byte(sub))
}

// slowFirstWriteStore stalls the first Set until released, so a snapshot
// written later can be forced to race a still-in-flight earlier one.
type slowFirstWriteStore struct {
	inner   *fakeBlobStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newSlowFirstWriteStore() *slowFirstWriteStore {
	return &slowFirstWriteStore{
		inner:   newFakeBlobStore(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (g *slowFirstWriteStore) Get(key string) ([]byte, bool, error) { return g.inner.Get(key) }
func (g *slowFirstWriteStore) Delete(key string) error              { return g.inner.Delete(key) }

func (g *slowFirstWriteStore) Set(key string, value []byte) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.inner.Set(key, value)
}

func TestPersistence_SlowWriteDoesNotLoseLaterStatus(t *testing.T) {
	blobs := newSlowFirstWriteStore()
	s := New(nil, blobs, nil, testLogger())
	s.Load(context.Background())

	app := s.ApplyToJob("job-1", application.CandidateSnapshot{
		CandidateID: "c1",
		Email:       "jane@x.com",
	})

	// The pending-status write is now stalled inside Set.
	<-blobs.entered
	s.ShortlistApplication(app.ID)
	close(blobs.release)

	waitFor(t, func() bool {
		b, _, _ := blobs.Get(keyApplications)
		return containsSubstring(b, `"status":"shortlisted"`)
	})
	b, _, _ := blobs.Get(keyApplications)
	if containsSubstring(b, `"status":"pending"`) {
		t.Fatalf("durable blob kept the stale pending snapshot: %s", b)
	}
}
