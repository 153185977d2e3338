package store

import (
	"encoding/json"

	"talenthub/internal/domain/application"
)

// Profile returns the saved session candidate profile, when one exists. The
// apply flow uses it to prefill the snapshot captured on an application.
func (s *Store) Profile() (application.CandidateSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return application.CandidateSnapshot{}, false
	}
	return *s.profile, true
}

// SetProfile saves the session candidate profile and mirrors it to local
// storage. Existing applications keep their apply-time snapshots.
func (s *Store) SetProfile(snap application.CandidateSnapshot) {
	s.mu.Lock()
	s.profile = &snap
	if s.blobs != nil {
		s.queueBlob(keyProfile, candidateRecord(snap))
	}
	s.mu.Unlock()
}

func (s *Store) loadProfile() *application.CandidateSnapshot {
	b, ok := s.readBlob(keyProfile)
	if !ok {
		return nil
	}

	var rec candidateRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		s.logger.Printf("[Persist] corrupt profile blob, dropping key: %v", err)
		s.deleteBlob(keyProfile)
		return nil
	}

	snap := application.CandidateSnapshot(rec)
	return &snap
}
