package handler

import (
	"strings"
	"time"

	"talenthub/internal/delivery/http/dto"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/domain/application"
	"talenthub/internal/domain/user"
	"talenthub/internal/pkg/response"
	"talenthub/internal/store"

	"github.com/gofiber/fiber/v3"
)

type ApplicationsHandler struct {
	store *store.Store
	users user.Repository
}

func NewApplicationsHandler(st *store.Store, users user.Repository) *ApplicationsHandler {
	return &ApplicationsHandler{store: st, users: users}
}

// HandleApply records an application against a job. It is open to
// unauthenticated candidates: without an account id the email doubles as
// the candidate identifier, which the dual-key candidate lookup relies on.
func (h *ApplicationsHandler) HandleApply(c fiber.Ctx) error {
	jobID := c.Params("id")

	var req dto.ApplyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if strings.TrimSpace(req.Email) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "email is required", nil, nil)
	}

	snap := application.CandidateSnapshot{
		CandidateID: req.CandidateID,
		Name:        req.Name,
		Email:       req.Email,
		Avatar:      req.Avatar,
		Handle:      req.Handle,
		CVURL:       req.CVURL,
		Bio:         req.Bio,
		Location:    req.Location,
		Website:     req.Website,
	}
	if snap.CandidateID == "" {
		snap.CandidateID = snap.Email
	}

	app := h.store.ApplyToJob(jobID, snap)
	return response.Success(c, fiber.StatusCreated, response.MessageOK, mapApplication(app))
}

// HandleApplicationsForJob serves the employer's applicant list. The owner
// sees it always; other recruiters only through an approved access request.
func (h *ApplicationsHandler) HandleApplicationsForJob(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	jobID := c.Params("id")

	if !h.canViewApplications(jobID, userID) {
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
	}

	apps := h.store.ApplicationsForJob(jobID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapApplications(apps))
}

// HandleMyApplications returns the candidate's applications, matched by
// account id and by email so pre-account applications still show up.
func (h *ApplicationsHandler) HandleMyApplications(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	apps := h.store.ApplicationsForCandidate(userID)
	if email := emailFromCtx(c); email != "" {
		seen := make(map[string]bool, len(apps))
		for _, a := range apps {
			seen[a.ID] = true
		}
		for _, a := range h.store.ApplicationsForCandidate(email) {
			if !seen[a.ID] {
				apps = append(apps, a)
			}
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, mapApplications(apps))
}

func (h *ApplicationsHandler) HandleShortlist(c fiber.Ctx) error {
	if _, err := userIDFromCtx(c); err != nil {
		return err
	}
	h.store.ShortlistApplication(c.Params("id"))
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ApplicationsHandler) HandleReject(c fiber.Ctx) error {
	if _, err := userIDFromCtx(c); err != nil {
		return err
	}
	h.store.RejectApplication(c.Params("id"))
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// HandleAddNote appends a recruiter note. Empty content is rejected here at
// the call site; the store itself does not police it.
func (h *ApplicationsHandler) HandleAddNote(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.AddNoteRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "note content is required", nil, nil)
	}

	h.store.AddNoteToApplication(c.Params("id"), content, userID, displayNameFromCtx(c, h.users))
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *ApplicationsHandler) canViewApplications(jobID, userID string) bool {
	for _, j := range h.store.JobsByEmployer(userID) {
		if j.ID == jobID {
			return true
		}
	}
	for _, j := range h.store.SharedListings(userID) {
		if j.ID == jobID {
			return true
		}
	}
	// A deleted job has no owner row to check, so its orphaned
	// applications are not viewable through this endpoint.
	return false
}

func mapApplication(a application.Application) dto.ApplicationResponse {
	notes := make([]dto.NoteResponse, 0, len(a.Notes))
	for _, n := range a.Notes {
		notes = append(notes, dto.NoteResponse{
			ID:         n.ID,
			AuthorID:   n.AuthorID,
			AuthorName: n.AuthorName,
			Content:    n.Content,
			CreatedAt:  n.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return dto.ApplicationResponse{
		ID:    a.ID,
		JobID: a.JobID,
		Candidate: dto.CandidateResponse{
			CandidateID: a.Candidate.CandidateID,
			Name:        a.Candidate.Name,
			Email:       a.Candidate.Email,
			Avatar:      a.Candidate.Avatar,
			Handle:      a.Candidate.Handle,
			CVURL:       a.Candidate.CVURL,
			Bio:         a.Candidate.Bio,
			Location:    a.Candidate.Location,
			Website:     a.Candidate.Website,
		},
		Status:      string(a.Status),
		AppliedDate: a.AppliedDate.UTC().Format(time.RFC3339),
		Notes:       notes,
	}
}

func mapApplications(apps []application.Application) []dto.ApplicationResponse {
	out := make([]dto.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, mapApplication(a))
	}
	return out
}
