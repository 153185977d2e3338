package handler

import (
	"time"

	"talenthub/internal/delivery/http/dto"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/domain/access"
	"talenthub/internal/domain/user"
	"talenthub/internal/pkg/response"
	"talenthub/internal/store"

	"github.com/gofiber/fiber/v3"
)

type AccessHandler struct {
	store *store.Store
	users user.Repository
}

func NewAccessHandler(st *store.Store, users user.Repository) *AccessHandler {
	return &AccessHandler{store: st, users: users}
}

// HandleRequestAccess files a request to view another recruiter's listing.
// The owner is resolved from the catalog, not trusted from the body.
func (h *AccessHandler) HandleRequestAccess(c fiber.Ctx) error {
	requesterID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.RequestAccessRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.ListingID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "listing_id is required", nil, nil)
	}

	var ownerID string
	for _, j := range h.store.Jobs() {
		if j.ID == req.ListingID {
			ownerID = j.EmployerID
			break
		}
	}
	if ownerID == "" {
		return middleware.NewAppError(fiber.StatusNotFound, "listing not found", nil, nil)
	}
	if ownerID == requesterID {
		return middleware.NewAppError(fiber.StatusBadRequest, "cannot request access to your own listing", nil, nil)
	}

	created := h.store.RequestListingAccess(requesterID, displayNameFromCtx(c, h.users), req.ListingID, ownerID)
	return response.Success(c, fiber.StatusCreated, response.MessageOK, mapAccessRequest(created))
}

// HandleApprove flips a request to approved. Only the owning recruiter may
// decide; the overwrite itself is unguarded, so a rejected request can be
// approved later.
func (h *AccessHandler) HandleApprove(c fiber.Ctx) error {
	return h.decide(c, true)
}

func (h *AccessHandler) HandleReject(c fiber.Ctx) error {
	return h.decide(c, false)
}

func (h *AccessHandler) decide(c fiber.Ctx, approve bool) error {
	ownerID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	id := c.Params("id")
	owned := false
	for _, r := range h.store.AccessRequestsForOwner(ownerID) {
		if r.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		return middleware.NewAppError(fiber.StatusNotFound, "access request not found", nil, nil)
	}

	if approve {
		h.store.ApproveAccessRequest(id)
	} else {
		h.store.RejectAccessRequest(id)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

// HandleOwnerRequests lists every request against the caller's listings,
// historical decisions included.
func (h *AccessHandler) HandleOwnerRequests(c fiber.Ctx) error {
	ownerID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	reqs := h.store.AccessRequestsForOwner(ownerID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapAccessRequests(reqs))
}

func (h *AccessHandler) HandleMyRequests(c fiber.Ctx) error {
	requesterID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	reqs := h.store.AccessRequestsForRequester(requesterID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapAccessRequests(reqs))
}

// HandleSharedListings returns the jobs the caller can read through
// approved requests. Access is recomputed per call, so revocation is
// immediate.
func (h *AccessHandler) HandleSharedListings(c fiber.Ctx) error {
	requesterID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	jobs := h.store.SharedListings(requesterID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapJobs(jobs))
}

func mapAccessRequest(r access.Request) dto.AccessRequestResponse {
	return dto.AccessRequestResponse{
		ID:            r.ID,
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
		ListingID:     r.ListingID,
		OwnerID:       r.OwnerID,
		Status:        string(r.Status),
		RequestedAt:   r.RequestedAt.UTC().Format(time.RFC3339),
	}
}

func mapAccessRequests(reqs []access.Request) []dto.AccessRequestResponse {
	out := make([]dto.AccessRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, mapAccessRequest(r))
	}
	return out
}
