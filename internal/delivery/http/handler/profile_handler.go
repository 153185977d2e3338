package handler

import (
	"strings"

	"talenthub/internal/delivery/http/dto"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/domain/application"
	"talenthub/internal/pkg/response"
	"talenthub/internal/store"

	"github.com/gofiber/fiber/v3"
)

// ProfileHandler exposes the session candidate profile: the snapshot the
// apply flow prefills from.
type ProfileHandler struct {
	store *store.Store
}

func NewProfileHandler(st *store.Store) *ProfileHandler {
	return &ProfileHandler{store: st}
}

func (h *ProfileHandler) HandleGetProfile(c fiber.Ctx) error {
	snap, ok := h.store.Profile()
	if !ok {
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapCandidate(snap))
}

func (h *ProfileHandler) HandleSetProfile(c fiber.Ctx) error {
	userID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.ApplyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if strings.TrimSpace(req.Email) == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "email is required", nil, nil)
	}

	snap := application.CandidateSnapshot{
		CandidateID: userID,
		Name:        req.Name,
		Email:       req.Email,
		Avatar:      req.Avatar,
		Handle:      req.Handle,
		CVURL:       req.CVURL,
		Bio:         req.Bio,
		Location:    req.Location,
		Website:     req.Website,
	}
	h.store.SetProfile(snap)
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapCandidate(snap))
}

func mapCandidate(snap application.CandidateSnapshot) dto.CandidateResponse {
	return dto.CandidateResponse{
		CandidateID: snap.CandidateID,
		Name:        snap.Name,
		Email:       snap.Email,
		Avatar:      snap.Avatar,
		Handle:      snap.Handle,
		CVURL:       snap.CVURL,
		Bio:         snap.Bio,
		Location:    snap.Location,
		Website:     snap.Website,
	}
}
