package handler

import (
	"time"

	"talenthub/internal/delivery/http/dto"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/domain/job"
	"talenthub/internal/pkg/response"
	"talenthub/internal/store"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	store *store.Store
}

func NewJobsHandler(st *store.Store) *JobsHandler {
	return &JobsHandler{store: st}
}

// HandleListJobs is the public catalog view: both filters are AND-combined
// case-insensitive substring matches.
func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	jobs := h.store.VisibleJobs(c.Query("search"), c.Query("location"))
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapJobs(jobs))
}

func (h *JobsHandler) HandleMyJobs(c fiber.Ctx) error {
	employerID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}
	jobs := h.store.JobsByEmployer(employerID)
	return response.Success(c, fiber.StatusOK, response.MessageOK, mapJobs(jobs))
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	employerID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	var req dto.CreateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if req.Role == "" || req.Company == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "role and company are required", nil, nil)
	}
	if !job.IsValidType(job.EmploymentType(req.Type)) {
		return middleware.NewAppError(fiber.StatusBadRequest, "unknown employment type", nil, nil)
	}

	created := h.store.CreateJob(job.Job{
		Role:         req.Role,
		Company:      req.Company,
		Location:     req.Location,
		Salary:       req.Salary,
		Type:         job.EmploymentType(req.Type),
		Description:  req.Description,
		Requirements: req.Requirements,
		Benefits:     req.Benefits,
		EmployerID:   employerID,
	})
	return response.Success(c, fiber.StatusCreated, response.MessageOK, mapJob(created))
}

// HandleDeleteJob removes a listing. Only the owner may delete; the job's
// applications are intentionally left behind.
func (h *JobsHandler) HandleDeleteJob(c fiber.Ctx) error {
	employerID, err := userIDFromCtx(c)
	if err != nil {
		return err
	}

	id := c.Params("id")
	for _, j := range h.store.Jobs() {
		if j.ID == id && j.EmployerID != employerID {
			return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
	}

	h.store.DeleteJob(id)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapJob(j job.Job) dto.JobResponse {
	return dto.JobResponse{
		ID:           j.ID,
		Role:         j.Role,
		Company:      j.Company,
		Location:     j.Location,
		Salary:       j.Salary,
		Type:         string(j.Type),
		Description:  j.Description,
		Requirements: j.Requirements,
		Benefits:     j.Benefits,
		EmployerID:   j.EmployerID,
		PostedDate:   j.PostedDate.UTC().Format(time.RFC3339),
	}
}

func mapJobs(jobs []job.Job) []dto.JobResponse {
	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, mapJob(j))
	}
	return out
}
