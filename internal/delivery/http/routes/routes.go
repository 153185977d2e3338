package routes

import (
	"talenthub/internal/delivery/http/handler"
	"talenthub/internal/delivery/http/middleware"
	"talenthub/internal/domain/user"
	"talenthub/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health       *handler.HealthHandler
	jobs         *handler.JobsHandler
	applications *handler.ApplicationsHandler
	access       *handler.AccessHandler
	auth         *handler.AuthHandler
	profile      *handler.ProfileHandler
	events       *ws.Handler

	authMw *middleware.AuthMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	jobs *handler.JobsHandler,
	applications *handler.ApplicationsHandler,
	access *handler.AccessHandler,
	auth *handler.AuthHandler,
	profile *handler.ProfileHandler,
	events *ws.Handler,
	authMw *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		health:       health,
		jobs:         jobs,
		applications: applications,
		access:       access,
		auth:         auth,
		profile:      profile,
		events:       events,
		authMw:       authMw,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	app.Get("/ws/events", r.events.HandleEvents)

	api := app.Group("/api")
	v1 := api.Group("/v1")

	r.registerAuth(v1)
	r.registerJobs(v1)
	r.registerApplications(v1)
	r.registerAccess(v1)
	r.registerProfile(v1)
}

func (r *Registry) registerAuth(v1 fiber.Router) {
	auth := v1.Group("/auth")
	auth.Post("/register", r.auth.HandleRegister)
	auth.Post("/login", r.auth.HandleLogin)
	auth.Post("/refresh", r.auth.HandleRefresh)
	auth.Post("/logout", r.auth.HandleLogout, r.authMw.Middleware())
}

func (r *Registry) registerJobs(v1 fiber.Router) {
	requireAuth := r.authMw.Middleware()
	requireRecruiter := r.authMw.RequireRole(string(user.RoleRecruiter))
	requireApproved := r.authMw.RequireApproved()

	jobs := v1.Group("/jobs")
	// Static segments before the :id routes.
	jobs.Get("/mine", r.jobs.HandleMyJobs, requireAuth, requireRecruiter)
	jobs.Get("/", r.jobs.HandleListJobs)
	jobs.Post("/", r.jobs.HandleCreateJob, requireAuth, requireRecruiter, requireApproved)
	jobs.Delete("/:id", r.jobs.HandleDeleteJob, requireAuth, requireRecruiter, requireApproved)
	jobs.Post("/:id/apply", r.applications.HandleApply)
	jobs.Get("/:id/applications", r.applications.HandleApplicationsForJob, requireAuth, requireRecruiter)
}

func (r *Registry) registerApplications(v1 fiber.Router) {
	requireAuth := r.authMw.Middleware()
	requireRecruiter := r.authMw.RequireRole(string(user.RoleRecruiter))

	apps := v1.Group("/applications")
	apps.Get("/mine", r.applications.HandleMyApplications, requireAuth)
	apps.Post("/:id/shortlist", r.applications.HandleShortlist, requireAuth, requireRecruiter)
	apps.Post("/:id/reject", r.applications.HandleReject, requireAuth, requireRecruiter)
	apps.Post("/:id/notes", r.applications.HandleAddNote, requireAuth, requireRecruiter)
}

func (r *Registry) registerAccess(v1 fiber.Router) {
	requireAuth := r.authMw.Middleware()
	requireRecruiter := r.authMw.RequireRole(string(user.RoleRecruiter))

	reqs := v1.Group("/access-requests", requireAuth, requireRecruiter)
	reqs.Post("/", r.access.HandleRequestAccess)
	reqs.Get("/owner", r.access.HandleOwnerRequests)
	reqs.Get("/mine", r.access.HandleMyRequests)
	reqs.Post("/:id/approve", r.access.HandleApprove)
	reqs.Post("/:id/reject", r.access.HandleReject)

	v1.Get("/shared-listings", r.access.HandleSharedListings, requireAuth, requireRecruiter)
}

func (r *Registry) registerProfile(v1 fiber.Router) {
	requireAuth := r.authMw.Middleware()

	v1.Get("/profile", r.profile.HandleGetProfile, requireAuth)
	v1.Put("/profile", r.profile.HandleSetProfile, requireAuth)
}
