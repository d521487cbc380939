package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/parceldesk/parceldesk-api/internal/api"
	apimiddleware "github.com/parceldesk/parceldesk-api/internal/api/middleware"
	"github.com/parceldesk/parceldesk-api/internal/domain"
	"github.com/parceldesk/parceldesk-api/internal/service"
	"github.com/parceldesk/parceldesk-api/internal/service/auth"
)

// routerDeps bundles the services the router needs to build handlers.
type routerDeps struct {
	authService     *auth.Service
	jwtService      auth.JWTService
	userService     *service.UserService
	driverService   *service.DriverService
	merchantService *service.MerchantService
	packageService  *service.PackageService
	settingsService *service.SettingsService
	reportService   *service.ReportService
}

// setupRouter configures all routes and middleware. Write access to
// entities, user administration, and settings writes require ADMIN or
// SUPER_ADMIN; authenticated read access is open to every role. The
// last-SUPER_ADMIN delete guard lives in the user service, not here.
func setupRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(deps.authService)
	userHandler := api.NewUserHandler(deps.userService)
	driverHandler := api.NewDriverHandler(deps.driverService)
	merchantHandler := api.NewMerchantHandler(deps.merchantService)
	packageHandler := api.NewPackageHandler(deps.packageService)
	settingsHandler := api.NewSettingsHandler(deps.settingsService)
	reportHandler := api.NewReportHandler(deps.reportService)

	authMiddleware := apimiddleware.NewAuthMiddleware(deps.jwtService)
	adminOnly := authMiddleware.RequireRole(domain.RoleAdmin, domain.RoleSuperAdmin)

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/settings/public", settingsHandler.Public)

		// Authenticated, any role
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/drivers", driverHandler.List)
			r.Get("/drivers/{id}", driverHandler.Get)
			r.Get("/merchants", merchantHandler.List)
			r.Get("/merchants/{id}", merchantHandler.Get)
			r.Get("/packages", packageHandler.List)
			r.Get("/packages/number/{number}", packageHandler.GetByNumber)
			r.Get("/packages/{id}", packageHandler.Get)
			r.Get("/settings", settingsHandler.List)
			r.Get("/settings/{key}", settingsHandler.Get)
			r.Get("/reports/dashboard", reportHandler.Dashboard)
		})

		// Admin and super admin
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(adminOnly)

			r.Post("/drivers", driverHandler.Create)
			r.Patch("/drivers/{id}", driverHandler.Update)
			r.Delete("/drivers/{id}", driverHandler.Delete)

			r.Post("/merchants", merchantHandler.Create)
			r.Patch("/merchants/{id}", merchantHandler.Update)
			r.Delete("/merchants/{id}", merchantHandler.Delete)

			r.Post("/packages", packageHandler.Create)
			r.Post("/packages/bulk", packageHandler.BulkCreate)
			r.Patch("/packages/{id}", packageHandler.Update)
			r.Put("/packages/{id}/status", packageHandler.UpdateStatus)
			r.Put("/packages/{id}/driver", packageHandler.AssignDriver)
			r.Delete("/packages/{id}/driver", packageHandler.UnassignDriver)
			r.Put("/packages/{id}/issue", packageHandler.FlagIssue)
			r.Delete("/packages/{id}", packageHandler.Delete)

			r.Get("/reports/cod", reportHandler.CODReport)

			r.Post("/users", userHandler.Create)
			r.Get("/users", userHandler.List)
			r.Get("/users/{id}", userHandler.Get)
			r.Patch("/users/{id}", userHandler.Update)
			r.Delete("/users/{id}", userHandler.Delete)
			r.Put("/users/{id}/password", userHandler.ChangePassword)

			r.Post("/settings", settingsHandler.Create)
			r.Put("/settings", settingsHandler.Upsert)
			r.Patch("/settings/{key}", settingsHandler.Update)
			r.Delete("/settings/{key}", settingsHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return r
}
