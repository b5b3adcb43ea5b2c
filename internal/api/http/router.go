package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bharatmovers/booking-service/internal/api/http/handlers"
	"github.com/bharatmovers/booking-service/internal/auth"
	"github.com/bharatmovers/booking-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Bookings       *handlers.BookingsHandler
	Requests       *handlers.RequestsHandler
	Messages       *handlers.MessagesHandler
	Catalog        *handlers.CatalogHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)

	// Catalog reads are public; writes need staff, price edits admin.
	catalog := app.Group("/catalog")
	catalog.Get("/vehicle-types", cfg.Catalog.ListVehicleTypes)
	catalog.Get("/vehicle-types/:id", cfg.Catalog.GetVehicleType)
	catalog.Get("/services", cfg.AuthMiddleware.Optional, cfg.Catalog.ListServices)
	catalog.Get("/services/:id", cfg.Catalog.GetService)

	catalogWrite := catalog.Group("", cfg.AuthMiddleware.Handle, auth.RequireElevated())
	catalogWrite.Post("/vehicle-types", cfg.Catalog.CreateVehicleType)
	catalogWrite.Patch("/vehicle-types/:id", cfg.Catalog.UpdateVehicleType)
	catalogWrite.Post("/services", cfg.Catalog.CreateService)
	catalogWrite.Patch("/services/:id", cfg.Catalog.UpdateService)

	bookings := app.Group("/bookings", cfg.AuthMiddleware.Handle)
	bookings.Post("", cfg.Bookings.Create)
	bookings.Get("", cfg.Bookings.List)
	bookings.Get("/:id", cfg.Bookings.Get)
	bookings.Patch("/:id", cfg.Bookings.Update)
	bookings.Post("/:id/transition", cfg.Bookings.Transition)
	bookings.Post("/:id/cancel", cfg.Bookings.Cancel)
	bookings.Put("/:id/admin-notes", auth.RequireElevated(), cfg.Bookings.SetAdminNotes)

	requests := app.Group("/requests")
	// Enterprise inquiries accept anonymous submissions.
	requests.Post("/enterprise", cfg.AuthMiddleware.Optional, cfg.Requests.SubmitEnterprise)

	requestsAuthed := requests.Group("", cfg.AuthMiddleware.Handle)
	requestsAuthed.Post("/partner", cfg.Requests.SubmitPartner)
	requestsAuthed.Post("/custom-service", cfg.Requests.SubmitCustomService)
	requestsAuthed.Get("", cfg.Requests.List)
	requestsAuthed.Get("/:id", cfg.Requests.Get)
	requestsAuthed.Post("/:id/transition", auth.RequireElevated(), cfg.Requests.Transition)
	requestsAuthed.Put("/:id/admin-notes", auth.RequireElevated(), cfg.Requests.SetAdminNotes)
	requestsAuthed.Delete("/:id", auth.RequireRole(domain.RoleAdmin), cfg.Requests.Delete)

	messages := app.Group("/messages", cfg.AuthMiddleware.Handle)
	messages.Post("/contact", cfg.Messages.ContactStaff)
	messages.Get("", cfg.Messages.ListMine)
	messages.Get("/:id", cfg.Messages.Get)
	messages.Post("/:id/read", cfg.Messages.MarkRead)
	messages.Post("/:id/reply", auth.RequireElevated(), cfg.Messages.Reply)

	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/actors", cfg.Admin.ListActors)
	admin.Get("/actors/:id", cfg.Admin.GetActor)
	admin.Patch("/actors/:id", cfg.Admin.UpdateActor)
}
