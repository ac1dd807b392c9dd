package http

import (
	"net/http"

	"medicitas-api/internal/delivery/http/handler"
	"medicitas-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	userHandler        *handler.UserHandler
	appointmentHandler *handler.AppointmentHandler
	specialtyHandler   *handler.SpecialtyHandler
	prototypeHandler   *handler.PrototypeHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	loginLimiter       *middleware.RateLimiter
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	appointmentHandler *handler.AppointmentHandler,
	specialtyHandler *handler.SpecialtyHandler,
	prototypeHandler *handler.PrototypeHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loginLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		userHandler:        userHandler,
		appointmentHandler: appointmentHandler,
		specialtyHandler:   specialtyHandler,
		prototypeHandler:   prototypeHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
		loginLimiter:       loginLimiter,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public, rate limited against credential stuffing)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.Use(r.loginLimiter.Handle)
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Everything below requires a live session.
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Appointment scheduling (any authenticated user)
	protected.HandleFunc("/appointments", r.appointmentHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/appointments", r.appointmentHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/availability", r.appointmentHandler.CheckAvailability).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/range/{from}/{to}", r.appointmentHandler.FindByDateRange).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.Delete).Methods(http.MethodDelete)

	// Booking form lookups
	protected.HandleFunc("/practitioners", r.userHandler.ListPractitioners).Methods(http.MethodGet)
	protected.HandleFunc("/patients", r.userHandler.ListPatients).Methods(http.MethodGet)

	// Specialty catalog (reads for everyone, writes admin only)
	protected.HandleFunc("/specialties", r.specialtyHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/specialties/{id}", r.specialtyHandler.Get).Methods(http.MethodGet)

	// Prototype gallery (reads for everyone, writes admin only)
	protected.HandleFunc("/prototypes", r.prototypeHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/prototypes/{id}", r.prototypeHandler.Get).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	// User management (admin)
	admin.HandleFunc("/users", r.userHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/users", r.userHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.Get).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}", r.userHandler.Delete).Methods(http.MethodDelete)

	// Specialty management (admin)
	admin.HandleFunc("/specialties", r.specialtyHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/specialties/{id}", r.specialtyHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/specialties/{id}", r.specialtyHandler.Delete).Methods(http.MethodDelete)

	// Prototype management (admin)
	admin.HandleFunc("/prototypes", r.prototypeHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/prototypes/{id}", r.prototypeHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/prototypes/{id}", r.prototypeHandler.Delete).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
