package http

import (
	"net/http"

	"vetclinic-booking/internal/delivery/http/handler"
	"vetclinic-booking/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                *mux.Router
	authHandler           *handler.AuthHandler
	petHandler            *handler.PetHandler
	bookingHandler        *handler.BookingHandler
	availabilityHandler   *handler.AvailabilityHandler
	appointmentHandler    *handler.AppointmentHandler
	unavailabilityHandler *handler.UnavailabilityHandler
	paymentHandler        *handler.PaymentHandler
	medicalRecordHandler  *handler.MedicalRecordHandler
	authMiddleware        *middleware.AuthMiddleware
	corsMiddleware        *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	petHandler *handler.PetHandler,
	bookingHandler *handler.BookingHandler,
	availabilityHandler *handler.AvailabilityHandler,
	appointmentHandler *handler.AppointmentHandler,
	unavailabilityHandler *handler.UnavailabilityHandler,
	paymentHandler *handler.PaymentHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                mux.NewRouter(),
		authHandler:           authHandler,
		petHandler:            petHandler,
		bookingHandler:        bookingHandler,
		availabilityHandler:   availabilityHandler,
		appointmentHandler:    appointmentHandler,
		unavailabilityHandler: unavailabilityHandler,
		paymentHandler:        paymentHandler,
		medicalRecordHandler:  medicalRecordHandler,
		authMiddleware:        authMiddleware,
		corsMiddleware:        corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/verify-otp", r.authHandler.VerifyOTP).Methods(http.MethodPost)
	auth.HandleFunc("/resend-otp", r.authHandler.ResendOTP).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Catalog and availability (public)
	api.HandleFunc("/catalog", r.availabilityHandler.GetCatalog).Methods(http.MethodGet)
	api.HandleFunc("/availability", r.availabilityHandler.GetDayAvailability).Methods(http.MethodGet)

	// Payment gateway return endpoint (public, browser redirect)
	api.HandleFunc("/payments/callback", r.paymentHandler.Callback).Methods(http.MethodGet)

	// Client routes (protected)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Pets
	protected.HandleFunc("/pets", r.petHandler.CreatePet).Methods(http.MethodPost)
	protected.HandleFunc("/pets", r.petHandler.GetMyPets).Methods(http.MethodGet)
	protected.HandleFunc("/pets/{id}", r.petHandler.GetPet).Methods(http.MethodGet)
	protected.HandleFunc("/pets/{id}", r.petHandler.UpdatePet).Methods(http.MethodPut)
	protected.HandleFunc("/pets/{id}", r.petHandler.DeletePet).Methods(http.MethodDelete)
	protected.HandleFunc("/pets/{petId}/medical-records", r.medicalRecordHandler.GetRecordsByPet).Methods(http.MethodGet)

	// Booking sessions
	protected.HandleFunc("/bookings", r.bookingHandler.StartSession).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{id}", r.bookingHandler.GetSession).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{id}/pet", r.bookingHandler.SelectPet).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{id}/slot", r.bookingHandler.SelectServiceAndSlot).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{id}/payment-method", r.bookingHandler.SelectPaymentMethod).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{id}/submit", r.bookingHandler.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{id}/retry", r.bookingHandler.Retry).Methods(http.MethodPost)

	// Appointments (client-facing)
	protected.HandleFunc("/appointments/mine", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/payment-status", r.paymentHandler.GetPaymentStatus).Methods(http.MethodGet)

	// Staff routes (vet or admin)
	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)
	staff.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPut)
	staff.HandleFunc("/unavailability", r.unavailabilityHandler.CreateUnavailability).Methods(http.MethodPost)
	staff.HandleFunc("/unavailability", r.unavailabilityHandler.ListUnavailability).Methods(http.MethodGet)
	staff.HandleFunc("/unavailability/{id}", r.unavailabilityHandler.DeleteUnavailability).Methods(http.MethodDelete)

	// Medical records (vet or admin)
	staff.HandleFunc("/medical-records", r.medicalRecordHandler.CreateRecord).Methods(http.MethodPost)
	staff.HandleFunc("/medical-records/{id}", r.medicalRecordHandler.UpdateRecord).Methods(http.MethodPut)
	staff.HandleFunc("/medical-records/{id}", r.medicalRecordHandler.DeleteRecord).Methods(http.MethodDelete)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/appointments/{id}", r.appointmentHandler.HardDeleteAppointment).Methods(http.MethodDelete)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
