// Package api merutekan HTTP request ke service yang sesuai dan
// menerjemahkan hasilnya ke JSON.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"bukutamu/internal/appointment"
	"bukutamu/internal/auth"
	"bukutamu/internal/database"
	"bukutamu/internal/guest"
	"bukutamu/internal/hub"
	"bukutamu/internal/notification"
	"bukutamu/internal/report"
	"bukutamu/internal/user"
)

type Server struct {
	appointments  *appointment.Service
	guests        *guest.Service
	users         *user.Service
	auth          *auth.Service
	notifications *notification.Service
	reports       *report.Service
	hub           *hub.Hub
	middleware    *auth.Middleware
}

func NewServer(
	appointments *appointment.Service,
	guests *guest.Service,
	users *user.Service,
	authService *auth.Service,
	notifications *notification.Service,
	reports *report.Service,
	wsHub *hub.Hub,
	middleware *auth.Middleware,
) *Server {
	return &Server{
		appointments:  appointments,
		guests:        guests,
		users:         users,
		auth:          authService,
		notifications: notifications,
		reports:       reports,
		hub:           wsHub,
		middleware:    middleware,
	}
}

// RegisterRoutes memasang semua endpoint di bawah /api. Endpoint publik:
// login, refresh, jalur QR (dipakai kios tanpa login), dan websocket dasbor.
func (s *Server) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	// Publik
	api.HandleFunc("/auth/login", s.login).Methods("POST")
	api.HandleFunc("/auth/refresh", s.refreshToken).Methods("POST")
	api.HandleFunc("/appointments/qr/{kode}", s.checkQrCode).Methods("GET")
	api.HandleFunc("/appointments/qr/{kode}/image", s.qrCodeImage).Methods("GET")
	api.HandleFunc("/ws", s.hub.HandleWebSocket)

	// Butuh login
	authed := api.NewRoute().Subrouter()
	authed.Use(s.middleware.Authenticate)

	authed.HandleFunc("/auth/logout", s.logout).Methods("POST")
	authed.HandleFunc("/auth/change-password", s.changePassword).Methods("POST")

	authed.HandleFunc("/appointments", s.listAppointments).Methods("GET")
	authed.HandleFunc("/appointments", s.createAppointment).Methods("POST")
	authed.HandleFunc("/appointments/today", s.todayAppointments).Methods("GET")
	authed.HandleFunc("/appointments/guru/{id:[0-9]+}", s.listAppointmentsByGuru).Methods("GET")
	authed.HandleFunc("/appointments/{id:[0-9]+}/status", s.updateAppointmentStatus).Methods("PUT")
	authed.HandleFunc("/appointments/{id:[0-9]+}/reschedule", s.rescheduleAppointment).Methods("PUT")
	authed.HandleFunc("/appointments/qr/{kode}/verify", s.verifyQrCode).Methods("POST")

	authed.HandleFunc("/tamu", s.listTamu).Methods("GET")
	authed.HandleFunc("/tamu", s.createTamu).Methods("POST")
	authed.HandleFunc("/tamu/search", s.searchTamu).Methods("GET")
	authed.HandleFunc("/tamu/{id:[0-9]+}", s.getTamu).Methods("GET")
	authed.HandleFunc("/tamu/{id:[0-9]+}", s.updateTamu).Methods("PUT")

	authed.HandleFunc("/notifications", s.listNotifications).Methods("GET")
	authed.HandleFunc("/notifications/{id:[0-9]+}/read", s.markNotificationRead).Methods("PUT")
	authed.HandleFunc("/notifications/{id:[0-9]+}", s.deleteNotification).Methods("DELETE")

	authed.HandleFunc("/users/device-token", s.registerDeviceToken).Methods("PUT")
	authed.HandleFunc("/users", s.listUsers).Methods("GET")
	authed.HandleFunc("/users/{id:[0-9]+}", s.getUser).Methods("GET")

	// Hanya admin
	admin := authed.NewRoute().Subrouter()
	admin.Use(s.middleware.RequireRole(database.RoleAdmin))

	admin.HandleFunc("/users", s.createUser).Methods("POST")
	admin.HandleFunc("/users/{id:[0-9]+}", s.updateUser).Methods("PUT")
	admin.HandleFunc("/users/{id:[0-9]+}", s.deleteUser).Methods("DELETE")

	admin.HandleFunc("/reports/daily", s.dailyReport).Methods("GET")
	admin.HandleFunc("/reports/weekly", s.weeklyReport).Methods("GET")
	admin.HandleFunc("/reports/monthly", s.monthlyReport).Methods("GET")
}

// CorsMiddleware mengizinkan akses lintas origin dari aplikasi frontend.
func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Accept")

		// preflight langsung dijawab
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
