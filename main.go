package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"bukutamu/internal/api"
	"bukutamu/internal/appointment"
	"bukutamu/internal/auth"
	"bukutamu/internal/config"
	"bukutamu/internal/database"
	"bukutamu/internal/email"
	"bukutamu/internal/guest"
	"bukutamu/internal/hub"
	"bukutamu/internal/notification"
	"bukutamu/internal/push"
	"bukutamu/internal/report"
	"bukutamu/internal/scheduler"
	"bukutamu/internal/user"
)

var (
	db        *database.DB
	wsHub     *hub.Hub
	startTime time.Time

	serverLogs []string
	logsMutex  sync.RWMutex
)

const maxLogs = 100

type logWriter struct{}

func (lw logWriter) Write(p []byte) (n int, err error) {
	logsMutex.Lock()
	defer logsMutex.Unlock()

	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}

	timestamp := time.Now().Format("15:04:05")
	logEntry := fmt.Sprintf("[%s] %s", timestamp, msg)

	serverLogs = append(serverLogs, logEntry)
	if len(serverLogs) > maxLogs {
		serverLogs = serverLogs[1:]
	}

	fmt.Println(logEntry)

	return len(p), nil
}

func main() {
	log.SetFlags(0)
	log.SetOutput(logWriter{})

	startTime = time.Now()
	log.Println("🚀 Memulai server Buku Tamu Sekolah...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Error config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Config tidak valid: %v", err)
	}

	db, err = database.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Error DB: %v", err)
	}
	defer db.Close()

	var pushService *push.FirebaseService
	if cfg.FirebaseCredentialsPath != "" {
		pushService, err = push.NewFirebaseService(cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Printf("⚠️  Firebase tidak aktif: %v", err)
			pushService = nil
		}
	} else {
		log.Println("ℹ️  Firebase tidak dikonfigurasi, push ke perangkat dinonaktifkan")
	}

	wsHub = hub.NewHub()

	var notifier *notification.Service
	if pushService != nil {
		notifier = notification.NewService(db, pushService)
	} else {
		notifier = notification.NewService(db, nil)
	}

	appointmentService := appointment.NewService(db, notifier, wsHub)
	guestService := guest.NewService(db)
	userService := user.NewService(db)
	reportService := report.NewService(db)
	authService := auth.NewService(
		db,
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenMinutes)*time.Minute,
		time.Duration(cfg.RefreshTokenDays)*24*time.Hour,
	)

	var emailService *email.EmailService
	if cfg.EnableDailyReportMail {
		emailService, err = email.NewEmailService(cfg)
		if err != nil {
			log.Printf("⚠️  Email service tidak aktif: %v", err)
			emailService = nil
		} else {
			log.Println("✅ Email service siap")
		}
	}

	if pushService != nil || emailService != nil {
		var reminderPusher scheduler.ReminderPusher
		if pushService != nil {
			reminderPusher = pushService
		}
		var mailer scheduler.ReportMailer
		if emailService != nil {
			mailer = emailService
		}
		sch := scheduler.NewScheduler(cfg, db, reminderPusher, reportService, mailer)
		go sch.Start(context.Background())
		log.Println("✅ Scheduler dimulai")
	}

	middleware := auth.NewMiddleware(cfg.JWTSecret)
	server := api.NewServer(
		appointmentService,
		guestService,
		userService,
		authService,
		notifier,
		reportService,
		wsHub,
		middleware,
	)

	router := mux.NewRouter()
	server.RegisterRoutes(router)

	ops := router.PathPrefix("/api").Subrouter()
	ops.HandleFunc("/stats", statsHandler).Methods("GET")
	ops.HandleFunc("/health", healthCheckHandler).Methods("GET")
	ops.HandleFunc("/logs", logsHandler).Methods("GET")

	log.Printf("✅ Server siap di port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, api.CorsMiddleware(router)))
}

func statsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	dbStatus := false
	if db != nil && db.GetConnection() != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := db.GetConnection().PingContext(ctx); err == nil {
			dbStatus = true
		}
	}

	response := map[string]interface{}{
		"active_connections": wsHub.Count(),
		"uptime":             formatDuration(time.Since(startTime)),
		"db_status":          dbStatus,
		"timestamp":          time.Now().Unix(),
	}

	json.NewEncoder(w).Encode(response)
}

func logsHandler(w http.ResponseWriter, r *http.Request) {
	logsMutex.RLock()
	defer logsMutex.RUnlock()

	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(map[string]interface{}{
		"logs": serverLogs,
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "healthy"
	httpStatus := http.StatusOK

	if err := db.GetConnection().Ping(); err != nil {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	})
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
