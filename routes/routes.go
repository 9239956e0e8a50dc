package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/controllers"
	"github.com/brijender-repos/pmatts-micro-vc-membership-sub000/middleware"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func optionsHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "pmatts-api",
	})
}

func InitRouter() *mux.Router {
	r := mux.NewRouter()

	// Root-level health check for container probes.
	r.Handle("/health", http.HandlerFunc(healthHandler)).Methods(http.MethodGet)

	// CORS: origins from CORS_ALLOWED_ORIGINS (comma-separated) on top of the
	// defaults for local development.
	origins := []string{
		"http://localhost:3000", "http://localhost:8080",
		"http://127.0.0.1:3000", "http://127.0.0.1:8080",
	}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		for _, p := range strings.Split(env, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/v1").Subrouter()

	// Catch-all OPTIONS handler for CORS preflight.
	api.PathPrefix("/").HandlerFunc(optionsHandler).Methods(http.MethodOptions)

	api.Handle("/health", http.HandlerFunc(healthHandler)).Methods(http.MethodGet)

	// Gateway callback. The limiter whitelist takes PayU's egress IPs from
	// WEBHOOK_IP_WHITELIST; everything else shares a generous per-IP budget so
	// a gateway retry storm is never throttled by a stranger's probing.
	var whitelist []string
	for _, p := range strings.Split(os.Getenv("WEBHOOK_IP_WHITELIST"), ",") {
		if ip := strings.TrimSpace(p); ip != "" {
			whitelist = append(whitelist, ip)
		}
	}
	webhookLimiter := middleware.NewWebhookLimiter(500, time.Hour, whitelist)
	api.Handle("/payments/webhook", webhookLimiter.Middleware(http.HandlerFunc(controllers.PayUWebhookHandler))).Methods(http.MethodPost)

	// Public project catalogue.
	api.Handle("/projects", http.HandlerFunc(controllers.ListProjectsHandler)).Methods(http.MethodGet)

	UsersRoutes(api)
	AdminRoutes(api)

	return r
}
