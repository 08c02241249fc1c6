package server

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"proptech-analytics/utils"
)

// RouterOptions configures the middleware stack.
type RouterOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewRouter registers the API routes and wraps them with global middleware.
func NewRouter(h *Handler, opts RouterOptions, logger *utils.Logger) http.Handler {
	r := mux.NewRouter()

	r.Handle("/health", http.HandlerFunc(h.Health)).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Handle("/localities", http.HandlerFunc(h.Localities)).Methods(http.MethodGet)
	api.Handle("/locality-stats/{locality}", http.HandlerFunc(h.LocalityStats)).Methods(http.MethodGet)
	api.Handle("/investment", http.HandlerFunc(h.Investment)).Methods(http.MethodPost)
	api.Handle("/compare", http.HandlerFunc(h.Compare)).Methods(http.MethodGet)
	api.Handle("/roi", http.HandlerFunc(h.ROI)).Methods(http.MethodPost)
	api.Handle("/emi", http.HandlerFunc(h.EMI)).Methods(http.MethodGet)
	api.Handle("/rankings", http.HandlerFunc(h.Rankings)).Methods(http.MethodGet)
	api.Handle("/chat", http.HandlerFunc(h.Chat)).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusNotFound, APIResponse{Success: false, Message: "Route not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusMethodNotAllowed, APIResponse{Success: false, Message: "Method not allowed"})
	})

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "X-Request-ID"}),
	)

	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	// Request ID -> Logging -> CORS -> Max Body -> Timeout -> Recovery
	return RequestIDMiddleware(
		RequestLogMiddleware(logger)(
			cors(
				MaxBodyMiddleware(
					TimeoutMiddleware(timeout)(
						RecoveryMiddleware(logger)(r),
					),
				),
			),
		),
	)
}
