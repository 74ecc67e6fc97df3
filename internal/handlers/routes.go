package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/lehigh-university-libraries/photogallery/internal/httpx"
)

// Routes builds the full HTTP handler, middleware included.
func (h *Handler) Routes() http.Handler {
	// Match on the escaped path so an encoded "/" stays inside the category segment.
	router := mux.NewRouter().UseEncodedPath()

	router.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/images", h.HandleImages).Methods(http.MethodGet)
	// Registered before the id route so "category" is never parsed as an id.
	router.HandleFunc("/api/images/category/{category}", h.HandleImagesByCategory).Methods(http.MethodGet)
	router.HandleFunc("/api/images/{id}", h.HandleImage).Methods(http.MethodGet)

	if h.static != nil {
		router.HandleFunc("/config.js", h.HandleConfig).Methods(http.MethodGet)
	}

	router.NotFoundHandler = http.HandlerFunc(h.handleUnmatched)
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.RecoveryMiddleware,
		httpx.AccessLogMiddleware,
		httpx.CORSMiddleware(),
	)
}

func (h *Handler) handleUnmatched(w http.ResponseWriter, r *http.Request) {
	isAPI := r.URL.Path == "/api" || strings.HasPrefix(r.URL.Path, "/api/")
	if h.static == nil || isAPI || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
		h.writeError(w, "Not found", http.StatusNotFound)
		return
	}
	h.HandleStatic(w, r)
}
