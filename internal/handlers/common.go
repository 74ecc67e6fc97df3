package handlers

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/lehigh-university-libraries/photogallery/internal/models"
	"github.com/lehigh-university-libraries/photogallery/internal/storage"
)

// ServiceName is reported by the health endpoint
const ServiceName = "PhotoGallery API"

type Handler struct {
	store  *storage.CatalogStore
	static fs.FS
	apiURL string
}

// Options configures the optional browser client bundle.
type Options struct {
	// Static holds the client bundle. A nil Static disables the UI routes.
	Static fs.FS
	// APIURL is handed to the bundle through /config.js. Empty means same origin.
	APIURL string
}

func New(store *storage.CatalogStore, opts Options) *Handler {
	return &Handler{
		store:  store,
		static: opts.Static,
		apiURL: opts.APIURL,
	}
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	if code >= http.StatusInternalServerError {
		slog.Error(message, "status", code)
	} else {
		slog.Debug(message, "status", code)
	}
	h.writeJSON(w, code, models.ErrorBody{Error: message})
}
