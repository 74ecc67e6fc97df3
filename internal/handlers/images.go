package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lehigh-university-libraries/photogallery/internal/models"
)

const errImageNotFound = "Image not found"

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.HealthStatus{Status: "ok", Service: ServiceName})
}

func (h *Handler) HandleImages(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.Catalog{Images: h.store.All()})
}

// HandleImage looks up a single image. Any id that does not parse as an
// integer is reported the same way as an id with no matching record.
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, errImageNotFound, http.StatusNotFound)
		return
	}

	image, ok := h.store.Get(id)
	if !ok {
		h.writeError(w, errImageNotFound, http.StatusNotFound)
		return
	}

	h.writeJSON(w, http.StatusOK, image)
}

func (h *Handler) HandleImagesByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]
	if decoded, err := url.PathUnescape(category); err == nil {
		category = decoded
	}
	h.writeJSON(w, http.StatusOK, models.Catalog{Images: h.store.ByCategory(category)})
}
