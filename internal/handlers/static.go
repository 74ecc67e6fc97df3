package handlers

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const indexPage = "index.html"

// HandleStatic serves the client bundle. Paths that do not name a file in the
// bundle get index.html so client-side routes survive a reload.
func (h *Handler) HandleStatic(w http.ResponseWriter, r *http.Request) {
	// Prevent directory traversal attacks
	for _, segment := range strings.Split(r.URL.Path, "/") {
		if segment == ".." {
			h.writeError(w, "Invalid file path", http.StatusBadRequest)
			return
		}
	}

	filepath := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if filepath == "" {
		filepath = indexPage
	}

	info, err := fs.Stat(h.static, filepath)
	if err != nil || info.IsDir() {
		filepath = indexPage
	}

	http.ServeFileFS(w, r, h.static, filepath)
}

// HandleConfig exposes the API base URL to the browser bundle.
func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	encoded, err := json.Marshal(h.apiURL)
	if err != nil {
		h.writeError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/javascript")
	w.Header().Set("Cache-Control", "no-cache")
	fmt.Fprintf(w, "window.GALLERY_API_URL = %s;\n", encoded)
}
