package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/lehigh-university-libraries/photogallery/internal/models"
	"github.com/lehigh-university-libraries/photogallery/internal/storage"
)

func testImages() []models.Image {
	date := models.NewDate(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC))
	return []models.Image{
		{ID: 1, Title: "Sunrise", Category: "Nature", Photographer: "Ana", URL: "/img/1.jpg", Thumbnail: "/img/1_t.jpg", UploadDate: date},
		{ID: 2, Title: "Skyline", Category: "Urban", Photographer: "Sam", URL: "/img/2.jpg", Thumbnail: "/img/2_t.jpg", UploadDate: date},
		{ID: 3, Title: "Fern", Category: "nature", Photographer: "Ana", URL: "/img/3.jpg", Thumbnail: "/img/3_t.jpg", UploadDate: date},
		{ID: 4, Title: "Graffiti", Category: "Street Art", Photographer: "Kim", URL: "/img/4.jpg", Thumbnail: "/img/4_t.jpg", UploadDate: date},
	}
}

func testBundle() fstest.MapFS {
	return fstest.MapFS{
		"index.html": {Data: []byte("<html>gallery</html>")},
		"app.js":     {Data: []byte("console.log('gallery')")},
		"style.css":  {Data: []byte("body{}")},
		"a..b.js":    {Data: []byte("console.log('dots')")},
	}
}

func newTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()
	return New(storage.New(testImages()), opts).Routes()
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func decodeCatalog(t *testing.T, w *httptest.ResponseRecorder) []int {
	t.Helper()
	var body struct {
		Images []models.Image `json:"images"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body %q: %v", w.Body.String(), err)
	}
	if body.Images == nil {
		t.Fatalf("Expected images array, got null in %q", w.Body.String())
	}
	ids := make([]int, 0, len(body.Images))
	for _, img := range body.Images {
		ids = append(ids, img.ID)
	}
	return ids
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t, Options{})

	w := do(t, h, http.MethodGet, "/health")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var body models.HealthStatus
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body.Status != "ok" || body.Service != ServiceName {
		t.Errorf("Unexpected health body: %+v", body)
	}
}

func TestHandleImages(t *testing.T) {
	h := newTestServer(t, Options{})

	w := do(t, h, http.MethodGet, "/api/images")

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}
	if got, expected := decodeCatalog(t, w), []int{1, 2, 3, 4}; !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestHandleImagesWireShape(t *testing.T) {
	h := newTestServer(t, Options{})

	w := do(t, h, http.MethodGet, "/api/images/1")

	var raw map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	for _, key := range []string{"id", "title", "description", "category", "photographer", "url", "thumbnail", "uploadDate"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Expected key %q in %v", key, raw)
		}
	}
	if raw["uploadDate"] != "2024-01-15T10:30:00Z" {
		t.Errorf("Expected ISO-8601 uploadDate, got %v", raw["uploadDate"])
	}
}

func TestHandleImage(t *testing.T) {
	h := newTestServer(t, Options{})

	for _, img := range testImages() {
		w := do(t, h, http.MethodGet, "/api/images/"+strconv.Itoa(img.ID))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 for id %d, got %d", img.ID, w.Code)
		}
		var got models.Image
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("Failed to decode body: %v", err)
		}
		if got.ID != img.ID || got.Title != img.Title {
			t.Errorf("Expected image %d, got %+v", img.ID, got)
		}
	}
}

func TestHandleImageNotFound(t *testing.T) {
	h := newTestServer(t, Options{})

	for _, id := range []string{"99", "0", "-1", "abc", "1.5", "2abc", "99999999999999999999999"} {
		t.Run(id, func(t *testing.T) {
			w := do(t, h, http.MethodGet, "/api/images/"+id)

			if w.Code != http.StatusNotFound {
				t.Fatalf("Expected 404, got %d", w.Code)
			}
			var body models.ErrorBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("Failed to decode body: %v", err)
			}
			if body.Error != "Image not found" {
				t.Errorf("Expected 'Image not found', got %q", body.Error)
			}
		})
	}
}

func TestHandleImagesByCategory(t *testing.T) {
	h := newTestServer(t, Options{})

	tests := []struct {
		path     string
		expected []int
	}{
		{"/api/images/category/Nature", []int{1, 3}},
		{"/api/images/category/nature", []int{1, 3}},
		{"/api/images/category/URBAN", []int{2}},
		{"/api/images/category/street%20art", []int{4}},
		{"/api/images/category/Animals", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, h, http.MethodGet, tt.path)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", w.Code)
			}
			if got := decodeCatalog(t, w); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestHandleImagesByCategoryWithSlash(t *testing.T) {
	date := models.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store := storage.New([]models.Image{
		{ID: 1, Category: "Black/White", UploadDate: date},
		{ID: 2, Category: "Black", UploadDate: date},
		{ID: 3, Category: "black/white", UploadDate: date},
	})
	h := New(store, Options{Static: testBundle()}).Routes()

	for _, path := range []string{"/api/images/category/Black%2FWhite", "/api/images/category/black%2fwhite"} {
		w := do(t, h, http.MethodGet, path)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", path, w.Code, w.Body.String())
		}
		if got := decodeCatalog(t, w); !reflect.DeepEqual(got, []int{1, 3}) {
			t.Errorf("%s: expected [1 3], got %v", path, got)
		}
	}

	w := do(t, h, http.MethodGet, "/api/images/category/Black")
	if got := decodeCatalog(t, w); !reflect.DeepEqual(got, []int{2}) {
		t.Errorf("Expected [2], got %v", got)
	}
}

func TestUploadDateServedVerbatim(t *testing.T) {
	var images []models.Image
	for i, text := range []string{"2024-01-15", "2024-01-15T10:30:00.000Z"} {
		date, err := models.ParseDate(text)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", text, err)
		}
		images = append(images, models.Image{ID: i + 1, UploadDate: date})
	}
	h := New(storage.New(images), Options{}).Routes()

	w := do(t, h, http.MethodGet, "/api/images")
	for _, expected := range []string{`"uploadDate":"2024-01-15"`, `"uploadDate":"2024-01-15T10:30:00.000Z"`} {
		if !strings.Contains(w.Body.String(), expected) {
			t.Errorf("Expected %s in %s", expected, w.Body.String())
		}
	}

	w = do(t, h, http.MethodGet, "/api/images/1")
	if !strings.Contains(w.Body.String(), `"uploadDate":"2024-01-15"`) {
		t.Errorf("Expected date-only uploadDate, got %s", w.Body.String())
	}
}

func TestCategoryRouteNotParsedAsID(t *testing.T) {
	h := newTestServer(t, Options{})

	w := do(t, h, http.MethodGet, "/api/images/category")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, Options{})

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		w := do(t, h, method, "/api/images/1")
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("%s: expected 405, got %d", method, w.Code)
		}
	}
}

func TestCORSOnEveryResponse(t *testing.T) {
	h := newTestServer(t, Options{})

	for _, path := range []string{"/health", "/api/images", "/api/images/1", "/api/images/99"} {
		w := do(t, h, http.MethodGet, path)
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("%s: expected CORS header *, got %q", path, got)
		}
	}

	w := do(t, h, http.MethodOptions, "/api/images")
	if w.Code != http.StatusNoContent {
		t.Errorf("Expected 204 for preflight, got %d", w.Code)
	}
}

func TestUIDisabled(t *testing.T) {
	h := newTestServer(t, Options{})

	w := do(t, h, http.MethodGet, "/")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 with UI disabled, got %d", w.Code)
	}
}

func TestSPAFallback(t *testing.T) {
	h := newTestServer(t, Options{Static: testBundle()})

	tests := []struct {
		path         string
		expectedBody string
	}{
		{"/", "<html>gallery</html>"},
		{"/app.js", "console.log('gallery')"},
		{"/style.css", "body{}"},
		{"/photos/3", "<html>gallery</html>"},
		{"/category/Nature", "<html>gallery</html>"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, h, http.MethodGet, tt.path)
			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", w.Code)
			}
			if w.Body.String() != tt.expectedBody {
				t.Errorf("Expected %q, got %q", tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestUnknownAPIPathIsJSON404(t *testing.T) {
	h := newTestServer(t, Options{Static: testBundle()})

	w := do(t, h, http.MethodGet, "/api/unknown")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"error":"Not found"`) {
		t.Errorf("Expected JSON error body, got %q", w.Body.String())
	}
}

func TestHandleStaticTraversal(t *testing.T) {
	h := New(storage.New(nil), Options{Static: testBundle()})

	w := httptest.NewRecorder()
	h.HandleStatic(w, httptest.NewRequest(http.MethodGet, "/../secret", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}

func TestHandleStaticDottedFileName(t *testing.T) {
	h := newTestServer(t, Options{Static: testBundle()})

	w := do(t, h, http.MethodGet, "/a..b.js")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "dots") {
		t.Errorf("Expected a..b.js contents, got %q", w.Body.String())
	}
}

func TestHandleConfig(t *testing.T) {
	h := newTestServer(t, Options{Static: testBundle(), APIURL: "https://api.example.com"})

	w := do(t, h, http.MethodGet, "/config.js")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	expected := "window.GALLERY_API_URL = \"https://api.example.com\";\n"
	if w.Body.String() != expected {
		t.Errorf("Expected %q, got %q", expected, w.Body.String())
	}
}

func TestEndToEndCategoryExample(t *testing.T) {
	date := models.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store := storage.New([]models.Image{
		{ID: 1, Category: "Nature", UploadDate: date},
		{ID: 2, Category: "Urban", UploadDate: date},
		{ID: 3, Category: "nature", UploadDate: date},
	})
	h := New(store, Options{}).Routes()

	w := do(t, h, http.MethodGet, "/api/images/category/Nature")
	if got := decodeCatalog(t, w); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Expected [1 3], got %v", got)
	}
}
