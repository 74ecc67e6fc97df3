package gallery

import (
	"context"
	"log/slog"

	"github.com/lehigh-university-libraries/photogallery/internal/models"
)

// Status is the load state of the gallery
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// AllCategories is the synthetic category that disables filtering
const AllCategories = "All"

// LoadErrorMessage is shown for every failed catalog fetch
const LoadErrorMessage = "Failed to load images. Please make sure the API server is running."

// Fetcher retrieves the full catalog
type Fetcher interface {
	FetchImages(ctx context.Context) ([]models.Image, error)
}

// State is the client-side view of the catalog. The image list is set once by
// Load; afterwards only the selected category and selected image change.
// A State is owned by a single UI loop and is not safe for concurrent use.
type State struct {
	status     Status
	errMessage string
	loadCalled bool

	images     []models.Image
	categories []string

	selectedCategory string
	selectedImage    *models.Image

	filtered      []models.Image
	filteredFor   string
	filteredValid bool
	filterRuns    int
}

func NewState() *State {
	return &State{
		status:           StatusLoading,
		selectedCategory: AllCategories,
	}
}

// Load fetches the catalog. Only the first call does anything; there is no
// retry after a failure.
func (s *State) Load(ctx context.Context, f Fetcher) {
	if s.loadCalled {
		return
	}
	s.loadCalled = true
	s.status = StatusLoading

	images, err := f.FetchImages(ctx)
	if err != nil {
		slog.Error("Error loading images", "err", err)
		s.status = StatusError
		s.errMessage = LoadErrorMessage
		return
	}

	s.setImages(images)
	s.status = StatusReady
}

func (s *State) setImages(images []models.Image) {
	s.images = make([]models.Image, len(images))
	copy(s.images, images)
	s.categories = deriveCategories(s.images)
	s.filteredValid = false
}

func deriveCategories(images []models.Image) []string {
	categories := []string{AllCategories}
	seen := make(map[string]bool)
	for _, img := range images {
		if seen[img.Category] {
			continue
		}
		seen[img.Category] = true
		categories = append(categories, img.Category)
	}
	return categories
}

func (s *State) Status() Status {
	return s.status
}

// Error returns the message to display, or "" when the load did not fail.
func (s *State) Error() string {
	return s.errMessage
}

// Images returns the fetched list in server order.
func (s *State) Images() []models.Image {
	return s.images
}

// Categories returns "All" followed by each distinct category in order of
// first appearance.
func (s *State) Categories() []string {
	if s.categories == nil {
		return []string{AllCategories}
	}
	return s.categories
}

func (s *State) SelectedCategory() string {
	return s.selectedCategory
}

func (s *State) SelectCategory(category string) {
	s.selectedCategory = category
}

// HasCategory reports whether category is one of the derived labels.
func (s *State) HasCategory(category string) bool {
	for _, c := range s.Categories() {
		if c == category {
			return true
		}
	}
	return false
}

// Filtered returns the images visible under the selected category. Matching
// is exact on the derived label. The result is recomputed only when the
// selected category differs from the last computation.
func (s *State) Filtered() []models.Image {
	if s.filteredValid && s.filteredFor == s.selectedCategory {
		return s.filtered
	}

	s.filterRuns++
	if s.selectedCategory == AllCategories {
		s.filtered = s.images
	} else {
		s.filtered = make([]models.Image, 0)
		for _, img := range s.images {
			if img.Category == s.selectedCategory {
				s.filtered = append(s.filtered, img)
			}
		}
	}
	s.filteredFor = s.selectedCategory
	s.filteredValid = true
	return s.filtered
}

// Select opens the detail overlay for img, replacing any open image.
func (s *State) Select(img models.Image) {
	selected := img
	s.selectedImage = &selected
}

// SelectByID opens the overlay for a currently visible image.
func (s *State) SelectByID(id int) bool {
	for _, img := range s.Filtered() {
		if img.ID == id {
			s.Select(img)
			return true
		}
	}
	return false
}

// Close dismisses the overlay.
func (s *State) Close() {
	s.selectedImage = nil
}

func (s *State) Selected() (models.Image, bool) {
	if s.selectedImage == nil {
		return models.Image{}, false
	}
	return *s.selectedImage, true
}
