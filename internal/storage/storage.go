package storage

import (
	"strings"

	"github.com/lehigh-university-libraries/photogallery/internal/models"
)

// CatalogStore holds the image catalog for the lifetime of the process.
// It is never mutated after New returns, so reads need no locking.
type CatalogStore struct {
	images []models.Image
}

func New(images []models.Image) *CatalogStore {
	owned := make([]models.Image, len(images))
	copy(owned, images)
	return &CatalogStore{images: owned}
}

func (s *CatalogStore) Len() int {
	return len(s.images)
}

// All returns the catalog in file order.
func (s *CatalogStore) All() []models.Image {
	result := make([]models.Image, len(s.images))
	copy(result, s.images)
	return result
}

// Get returns the first image whose id matches.
func (s *CatalogStore) Get(id int) (models.Image, bool) {
	for _, img := range s.images {
		if img.ID == id {
			return img, true
		}
	}
	return models.Image{}, false
}

// ByCategory returns every image whose category equals category, ignoring case.
// The result is empty, never nil, when nothing matches.
func (s *CatalogStore) ByCategory(category string) []models.Image {
	result := make([]models.Image, 0)
	for _, img := range s.images {
		if strings.EqualFold(img.Category, category) {
			result = append(result, img)
		}
	}
	return result
}

// Categories lists distinct categories in order of first appearance.
func (s *CatalogStore) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for _, img := range s.images {
		if seen[img.Category] {
			continue
		}
		seen[img.Category] = true
		categories = append(categories, img.Category)
	}
	return categories
}
