package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/photogallery/internal/models"
)

// Supported catalog encodings
const (
	FormatUnknown = ""
	FormatJSON    = "json"
	FormatJSONL   = "jsonl"
	FormatYAML    = "yaml"
	FormatParquet = "parquet"
)

// Format maps a catalog path to its encoding by extension.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".jsonl":
		return FormatJSONL
	case ".yaml", ".yml":
		return FormatYAML
	case ".parquet":
		return FormatParquet
	default:
		return FormatUnknown
	}
}

// imageRow is the parquet schema for a catalog entry.
// uploadDate is kept as the catalog's original ISO 8601 text.
type imageRow struct {
	ID           int64  `parquet:"id"`
	Title        string `parquet:"title"`
	Description  string `parquet:"description"`
	Category     string `parquet:"category"`
	Photographer string `parquet:"photographer"`
	URL          string `parquet:"url"`
	Thumbnail    string `parquet:"thumbnail"`
	UploadDate   string `parquet:"upload_date"`
}

func rowFromImage(img models.Image) imageRow {
	return imageRow{
		ID:           int64(img.ID),
		Title:        img.Title,
		Description:  img.Description,
		Category:     img.Category,
		Photographer: img.Photographer,
		URL:          img.URL,
		Thumbnail:    img.Thumbnail,
		UploadDate:   img.UploadDate.String(),
	}
}

func (r imageRow) toImage() (models.Image, error) {
	uploaded, err := models.ParseDate(r.UploadDate)
	if err != nil {
		return models.Image{}, fmt.Errorf("invalid upload_date %q for id %d: %w", r.UploadDate, r.ID, err)
	}
	return models.Image{
		ID:           int(r.ID),
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		Photographer: r.Photographer,
		URL:          r.URL,
		Thumbnail:    r.Thumbnail,
		UploadDate:   uploaded,
	}, nil
}
