package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/photogallery/internal/models"
)

// Loader reads an image catalog from disk
type Loader struct {
	catalogPath string
}

// NewLoader creates a new catalog loader
func NewLoader(catalogPath string) *Loader {
	return &Loader{
		catalogPath: catalogPath,
	}
}

// Load reads and validates the catalog. The format is chosen by file extension.
func (l *Loader) Load() ([]models.Image, error) {
	var (
		images []models.Image
		err    error
	)

	switch Format(l.catalogPath) {
	case FormatJSON:
		images, err = l.loadJSON()
	case FormatJSONL:
		images, err = l.loadJSONL()
	case FormatYAML:
		images, err = l.loadYAML()
	case FormatParquet:
		images, err = l.loadParquet()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .json, .jsonl, .yaml, .parquet)", filepath.Ext(l.catalogPath))
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(images); err != nil {
		return nil, fmt.Errorf("invalid catalog %s: %w", l.catalogPath, err)
	}

	slog.Debug("Catalog read", "path", l.catalogPath, "images", len(images))
	return images, nil
}

func (l *Loader) loadJSON() ([]models.Image, error) {
	data, err := os.ReadFile(l.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog models.Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse JSON catalog: %w", err)
	}
	return catalog.Images, nil
}

func (l *Loader) loadJSONL() ([]models.Image, error) {
	file, err := os.Open(l.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	var images []models.Image
	scanner := bufio.NewScanner(file)

	// Increase buffer size for long description lines
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var img models.Image
		if err := json.Unmarshal(line, &img); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		images = append(images, img)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	return images, nil
}

func (l *Loader) loadYAML() ([]models.Image, error) {
	data, err := os.ReadFile(l.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog models.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse YAML catalog: %w", err)
	}
	return catalog.Images, nil
}

func (l *Loader) loadParquet() ([]models.Image, error) {
	file, err := os.Open(l.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[imageRow](pf)
	defer reader.Close()

	var images []models.Image
	rows := make([]imageRow, 128)

	for {
		n, err := reader.Read(rows)
		for i := 0; i < n; i++ {
			img, convErr := rows[i].toImage()
			if convErr != nil {
				return nil, fmt.Errorf("row %d: %w", len(images), convErr)
			}
			images = append(images, img)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	return images, nil
}

// Validate checks the invariants every catalog must satisfy before it is served.
func Validate(images []models.Image) error {
	seen := make(map[int]int, len(images))
	for i, img := range images {
		if img.ID <= 0 {
			return fmt.Errorf("image at index %d has non-positive id %d", i, img.ID)
		}
		if prev, ok := seen[img.ID]; ok {
			return fmt.Errorf("duplicate id %d at index %d (first seen at index %d)", img.ID, i, prev)
		}
		seen[img.ID] = i
		if img.UploadDate.IsZero() {
			return fmt.Errorf("image %d is missing uploadDate", img.ID)
		}
	}
	return nil
}
