package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/photogallery/internal/models"
)

// Write encodes images to path, choosing the format by extension.
// Record order is preserved in every format.
func Write(path string, images []models.Image) error {
	switch Format(path) {
	case FormatJSON:
		data, err := json.MarshalIndent(models.Catalog{Images: nonNil(images)}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return writeFile(path, append(data, '\n'))
	case FormatJSONL:
		return writeJSONL(path, images)
	case FormatYAML:
		data, err := yaml.Marshal(&models.Catalog{Images: nonNil(images)})
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return writeFile(path, data)
	case FormatParquet:
		return writeParquet(path, images)
	default:
		return fmt.Errorf("unsupported output format for %s", path)
	}
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

func writeJSONL(path string, images []models.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create catalog file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, img := range images {
		if err := enc.Encode(img); err != nil {
			return fmt.Errorf("failed to encode image %d: %w", img.ID, err)
		}
	}
	return file.Close()
}

func writeParquet(path string, images []models.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	defer file.Close()

	rows := make([]imageRow, 0, len(images))
	for _, img := range images {
		rows = append(rows, rowFromImage(img))
	}

	writer := parquet.NewGenericWriter[imageRow](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return file.Close()
}

func nonNil(images []models.Image) []models.Image {
	if images == nil {
		return []models.Image{}
	}
	return images
}
