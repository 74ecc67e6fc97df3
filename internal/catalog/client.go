package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/photogallery/internal/models"
)

// ErrNotFound is returned when the gallery API has no image with the requested id
var ErrNotFound = errors.New("image not found")

// Client talks to the gallery API
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a new gallery API client. An empty baseURL means
// request paths are used as-is, relative to whatever host serves them.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// statusError is a non-2xx answer from the API
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.Code, e.Body)
}

// FetchImages returns the full catalog in server order
func (c *Client) FetchImages(ctx context.Context) ([]models.Image, error) {
	var catalog models.Catalog
	if err := c.getJSON(ctx, "/api/images", &catalog); err != nil {
		slog.Error("Error fetching images", "err", err)
		return nil, fmt.Errorf("failed to fetch images: %w", err)
	}
	return catalog.Images, nil
}

// FetchImageByID returns a single image, or ErrNotFound
func (c *Client) FetchImageByID(ctx context.Context, id int) (models.Image, error) {
	var image models.Image
	if err := c.getJSON(ctx, "/api/images/"+strconv.Itoa(id), &image); err != nil {
		var se *statusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return models.Image{}, ErrNotFound
		}
		slog.Error("Error fetching image", "id", id, "err", err)
		return models.Image{}, fmt.Errorf("failed to fetch image %d: %w", id, err)
	}
	return image, nil
}

// FetchImagesByCategory returns the server-side, case-insensitive category match
func (c *Client) FetchImagesByCategory(ctx context.Context, category string) ([]models.Image, error) {
	var catalog models.Catalog
	if err := c.getJSON(ctx, "/api/images/category/"+url.PathEscape(category), &catalog); err != nil {
		slog.Error("Error fetching images by category", "category", category, "err", err)
		return nil, fmt.Errorf("failed to fetch images by category: %w", err)
	}
	return catalog.Images, nil
}

// Health returns the service health status
func (c *Client) Health(ctx context.Context) (models.HealthStatus, error) {
	var status models.HealthStatus
	if err := c.getJSON(ctx, "/health", &status); err != nil {
		return models.HealthStatus{}, fmt.Errorf("health check failed: %w", err)
	}
	return status, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
