package images

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lehigh-university-libraries/photogallery/internal/models"
)

// Checker verifies that catalog image locators point at something real
type Checker struct {
	HTTPClient *http.Client
	// BaseURL resolves relative locators. When empty, relative locators are
	// looked up as files under Root.
	BaseURL     string
	Root        string
	Concurrency int
}

// Result is the outcome of checking one locator
type Result struct {
	ImageID int
	Field   string // "url" or "thumbnail"
	Target  string
	Err     error
}

// NewChecker creates a new asset checker
func NewChecker(baseURL, root string, concurrency int) *Checker {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Checker{
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		BaseURL:     baseURL,
		Root:        root,
		Concurrency: concurrency,
	}
}

type job struct {
	index   int
	imageID int
	field   string
	locator string
}

// Check tests the url and thumbnail of every image. Results keep catalog
// order, url before thumbnail.
func (c *Checker) Check(ctx context.Context, imgs []models.Image) []Result {
	jobs := make([]job, 0, len(imgs)*2)
	for _, img := range imgs {
		jobs = append(jobs,
			job{index: len(jobs), imageID: img.ID, field: "url", locator: img.URL},
			job{index: len(jobs) + 1, imageID: img.ID, field: "thumbnail", locator: img.Thumbnail},
		)
	}

	results := make([]Result, len(jobs))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, c.Concurrency)

	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			target, err := c.checkLocator(ctx, j.locator)
			if err != nil {
				slog.Warn("Asset check failed", "id", j.imageID, "field", j.field, "target", target, "error", err)
			} else {
				slog.Debug("Asset check passed", "id", j.imageID, "field", j.field, "target", target)
			}
			results[j.index] = Result{ImageID: j.imageID, Field: j.field, Target: target, Err: err}
		}(j)
	}

	wg.Wait()
	return results
}

func (c *Checker) checkLocator(ctx context.Context, locator string) (string, error) {
	if strings.TrimSpace(locator) == "" {
		return locator, fmt.Errorf("empty locator")
	}

	u, err := url.Parse(locator)
	if err != nil {
		return locator, fmt.Errorf("invalid locator: %w", err)
	}

	if u.IsAbs() {
		return u.String(), c.checkURL(ctx, u.String())
	}

	if c.BaseURL != "" {
		base, err := url.Parse(c.BaseURL)
		if err != nil {
			return locator, fmt.Errorf("invalid base URL: %w", err)
		}
		target := base.ResolveReference(u).String()
		return target, c.checkURL(ctx, target)
	}

	if c.Root != "" {
		path := filepath.Join(c.Root, filepath.FromSlash(strings.TrimPrefix(u.Path, "/")))
		info, err := os.Stat(path)
		if err != nil {
			return path, fmt.Errorf("failed to stat asset: %w", err)
		}
		if info.IsDir() {
			return path, fmt.Errorf("asset is a directory")
		}
		return path, nil
	}

	return locator, fmt.Errorf("relative locator needs a base URL or root directory")
}

// checkURL issues a HEAD request, falling back to GET for servers that
// do not support HEAD.
func (c *Checker) checkURL(ctx context.Context, target string) error {
	status, err := c.request(ctx, http.MethodHead, target)
	if err != nil {
		return err
	}
	if status == http.StatusMethodNotAllowed || status == http.StatusNotImplemented {
		status, err = c.request(ctx, http.MethodGet, target)
		if err != nil {
			return err
		}
	}
	if status != http.StatusOK {
		return fmt.Errorf("asset URL returned status %d", status)
	}
	return nil
}

func (c *Checker) request(ctx context.Context, method, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch asset: %w", err)
	}
	resp.Body.Close()
	return resp.StatusCode, nil
}

// Failures filters results down to the failed checks
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
