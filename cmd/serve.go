package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/lehigh-university-libraries/photogallery/internal/dataset"
	"github.com/lehigh-university-libraries/photogallery/internal/handlers"
	"github.com/lehigh-university-libraries/photogallery/internal/storage"
	"github.com/lehigh-university-libraries/photogallery/web"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		port      string
		dataPath  string
		staticDir string
		apiURL    string
		ui        bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gallery API server",
		Long: `Loads the image catalog and serves it over HTTP.

Endpoints:
  GET /health
  GET /api/images
  GET /api/images/{id}
  GET /api/images/category/{category}

Unless --ui=false, the browser client is served from every other path.`,
		Example: `  # Start server on default port 3001
  photogallery serve

  # Serve a YAML catalog on a custom port without the browser client
  photogallery serve --data ./catalog.yaml --port 8080 --ui=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("port") {
				port = getEnv("PORT", port)
			}
			if !flags.Changed("data") {
				dataPath = getEnv("PHOTOGALLERY_DATA", dataPath)
			}
			if !flags.Changed("api-url") {
				apiURL = getEnv("PHOTOGALLERY_API_URL", apiURL)
			}

			images, err := dataset.NewLoader(dataPath).Load()
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}
			store := storage.New(images)
			slog.Info("Catalog loaded", "path", dataPath, "images", store.Len(), "categories", len(store.Categories()))

			var static fs.FS
			if ui {
				static = web.Bundle()
				if staticDir != "" {
					static = os.DirFS(staticDir)
				}
			}

			handler := handlers.New(store, handlers.Options{Static: static, APIURL: apiURL})

			addr := ":" + port
			server := &http.Server{
				Addr:         addr,
				Handler:      handler.Routes(),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("PhotoGallery API server running", "addr", addr, "url", "http://localhost"+addr, "ui", ui)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "3001", "Port to listen on (env PORT)")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "data/images.json", "Catalog file (env PHOTOGALLERY_DATA)")
	cmd.Flags().StringVar(&staticDir, "static-dir", "", "Serve the browser client from this directory instead of the embedded bundle")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "API base URL handed to the browser client; empty means same origin (env PHOTOGALLERY_API_URL)")
	cmd.Flags().BoolVar(&ui, "ui", true, "Serve the browser client with single-page fallback routing")

	return cmd
}
