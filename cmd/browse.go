package cmd

import (
	"log/slog"

	"github.com/lehigh-university-libraries/photogallery/internal/catalog"
	"github.com/lehigh-university-libraries/photogallery/internal/gallery"
	"github.com/spf13/cobra"
)

const defaultBrowseAPIURL = "http://localhost:3001"

func resolveAPIURL(cmd *cobra.Command, apiURL string) string {
	if !cmd.Flags().Changed("api-url") {
		return getEnv("PHOTOGALLERY_API_URL", defaultBrowseAPIURL)
	}
	return apiURL
}

func newBrowseCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the gallery from the terminal",
		Long: `Fetches the catalog once from a running gallery API, then filters and
previews images locally. Type h at the prompt for commands.`,
		Example: `  photogallery browse --api-url http://localhost:3001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiURL = resolveAPIURL(cmd, apiURL)
			client := catalog.NewClient(apiURL)
			if status, err := client.Health(cmd.Context()); err != nil {
				slog.Warn("Gallery API is not healthy", "url", apiURL, "err", err)
			} else {
				slog.Debug("Gallery API reachable", "url", apiURL, "service", status.Service)
			}
			return gallery.Browse(cmd.Context(), client, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", defaultBrowseAPIURL, "Gallery API base URL (env PHOTOGALLERY_API_URL)")

	return cmd
}
