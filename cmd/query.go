package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/lehigh-university-libraries/photogallery/internal/catalog"
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query a running gallery API and print the JSON answer",
		Example: `  photogallery query image 3
  photogallery query category "Black/White" --api-url http://localhost:3001
  photogallery query health`,
	}

	cmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultBrowseAPIURL, "Gallery API base URL (env PHOTOGALLERY_API_URL)")

	client := func(cmd *cobra.Command) *catalog.Client {
		return catalog.NewClient(resolveAPIURL(cmd, apiURL))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "image <id>",
		Short: "Fetch one image by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid image id %q", args[0])
			}
			image, err := client(cmd).FetchImageByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), image)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "category <name>",
		Short: "Fetch the images in a category, matched case-insensitively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			images, err := client(cmd).FetchImagesByCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), images)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "health",
		Short: "Check the API health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := client(cmd).Health(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	})

	return cmd
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
