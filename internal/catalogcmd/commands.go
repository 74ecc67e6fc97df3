package catalogcmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/lehigh-university-libraries/photogallery/internal/dataset"
	"github.com/lehigh-university-libraries/photogallery/internal/images"
	"github.com/lehigh-university-libraries/photogallery/internal/storage"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates the validate command
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a catalog file loads and satisfies catalog rules",
		Long: `Loads a catalog file exactly as the server would and reports problems.

A valid catalog has unique, positive ids and an uploadDate on every image.`,
		Example: `  photogallery catalog validate data/images.json`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeValidate(cmd.OutOrStdout(), args[0])
		},
	}
}

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list <file>",
		Short: "Print the images in a catalog file",
		Example: `  # Everything, in file order
  photogallery catalog list data/images.json

  # Case-insensitive category match, same as the API
  photogallery catalog list data/images.json --category nature`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeList(cmd.OutOrStdout(), args[0], category)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list images in this category (case-insensitive)")

	return cmd
}

// NewConvertCmd creates the convert command
func NewConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Re-encode a catalog file in another format",
		Long: `Converts a catalog between JSON, JSONL, YAML, and Parquet. Formats are
chosen by file extension (.json, .jsonl, .yaml/.yml, .parquet). Image order is
preserved.`,
		Example: `  photogallery catalog convert data/images.json data/images.parquet`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeConvert(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

// NewCheckCmd creates the check command
func NewCheckCmd() *cobra.Command {
	var baseURL string
	var root string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Verify that every image url and thumbnail resolves",
		Long: `Checks the url and thumbnail of every image in a catalog.

Absolute URLs are requested directly. Relative locators are resolved against
--base-url, or looked up as files under --root when no base URL is given.`,
		Example: `  # Assets hosted next to the web client
  photogallery catalog check data/images.json --base-url https://gallery.example.com

  # Assets in a local directory
  photogallery catalog check data/images.json --root ./public`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker := images.NewChecker(baseURL, root, concurrency)
			return executeCheck(cmd, checker, args[0])
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Base URL for relative locators")
	cmd.Flags().StringVar(&root, "root", "", "Directory for relative locators when no base URL is set")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of concurrent checks")

	return cmd
}

func executeValidate(out io.Writer, path string) error {
	imgs, err := dataset.NewLoader(path).Load()
	if err != nil {
		return err
	}
	store := storage.New(imgs)

	fmt.Fprintf(out, "%s: %d images\n", path, store.Len())
	fmt.Fprintf(out, "Categories: %s\n", strings.Join(store.Categories(), ", "))
	return nil
}

func executeList(out io.Writer, path, category string) error {
	imgs, err := dataset.NewLoader(path).Load()
	if err != nil {
		return err
	}
	store := storage.New(imgs)

	selected := store.All()
	if category != "" {
		selected = store.ByCategory(category)
	}

	for _, img := range selected {
		fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%s\n", img.ID, img.Title, img.Category, img.Photographer, img.UploadDate.Format("2006-01-02"))
	}
	return nil
}

func executeConvert(out io.Writer, input, output string) error {
	if dataset.Format(output) == dataset.FormatUnknown {
		return fmt.Errorf("unsupported output format: %s", output)
	}

	imgs, err := dataset.NewLoader(input).Load()
	if err != nil {
		return err
	}
	if err := dataset.Write(output, imgs); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %d images to %s\n", len(imgs), output)
	return nil
}

func executeCheck(cmd *cobra.Command, checker *images.Checker, path string) error {
	imgs, err := dataset.NewLoader(path).Load()
	if err != nil {
		return err
	}

	results := checker.Check(cmd.Context(), imgs)
	failed := images.Failures(results)

	out := cmd.OutOrStdout()
	for _, r := range failed {
		fmt.Fprintf(out, "FAIL id=%d %s %s: %v\n", r.ImageID, r.Field, r.Target, r.Err)
	}
	fmt.Fprintf(out, "Checked %d locators, %d failed\n", len(results), len(failed))

	if len(failed) > 0 {
		return fmt.Errorf("%d asset checks failed", len(failed))
	}
	return nil
}
