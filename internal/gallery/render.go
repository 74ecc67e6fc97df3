package gallery

import (
	"fmt"
	"io"
	"strings"
)

const dateLayout = "Jan 2, 2006"

// Render writes a text rendering of the gallery: header, then the error
// banner, loading line, or filter bar and grid, then the overlay if open.
func Render(w io.Writer, s *State) error {
	var b strings.Builder

	b.WriteString("PhotoGallery Demo\n")
	b.WriteString("=================\n")

	switch s.Status() {
	case StatusLoading:
		b.WriteString("Loading images...\n")
	case StatusError:
		fmt.Fprintf(&b, "! %s\n", s.Error())
	case StatusReady:
		renderFilterBar(&b, s)
		renderGrid(&b, s)
		renderOverlay(&b, s)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderFilterBar(b *strings.Builder, s *State) {
	b.WriteString("\nFilter by Category:")
	for _, c := range s.Categories() {
		if c == s.SelectedCategory() {
			fmt.Fprintf(b, " [%s]", c)
		} else {
			fmt.Fprintf(b, " %s", c)
		}
	}
	b.WriteString("\n\n")
}

func renderGrid(b *strings.Builder, s *State) {
	images := s.Filtered()
	if len(images) == 0 {
		b.WriteString("No images found\n")
		return
	}
	for _, img := range images {
		fmt.Fprintf(b, "%4d  %s | %s | by %s | %s\n", img.ID, img.Title, img.Category, img.Photographer, img.Thumbnail)
	}
}

func renderOverlay(b *strings.Builder, s *State) {
	img, ok := s.Selected()
	if !ok {
		return
	}
	b.WriteString("\n+--------------------------------------------------\n")
	fmt.Fprintf(b, "| %s\n", img.Title)
	fmt.Fprintf(b, "| %s\n", img.Description)
	fmt.Fprintf(b, "| [%s]  Photo by %s  %s\n", img.Category, img.Photographer, img.UploadDate.Format(dateLayout))
	fmt.Fprintf(b, "| %s\n", img.URL)
	b.WriteString("+--------------------------------------------------\n")
}
