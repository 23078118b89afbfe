package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/pkg/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info [id]",
	Short: "Show file and EXIF details of a capture",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	photo, err := selectPhoto(ctx, args, "info")
	if err != nil {
		return reportError("Failed to select capture", err)
	}

	meta, err := metadataReader.Read(ctx, photo.Path)
	if err != nil {
		return reportError("Failed to read "+photo.ID, err)
	}

	fmt.Println(ui.FormatTitle(photo.ID))
	fmt.Println()
	fmt.Print(ui.RenderKeyValues(infoRows(photo, meta)))
	return nil
}

func infoRows(photo domain.PhotoRecord, meta *domain.PhotoMetadata) [][2]string {
	rows := [][2]string{
		{"Captured", photo.GetDisplayDate(displayLayout())},
		{"Reference", photo.Path},
		{"Size", humanSize(meta.Size)},
		{"Type", meta.ContentType},
	}
	if !meta.HasExif {
		return append(rows, [2]string{"EXIF", "none"})
	}

	if meta.CameraMake != "" || meta.Model != "" {
		rows = append(rows, [2]string{"Camera", joinNonEmpty(meta.CameraMake, meta.Model)})
	}
	if meta.TakenAt != nil {
		rows = append(rows, [2]string{"Taken", meta.TakenAt.Format(displayLayout())})
	}
	if meta.Width > 0 && meta.Height > 0 {
		rows = append(rows, [2]string{"Dimensions", fmt.Sprintf("%dx%d", meta.Width, meta.Height)})
	}
	if meta.Latitude != nil && meta.Longitude != nil {
		rows = append(rows, [2]string{"Location", fmt.Sprintf("%.5f, %.5f", *meta.Latitude, *meta.Longitude)})
	}
	return rows
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
