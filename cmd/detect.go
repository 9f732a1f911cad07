package cmd

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tkadlec/rollcall/internal/config"
	"github.com/tkadlec/rollcall/internal/detect"
	"github.com/tkadlec/rollcall/internal/imaging"
	"github.com/tkadlec/rollcall/internal/region"
)

var detectCmd = &cobra.Command{
	Use:   "detect <photo> [photo...]",
	Short: "Detect face regions in one or more photos",
	Long: `Run the face detector over photos and print the detected regions with
their ids and pixel coordinates. Region ids are what the report command's
--assign flag refers to.

The detector backend comes from DETECTOR_BACKEND ("pigo" by default, needs
CASCADE_PATH pointing at the facefinder cascade file; or "remote" with
DETECTOR_URL).

Examples:
  rollcall detect class_photo.jpg
  rollcall detect monday/*.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetect,
}

func init() {
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	detector, err := detect.New(cfg)
	if err != nil {
		return err
	}

	// A bar only helps when scanning a pile of photos.
	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.Default(int64(len(args)), "detecting")
	}

	ctx := context.Background()
	for _, path := range args {
		img, err := imaging.Load(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		rects, err := detector.Detect(ctx, img)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		batch := region.NewBatch(rects)
		if bar != nil {
			bar.Add(1)
		}

		fmt.Printf("%s: %d faces\n", path, batch.Len())
		for _, reg := range batch.Regions() {
			fmt.Printf("  #%d  x=%d y=%d w=%d h=%d\n", reg.ID, reg.X, reg.Y, reg.W, reg.H)
		}
	}
	return nil
}
