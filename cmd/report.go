package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tkadlec/rollcall/internal/attendance"
	"github.com/tkadlec/rollcall/internal/config"
	"github.com/tkadlec/rollcall/internal/detect"
	"github.com/tkadlec/rollcall/internal/imaging"
	"github.com/tkadlec/rollcall/internal/region"
	"github.com/tkadlec/rollcall/internal/roster"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build an attendance report without the web UI",
	Long: `Detect faces in a photo and build an attendance report from explicit
region-to-student bindings. Run "rollcall detect" first to see the region
ids, then bind each id to an admission number.

Binding the same student to two regions needs --allow-duplicates, the same
confirmation the web UI asks for interactively.

Examples:
  rollcall report --roster class_5b.csv --photo monday.jpg \
    --assign 1=A001 --assign 2=A007 --assign 3=A003`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("roster", "", "Roster CSV file (required)")
	reportCmd.Flags().String("photo", "", "Group photo to detect faces in (required)")
	reportCmd.Flags().StringArray("assign", nil, "Region binding as <region-id>=<admission-no> (repeatable)")
	reportCmd.Flags().Bool("allow-duplicates", false, "Confirm bindings of a student already bound to another region")
	reportCmd.Flags().String("out", "", "Output directory (defaults to OUTPUT_DIR or the working directory)")
	_ = reportCmd.MarkFlagRequired("roster")
	_ = reportCmd.MarkFlagRequired("photo")
}

func runReport(cmd *cobra.Command, args []string) error {
	rosterPath, _ := cmd.Flags().GetString("roster")
	photoPath, _ := cmd.Flags().GetString("photo")
	assignments, _ := cmd.Flags().GetStringArray("assign")
	allowDuplicates, _ := cmd.Flags().GetBool("allow-duplicates")
	outDir, _ := cmd.Flags().GetString("out")

	cfg := config.Load()
	if outDir == "" {
		outDir = cfg.Output.Dir
	}

	ro, err := roster.LoadFile(rosterPath)
	if err != nil {
		return err
	}

	img, err := imaging.Load(photoPath)
	if err != nil {
		return err
	}

	detector, err := detect.New(cfg)
	if err != nil {
		return err
	}

	rects, err := detector.Detect(context.Background(), img)
	if err != nil {
		return err
	}
	batch := region.NewBatch(rects)
	fmt.Printf("Detected %d faces in %s\n", batch.Len(), photoPath)

	for _, binding := range assignments {
		if err := applyBinding(batch, ro, binding, allowDuplicates); err != nil {
			return err
		}
	}

	records, err := attendance.BuildReport(ro, batch, filepath.Base(photoPath))
	if err != nil {
		return err
	}

	path, err := attendance.Save(outDir, records)
	if err != nil {
		return err
	}

	present := 0
	for _, rec := range records {
		if rec.Status == attendance.Present {
			present++
		}
	}
	fmt.Printf("Report saved to %s (%d present, %d absent)\n", path, present, len(records)-present)
	return nil
}

// applyBinding parses one <region-id>=<admission-no> pair and assigns it.
func applyBinding(batch *region.Batch, ro *roster.Roster, binding string, allowDuplicates bool) error {
	idStr, admissionNo, found := strings.Cut(binding, "=")
	if !found {
		return fmt.Errorf("invalid --assign value %q, expected <region-id>=<admission-no>", binding)
	}

	id, err := strconv.Atoi(strings.TrimSpace(idStr))
	if err != nil {
		return fmt.Errorf("invalid region id in %q: %w", binding, err)
	}
	reg := batch.ByID(id)
	if reg == nil {
		return fmt.Errorf("no region #%d, run \"rollcall detect\" to list regions", id)
	}

	entry, ok := ro.FindByAdmission(strings.TrimSpace(admissionNo))
	if !ok {
		return fmt.Errorf("no roster entry with admission number %q", admissionNo)
	}

	err = batch.Assign(reg, entry, allowDuplicates)
	var dup *region.DuplicateError
	if errors.As(err, &dup) {
		return fmt.Errorf("%s is already bound to region #%d; pass --allow-duplicates to confirm", admissionNo, dup.Region.ID)
	}
	return err
}
