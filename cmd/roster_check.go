package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkadlec/rollcall/internal/roster"
)

var rosterCheckCmd = &cobra.Command{
	Use:   "check <roster.csv>",
	Short: "Validate a roster CSV file",
	Long: `Parse a roster CSV and report whether it can be used for attendance.
The file must contain Admission_No and Name columns; Section is optional.

Examples:
  rollcall roster check class_5b.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runRosterCheck,
}

func init() {
	rosterCmd.AddCommand(rosterCheckCmd)
}

func runRosterCheck(cmd *cobra.Command, args []string) error {
	ro, err := roster.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("roster is not usable: %w", err)
	}

	sections := make(map[string]int)
	for _, e := range ro.Entries() {
		if e.Section != "" {
			sections[e.Section]++
		}
	}

	fmt.Printf("Roster OK: %d entries\n", ro.Len())
	if len(sections) > 0 {
		fmt.Printf("  Sections: %d\n", len(sections))
	}
	return nil
}
