package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkadlec/rollcall/internal/roster"
)

var rosterSearchCmd = &cobra.Command{
	Use:   "search <roster.csv> [query]",
	Short: "Search a roster by name or admission number",
	Long: `Search a roster CSV case-insensitively by name or admission number.
Diacritics are ignored, so "jiri" finds "Jiří". Without a query every
entry is listed in file order.

Examples:
  rollcall roster search class_5b.csv ann
  rollcall roster search class_5b.csv A00
  rollcall roster search class_5b.csv`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRosterSearch,
}

func init() {
	rosterCmd.AddCommand(rosterSearchCmd)
}

func runRosterSearch(cmd *cobra.Command, args []string) error {
	ro, err := roster.LoadFile(args[0])
	if err != nil {
		return err
	}

	query := ""
	if len(args) > 1 {
		query = args[1]
	}

	indices := ro.Search(query)
	if len(indices) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, idx := range indices {
		display, err := ro.Display(idx)
		if err != nil {
			return err
		}
		fmt.Printf("%4d  %s\n", idx, display)
	}
	fmt.Printf("%d of %d entries\n", len(indices), ro.Len())
	return nil
}
