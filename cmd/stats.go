package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datavista/datavista-cli/internal/dataset"
	"github.com/datavista/datavista-cli/internal/insight"
	"github.com/datavista/datavista-cli/internal/utils"
)

var (
	statsJSON  bool
	statsSheet string
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Extract and print dataset statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0], statsSheet)
		if err != nil {
			return err
		}
		snap := insight.Extract(ds)
		if statsJSON {
			b, err := utils.PrettyJSON(snap)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(b))
			return nil
		}
		printSnapshot(ds.Name, snap)
		return nil
	},
}

func printSnapshot(name string, snap insight.Snapshot) {
	fmt.Printf("File: %s\n", name)
	fmt.Printf("Rows: %d\n", snap.RowCount)
	fmt.Printf("Columns: %d\n", snap.ColumnCount)
	fmt.Printf("Missing: %d (%.2f%%)\n", snap.MissingCount, snap.MissingRatio*100)
	fmt.Printf("Duplicate rows: %d\n", snap.DuplicateCount)
	if c := snap.TopCorrelation; c != nil {
		fmt.Printf("Top correlation: %s ~ %s (r = %.2f)\n", c.ColumnA, c.ColumnB, c.Coefficient)
	} else {
		fmt.Println("Top correlation: none")
	}
	fmt.Println("\nColumns:")
	for _, p := range snap.Profiles {
		fmt.Printf("- %s: %s (non-null %d)", p.Name, p.Kind, p.Count)
		if p.Kind == dataset.KindNumeric {
			fmt.Printf(" — min %.4g, max %.4g, mean %.4g, std %.4g", p.Min, p.Max, p.Mean, p.Std)
		} else if len(p.TopValues) > 0 {
			fmt.Print(" — top: ")
			for i, tv := range p.TopValues {
				if i > 0 {
					fmt.Print(", ")
				}
				fmt.Printf("%s(%d)", tv.Value, tv.Count)
			}
		}
		fmt.Println()
	}
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print the snapshot as JSON")
	statsCmd.Flags().StringVar(&statsSheet, "sheet", "", "sheet name for .xlsx input (default first sheet)")
	rootCmd.AddCommand(statsCmd)
}
