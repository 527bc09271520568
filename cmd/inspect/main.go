// Command inspect runs the full diagnostic battery against a local file and
// prints the results as tables, optionally writing the distribution and
// co-missingness plots as PNG files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"datalens/domain/table"
)

var (
	flagDelimiter string
	flagNoHeader  bool
	flagSheet     string
	flagColumn    string
	flagPlotsDir  string
)

var rootCmd = &cobra.Command{
	Use:   "inspect",
	Short: "datalens inspect: diagnose a tabular dataset from the command line",
	Long: `Inspect computes the same diagnostic battery as the datalens web UI
(shape, missingness, column profiles, distributions) over a local
CSV, XLS or XLSX file and prints the results as tables.`,
}

var reportCmd = &cobra.Command{
	Use:   "report <file>",
	Short: "Run the full diagnostic battery on a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(args[0], loadOptions())
	},
}

var sheetsCmd = &cobra.Command{
	Use:   "sheets <file>",
	Short: "List the sheet names of a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSheets(args[0])
	},
}

func loadOptions() table.LoadOptions {
	return table.LoadOptions{
		HasHeader: !flagNoHeader,
		Delimiter: table.ParseDelimiter(flagDelimiter),
		SheetName: flagSheet,
	}
}

func init() {
	reportCmd.Flags().StringVar(&flagDelimiter, "delimiter", "comma", "CSV delimiter: comma, semicolon or tab")
	reportCmd.Flags().BoolVar(&flagNoHeader, "no-header", false, "treat the first row as data, not a header")
	reportCmd.Flags().StringVar(&flagSheet, "sheet", "", "sheet name for xls/xlsx files")
	reportCmd.Flags().StringVar(&flagColumn, "column", "", "column to plot a distribution for")
	reportCmd.Flags().StringVar(&flagPlotsDir, "plots-dir", "", "directory to write PNG plots into")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sheetsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
