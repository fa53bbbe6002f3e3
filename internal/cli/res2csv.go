// Package cli wires the res2csv and csv2res command trees.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/berland/res2df/internal/compdat"
	"github.com/berland/res2df/internal/equil"
	"github.com/berland/res2df/internal/faults"
	"github.com/berland/res2df/internal/frame"
	"github.com/berland/res2df/internal/gruptree"
	"github.com/berland/res2df/internal/logger"
	"github.com/berland/res2df/internal/resfiles"
	"github.com/berland/res2df/internal/satfunc"
	"github.com/berland/res2df/internal/summary"
	"github.com/berland/res2df/internal/wcon"
)

// ExecuteRes2csv runs the res2csv command tree.
func ExecuteRes2csv() {
	_ = godotenv.Load()

	if err := newRes2csvCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRes2csvCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "res2csv",
		Short:        "Extract reservoir simulator input and output to CSV",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newCompdatCmd(&verbose),
		newEquilCmd(&verbose),
		newGruptreeCmd(&verbose),
		newWconCmd(&verbose),
		newFaultsCmd(&verbose),
		newSatfuncCmd(&verbose),
		newSummaryCmd(&verbose),
		newBatchCmd(&verbose),
	)

	return cmd
}

func newCompdatCmd(verbose *bool) *cobra.Command {
	var output, startDate string

	c := &cobra.Command{
		Use:   "compdat DATAFILE",
		Short: "Extract well completion data (COMPDAT and friends)",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			log := logger.Verbose(*verbose)

			opts := compdat.Options{}

			if startDate != "" {
				parsed, err := time.Parse("2006-01-02", startDate)
				if err != nil {
					return fmt.Errorf("invalid --start-date: %w", err)
				}

				opts.StartDate = parsed
			}

			f, err := compdat.Df(resfiles.New(args[0]), opts)
			if err != nil {
				return err
			}

			log.Info("extracted completion data", "rows", f.Len())

			return f.WriteCSVFile(output)
		},
	}

	c.Flags().StringVarP(&output, "output", "o", "-", "output CSV file, - for stdout")
	c.Flags().StringVar(&startDate, "start-date", "", "date for rows before the first DATES keyword (YYYY-MM-DD)")

	return c
}

func newSummaryCmd(verbose *bool) *cobra.Command {
	var output string

	var includeRestart bool

	c := &cobra.Command{
		Use:   "summary DATAFILE",
		Short: "Extract summary time series from SMSPEC/UNSMRY",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			log := logger.Verbose(*verbose)

			f, err := summary.Df(resfiles.New(args[0]), summary.Options{
				IncludeRestart: includeRestart,
			})
			if err != nil {
				return err
			}

			log.Info("extracted summary data", "rows", f.Len(), "columns", len(f.Columns()))

			return f.WriteCSVFile(output)
		},
	}

	c.Flags().StringVarP(&output, "output", "o", "-", "output CSV file, - for stdout")
	c.Flags().BoolVar(&includeRestart, "include-restart", false, "prepend history from the restart chain")

	return c
}

// deckExtractor is the common shape of the single-frame deck
// extractors.
type deckExtractor func(*resfiles.ResdataFiles) (*frame.Frame, error)

func newDeckCmd(verbose *bool, use, short, what string, extract deckExtractor) *cobra.Command {
	var output string

	c := &cobra.Command{
		Use:   use + " DATAFILE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			log := logger.Verbose(*verbose)

			f, err := extract(resfiles.New(args[0]))
			if err != nil {
				return err
			}

			log.Info("extracted "+what, "rows", f.Len())

			return f.WriteCSVFile(output)
		},
	}

	c.Flags().StringVarP(&output, "output", "o", "-", "output CSV file, - for stdout")

	return c
}

func newEquilCmd(verbose *bool) *cobra.Command {
	return newDeckCmd(verbose, "equil",
		"Extract equilibration data (EQUIL)", "equilibration data", equil.Df)
}

func newGruptreeCmd(verbose *bool) *cobra.Command {
	return newDeckCmd(verbose, "gruptree",
		"Extract the group tree (GRUPTREE, WELSPECS)", "group tree edges", gruptree.Df)
}

func newWconCmd(verbose *bool) *cobra.Command {
	return newDeckCmd(verbose, "wcon",
		"Extract well control data (WCONHIST, WCONPROD, WCONINJE, WCONINJH)",
		"well control data", wcon.Df)
}

func newFaultsCmd(verbose *bool) *cobra.Command {
	return newDeckCmd(verbose, "faults",
		"Extract fault cells (FAULTS)", "fault cells", faults.Df)
}

func newSatfuncCmd(verbose *bool) *cobra.Command {
	return newDeckCmd(verbose, "satfunc",
		"Extract saturation function tables (SWOF, SGOF, ...)",
		"saturation function tables", satfunc.Df)
}
