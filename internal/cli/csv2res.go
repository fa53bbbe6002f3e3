package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/berland/res2df/internal/compdat"
	"github.com/berland/res2df/internal/equil"
	"github.com/berland/res2df/internal/frame"
	"github.com/berland/res2df/internal/logger"
)

// ExecuteCsv2res runs the csv2res command tree.
func ExecuteCsv2res() {
	_ = godotenv.Load()

	if err := newCsv2resCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCsv2resCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "csv2res",
		Short:        "Render CSV files back to simulator deck include files",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newCsvCompdatCmd(&verbose),
		newCsvEquilCmd(&verbose),
	)

	return cmd
}

type includeRenderer func(*frame.Frame) string

func newIncludeCmd(verbose *bool, use, short string, render includeRenderer) *cobra.Command {
	var output string

	c := &cobra.Command{
		Use:   use + " CSVFILE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			log := logger.Verbose(*verbose)

			f, err := frame.ReadCSVFile(args[0])
			if err != nil {
				return err
			}

			text := render(f)

			log.Info("rendered include file", "rows", f.Len())

			if output == "" || output == "-" {
				_, err = fmt.Print(text)

				return err
			}

			return os.WriteFile(output, []byte(text), 0644)
		},
	}

	c.Flags().StringVarP(&output, "output", "o", "-", "output include file, - for stdout")

	return c
}

func newCsvCompdatCmd(verbose *bool) *cobra.Command {
	return newIncludeCmd(verbose, "compdat",
		"Render a COMPDAT CSV back to deck text", compdat.WriteInclude)
}

func newCsvEquilCmd(verbose *bool) *cobra.Command {
	return newIncludeCmd(verbose, "equil",
		"Render an EQUIL CSV back to deck text", equil.WriteInclude)
}
