package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/berland/res2df/internal/compdat"
	"github.com/berland/res2df/internal/config"
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

func newBatchCmd(verbose *bool) *cobra.Command {
	var configFile string

	c := &cobra.Command{
		Use:   "batch",
		Short: "Run all enabled extraction jobs from a YAML config",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}

			log := logger.New(cfg.Batch.Logging.Level)
			if *verbose {
				log = logger.Verbose(true)
			}

			jobs := cfg.EnabledJobs()
			log.Info("starting batch extraction", "jobs", len(jobs))

			failed := 0

			for i := range jobs {
				if err := runJob(cfg, &jobs[i], log); err != nil {
					log.Error("job failed", "job", jobs[i].CaseName(), "error", err)

					failed++
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d jobs failed", failed, len(jobs))
			}

			log.Info("batch extraction complete", "jobs", len(jobs))

			return nil
		},
	}

	c.Flags().StringVarP(&configFile, "config", "c", "", "YAML batch configuration file")
	_ = c.MarkFlagRequired("config")

	return c
}

func runJob(cfg *config.Config, job *config.JobConfig, log *logger.Logger) error {
	files := resfiles.New(job.Datafile)
	jobLog := log.With("job", job.CaseName())

	for _, name := range job.Extractors {
		name = strings.ToLower(name)

		f, err := runExtractor(name, files, job)
		if err != nil {
			return fmt.Errorf("extractor %s: %w", name, err)
		}

		path := cfg.OutputPath(job, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}

		if err := f.WriteCSVFile(path); err != nil {
			return fmt.Errorf("extractor %s: %w", name, err)
		}

		jobLog.Info("wrote extractor output", "extractor", name, "rows", f.Len(), "path", path)
	}

	return nil
}

func runExtractor(name string, files *resfiles.ResdataFiles, job *config.JobConfig) (*frame.Frame, error) {
	switch name {
	case "compdat":
		opts := compdat.Options{}

		if job.StartDate != "" {
			parsed, err := time.Parse("2006-01-02", job.StartDate)
			if err != nil {
				return nil, fmt.Errorf("invalid start_date: %w", err)
			}

			opts.StartDate = parsed
		}

		return compdat.Df(files, opts)
	case "equil":
		return equil.Df(files)
	case "gruptree":
		return gruptree.Df(files)
	case "wcon":
		return wcon.Df(files)
	case "faults":
		return faults.Df(files)
	case "satfunc":
		return satfunc.Df(files)
	case "summary":
		return summary.Df(files, summary.Options{IncludeRestart: true})
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownExtractor, name)
	}
}
