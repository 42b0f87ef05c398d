package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/txf/internal/metrics"
	"github.com/beetlebugorg/txf/pkg/txf"
)

func newCheckCmd(a *app) *cobra.Command {
	var failFast bool

	cmd := &cobra.Command{
		Use:   "check <file|dir>...",
		Short: "Validate TXF files in parallel",
		Long: `Parses every TXF file given, directories included, and reports each
failure with its line number. Exits with a non-zero status if any file fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := discover(args)
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no TXF files found")
			}

			recorder := metrics.NewRecorder()
			opts := a.cfg.LoadOptions(nil)
			if failFast {
				opts.SkipErrors = false
			}
			opts.OnLoad = func(path string, doc *txf.Document, err error, elapsed time.Duration) {
				recorder.Observe(path, doc, err, elapsed)
				if err != nil {
					a.log.Warn("invalid file", "file", path, "kind", txf.ErrorKind(err), "error", err)
					return
				}
				a.log.Info("valid file", "file", path, "objects", doc.ObjectCount(), "elapsed", elapsed)
			}

			set, errs := txf.LoadFilesParallel(paths, txf.NewParser(), opts)

			out := cmd.OutOrStdout()
			for _, err := range errs {
				fmt.Fprintf(out, "FAIL %v\n", err)
			}
			valid := 0
			if set != nil {
				valid = len(set.Entries)
			}
			fmt.Fprintf(out, "checked %d files: %d valid, %d invalid\n", len(paths), valid, len(errs))

			if textfile := a.cfg.Metrics.Textfile; textfile != "" {
				if err := recorder.WriteTextfile(textfile); err != nil {
					return err
				}
				a.log.Debug("metrics written", "file", textfile)
			}

			if len(errs) > 0 {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().Int("workers", 0, "parallel parsers (0 = one per CPU)")
	cmd.Flags().String("metrics-textfile", "", "write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "stop at the first invalid file")
	a.bindLocal(cmd, "load.workers", "workers")
	a.bindLocal(cmd, "metrics.textfile", "metrics-textfile")
	return cmd
}
