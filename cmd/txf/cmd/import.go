package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/txf/internal/store"
	"github.com/beetlebugorg/txf/pkg/txf"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file|dir>...",
		Short: "Parse TXF files and store them in a SQLite database",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := discover(args)
			if err != nil {
				return err
			}

			opts := a.cfg.LoadOptions(nil)
			opts.OnLoad = func(path string, doc *txf.Document, err error, _ time.Duration) {
				if err != nil {
					a.log.Warn("skipping invalid file", "file", path, "kind", txf.ErrorKind(err), "error", err)
				}
			}
			set, errs := txf.LoadFilesParallel(paths, txf.NewParser(), opts)
			if set == nil {
				return errs[0]
			}

			db, err := store.Open(store.Config{Path: a.cfg.Store.Path})
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			for _, entry := range set.Entries {
				id, err := db.SaveDocument(cmd.Context(), entry.Path, entry.Document)
				if err != nil {
					return fmt.Errorf("%s: %w", entry.Path, err)
				}
				a.log.Info("imported", "file", entry.Path, "id", id, "objects", entry.Document.ObjectCount())
				fmt.Fprintf(out, "%s\t%s\n", id, entry.Path)
			}
			fmt.Fprintf(out, "imported %d of %d files into %s\n", len(set.Entries), len(paths), a.cfg.Store.Path)

			if len(errs) > 0 {
				return errFailed
			}
			return nil
		},
	}

	cmd.Flags().String("db", "", "SQLite database path (default from store.path)")
	a.bindLocal(cmd, "store.path", "db")
	return cmd
}
