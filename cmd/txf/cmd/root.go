// Package cmd implements the txf command line tool.
package cmd

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/txf/internal/config"
	"github.com/beetlebugorg/txf/internal/logging"
	"github.com/beetlebugorg/txf/pkg/txf"
)

var (
	Version   = "0.1.0"
	GitCommit = "development"
)

// errFailed signals a run that found invalid files. The details were
// already reported, so main only needs the exit status.
var errFailed = errors.New("one or more files failed")

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
}

// Execute runs the txf command line.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the command tree. Each call returns independent
// flags and configuration.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "txf",
		Short: "Inspect and validate SXF/SIT text exchange files",
		Long: `txf reads TXF files, the text form of the SXF/SIT cartographic
exchange format, and checks their structure and declared counts.

Commands:
  info    - summary of one file
  dump    - full content as JSON or YAML
  check   - validate many files in parallel
  query   - objects inside a bounding box
  import  - store files in a SQLite database`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default: ./txf.yaml)")
	flags.String("encoding", txf.DefaultEncoding, "text encoding of the input files")
	flags.Int("max-line-size", txf.DefaultMaxLineSize, "longest accepted line in bytes")
	flags.Bool("reject-trailing", false, "fail on content after .END")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	a.bind(rootCmd, "parse.encoding", "encoding")
	a.bind(rootCmd, "parse.max_line_size", "max-line-size")
	a.bind(rootCmd, "parse.reject_trailing", "reject-trailing")
	a.bind(rootCmd, "log.level", "log-level")
	a.bind(rootCmd, "log.format", "log-format")

	rootCmd.AddCommand(
		newInfoCmd(a),
		newDumpCmd(a),
		newCheckCmd(a),
		newQueryCmd(a),
		newImportCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// bind ties a viper key to a persistent flag of cmd. Only flags set on the
// command line override file and environment values.
func (a *app) bind(cmd *cobra.Command, key, flag string) {
	_ = a.v.BindPFlag(key, cmd.PersistentFlags().Lookup(flag))
}

// bindLocal ties a viper key to a local flag of cmd.
func (a *app) bindLocal(cmd *cobra.Command, key, flag string) {
	_ = a.v.BindPFlag(key, cmd.Flags().Lookup(flag))
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.Setup(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	return nil
}

// parseFile parses one file with the configured options.
func (a *app) parseFile(path string) (*txf.Document, error) {
	doc, err := txf.NewParser().ParseWithOptions(path, a.cfg.ParseOptions())
	if err != nil {
		a.log.Error("parse failed", "file", path, "kind", txf.ErrorKind(err), "error", err)
		return nil, err
	}
	a.log.Debug("parsed", "file", path, "objects", doc.ObjectCount())
	return doc, nil
}

// discover expands file and directory arguments into TXF file paths.
func discover(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		found, err := txf.DiscoverFiles(arg)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}
