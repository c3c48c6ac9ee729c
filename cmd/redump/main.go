package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oisee/redump/pkg/report"
	"github.com/oisee/redump/pkg/session"
)

// format selects the report writer.
type format string

const (
	formatHTML format = "html"
	formatJSON format = "json"
)

func (f *format) String() string { return string(*f) }

func (f *format) Set(s string) error {
	switch format(s) {
	case formatHTML, formatJSON:
		*f = format(s)
		return nil
	}
	return fmt.Errorf("unknown format %q (want html or json)", s)
}

func (f *format) Type() string { return "format" }

type options struct {
	format  format
	output  string
	verbose bool
	noAlign bool
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	o.format = formatHTML
	fs.VarP(&o.format, "format", "f", "Output format (html, json)")
	fs.StringVarP(&o.output, "output", "o", "", "Output file path (default stdout)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose logging to stderr")
	fs.BoolVar(&o.noAlign, "no-align", false, "Compare command streams word for word, without skipping optional words")
}

func newRootCmd(fs afero.Fs, stdout io.Writer) *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:          "redump [flags] FILE...",
		Short:        "Compare GPU command-stream dumps side by side",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return run(fs, stdout, args, opts, logger)
		},
	}
	bindFlags(rootCmd.Flags(), &opts)
	return rootCmd
}

// run opens every input before producing any output, so a bad path fails
// without leaving a partial report behind.
func run(fs afero.Fs, stdout io.Writer, paths []string, opts options, logger *slog.Logger) (err error) {
	s, err := session.Open(fs, paths, session.Config{
		Logger:  logger,
		NoAlign: opts.noAlign,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	out := stdout
	if opts.output != "" {
		f, ferr := fs.Create(opts.output)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", opts.output, cerr)
			}
		}()
		out = f
	}

	var w report.Writer
	switch opts.format {
	case formatJSON:
		w = report.NewJSONWriter(out)
	default:
		w = report.NewHTMLWriter(out)
	}

	if err := s.Run(w); err != nil {
		return err
	}
	if opts.output != "" {
		logger.Info("report written", "path", opts.output, "format", string(opts.format))
	}
	return nil
}

func main() {
	if err := newRootCmd(afero.NewOsFs(), os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
