package main

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	format     string
	verbose    bool
	constants  map[string]int64

	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{log: logrus.New()}

	cmd := &cobra.Command{
		Use:          "tlgc",
		Short:        "Compile TraceLogging event descriptions",
		Long:         "Validates provider and event descriptions and prints the metadata blocks and\ndata descriptor plans they compile to.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a TOML config file")
	cmd.PersistentFlags().StringVarP(&opts.format, "format", "f", "text", "Output format (text|json)")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug output")

	cmd.AddCommand(
		newCompileCmd(opts),
		newProviderCmd(opts),
		newCatalogCmd(opts),
	)
	return cmd
}

// load applies the config file, then the flags set on the command line.
func (o *options) load(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if o.configPath != "" {
		cfg, err := loadConfig(o.configPath)
		if err != nil {
			return err
		}
		if cfg.format != "" && !flags.Changed("format") {
			o.format = cfg.format
		}
		if cfg.verbose && !flags.Changed("verbose") {
			o.verbose = true
		}
		o.constants = cfg.constants
	}

	switch o.format {
	case "text", "json":
	default:
		return errors.Errorf("unknown format %q (expected text or json)", o.format)
	}

	o.log.SetOutput(cmd.ErrOrStderr())
	o.log.SetLevel(logrus.InfoLevel)
	if o.verbose {
		o.log.SetLevel(logrus.DebugLevel)
		// The compiler logs through the standard logger.
		logrus.SetOutput(cmd.ErrOrStderr())
		logrus.SetLevel(logrus.DebugLevel)
	}
	if o.format == "json" {
		o.log.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}
