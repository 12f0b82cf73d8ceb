package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Microsoft/go-tracelogging/pkg/tracelogging"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/diag"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

func newCompileCmd(opts *options) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "compile FILE...",
		Short: "Validate description files and print their compiled metadata",
		Long: "Loads YAML provider and event descriptions, reports every diagnostic\n" +
			"with its position, and prints the provider metadata, event metadata and\n" +
			"data descriptor plan of each event.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := opts.compileFiles(cmd, args)
			if !watch {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return opts.watch(ctx, cmd, args)
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Recompile when a file changes")
	return cmd
}

// compileFiles compiles each file and writes its report. Diagnostics are
// logged, and counted in the returned error.
func (o *options) compileFiles(cmd *cobra.Command, paths []string) error {
	env := schema.NewEnv(o.constants)
	failed := 0
	for _, path := range paths {
		prog, err := compileFile(path, env)
		if err != nil {
			failed += o.logDiagnostics(path, err)
			continue
		}

		r := newFileReport(prog)
		if o.format == "json" {
			if err := writeJSON(cmd.OutOrStdout(), r); err != nil {
				return err
			}
		} else {
			writeFileText(cmd.OutOrStdout(), r)
		}
	}
	if failed != 0 {
		return errors.Errorf("%d diagnostic(s)", failed)
	}
	return nil
}

func compileFile(path string, env *schema.Env) (*tracelogging.Program, error) {
	f, err := syntax.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return tracelogging.CompileFile(f, env)
}

func (o *options) logDiagnostics(path string, err error) int {
	ds := diag.Diagnostics(err)
	for _, d := range ds {
		file := d.Pos.File
		if file == "" {
			file = path
		}
		o.log.WithFields(logrus.Fields{
			"file": file,
			"line": d.Pos.Line,
			"col":  d.Pos.Col,
		}).Error(d.Msg)
	}
	return len(ds)
}

// watch recompiles paths whenever one of them is written, until ctx is done.
func (o *options) watch(ctx context.Context, cmd *cobra.Command, paths []string) error {
	w, err := newWatcher(paths, o.log)
	if err != nil {
		return err
	}
	return w.run(ctx, func() {
		if err := o.compileFiles(cmd, paths); err != nil {
			o.log.WithError(err).Warn("recompile failed")
		} else {
			o.log.Info("recompiled")
		}
	})
}
