package main

import (
	"github.com/spf13/cobra"

	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/layout"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/schema"
	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/syntax"
)

func newProviderCmd(opts *options) *cobra.Command {
	var id, groupID string

	cmd := &cobra.Command{
		Use:   "provider NAME",
		Short: "Print the ID and metadata block of a provider",
		Long: "Prints the provider ID derived from NAME (unless --id is given) and the\n" +
			"provider metadata block, including the group trait when --group-id is set.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var popts []*syntax.Option
			if id != "" {
				popts = append(popts, syntax.Opt("id", syntax.Str(id)))
			}
			if groupID != "" {
				popts = append(popts, syntax.Opt("group_id", syntax.Str(groupID)))
			}

			m, err := schema.ParseProvider(syntax.NewProvider("", args[0], popts...))
			if err != nil {
				opts.logDiagnostics("", err)
				return err
			}

			r := newProviderReport(m, layout.EncodeProvider(m))
			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			writeProviderText(cmd.OutOrStdout(), r)
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Provider ID (default: derived from the name)")
	cmd.Flags().StringVar(&groupID, "group-id", "", "Provider group ID")
	return cmd
}
