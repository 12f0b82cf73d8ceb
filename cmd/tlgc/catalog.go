package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Microsoft/go-tracelogging/pkg/tracelogging/catalog"
)

type kindReport struct {
	Name     string `json:"name"`
	Strategy string `json:"strategy"`
	InType   uint8  `json:"in_type"`
	OutType  uint8  `json:"out_type"`
	Type     string `json:"type,omitempty"`
}

func newCatalogCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the field options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := make([]kindReport, 0, len(catalog.Kinds))
			for i := range catalog.Kinds {
				k := &catalog.Kinds[i]
				r := kindReport{
					Name:     k.Name,
					Strategy: k.Strategy.String(),
					InType:   uint8(k.InType),
					OutType:  uint8(k.OutType),
				}
				if k.ValueType != nil {
					r.Type = k.ValueType.String()
					if k.ArrayLen != 0 {
						r.Type = fmt.Sprintf("[%d]%s", k.ArrayLen, r.Type)
					}
				}
				kinds = append(kinds, r)
			}

			if opts.format == "json" {
				return writeJSON(cmd.OutOrStdout(), kinds)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tSTRATEGY\tIN\tOUT\tTYPE")
			for _, k := range kinds {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", k.Name, k.Strategy, k.InType, k.OutType, k.Type)
			}
			return tw.Flush()
		},
	}
}
