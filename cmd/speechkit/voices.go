package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ent0n29/speechkit/internal/config"
	"github.com/ent0n29/speechkit/internal/voices"
)

func newVoicesCommand() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:     "voices",
		Short:   "List the voices in the catalog",
		Example: `speechkit voices --lang en-GB`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			catalog, err := voices.Load(cfg.DefaultVoice, cfg.VoicesFile)
			if err != nil {
				return err
			}
			return printVoices(cmd.OutOrStdout(), catalog, lang)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "", "only voices whose language starts with this tag, e.g. en or en-US")
	return cmd
}

func printVoices(w io.Writer, catalog *voices.Catalog, lang string) error {
	list := catalog.List()
	if lang != "" {
		list = catalog.ByLanguage(lang)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLANG\tGENDER\tSTYLE\t")
	for _, v := range list {
		marker := ""
		if v.ID == catalog.DefaultID() {
			marker = " *"
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\t%s\t%s\t\n", v.ID, marker, v.Name, v.Lang(), v.Gender, v.Style)
	}
	return tw.Flush()
}
