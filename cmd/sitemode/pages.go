package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/map-framework/addon-mode-site/internal/demo"
	"github.com/map-framework/addon-mode-site/pkg/logger"
)

func newPagesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List registered pages and check their templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := newRegistry(c.cfg, logger.NewNope(), demo.NewShop(demoStock))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PAGE\tTEMPLATE\tSTATUS")

			var failed error
			for _, id := range reg.Pages() {
				area, name, _ := strings.Cut(id, "/")
				status := "ok"
				if _, err := reg.Resolve(cmd.Context(), area, name); err != nil {
					status = err.Error()
					failed = errors.Join(failed, err)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", id, reg.TemplatePath(area, name), status)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return failed
		},
	}
}
