package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/map-framework/addon-mode-site/pkg/sitemode"
	"github.com/map-framework/addon-mode-site/pkg/storage"
)

func newLastResponseCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "last-response",
		Short: "Print the last response document written by the debug sink",
		Long: `Print the last assembled response document. The server writes it when
site.debug_response_file is enabled, either to a local file or, with
site.debug_storage_key, to object storage.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var r io.ReadCloser
			if key := c.cfg.Site.DebugStorageKey; key != "" {
				st, err := storage.New(c.cfg.Storage)
				if err != nil {
					return err
				}
				if r, err = st.Get(cmd.Context(), key); err != nil {
					return fmt.Errorf("read %s: %w", key, err)
				}
			} else {
				f, err := os.Open(sitemode.NewFileSink(c.cfg.Site.DebugDir).Path())
				if err != nil {
					return err
				}
				r = f
			}
			defer r.Close()

			_, err := io.Copy(cmd.OutOrStdout(), r)
			return err
		},
	}
}
