package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/map-framework/addon-mode-site/internal/config"
)

// cli holds what every subcommand shares.
type cli struct {
	cfgFile string
	viper   *viper.Viper
	cfg     *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "sitemode",
		Short: "Serve site pages and their forms",
		Long: `sitemode serves pages at /{area}/{page} and tracks their forms across
requests: fresh views, restored views after a rejection, accepted and rejected
submissions, and repeated submissions of an accepted form.

Configuration is read from a YAML file (--config or SITEMODE_CONFIG_FILE) and
SITEMODE_* environment variables, e.g. SITEMODE_SESSION_STORE=redis.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
	}

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default $SITEMODE_CONFIG_FILE)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(c),
		newConfigCmd(c),
		newPagesCmd(c),
		newMigrateCmd(c),
		newLastResponseCmd(c),
	)
	return root
}

func (c *cli) load(cmd *cobra.Command) error {
	file := c.cfgFile
	if file == "" {
		file = os.Getenv(config.EnvPrefix + "_CONFIG_FILE")
	}

	v, err := config.New(file)
	if err != nil {
		return err
	}
	if err := v.BindPFlag("logger.level", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("addr"); f != nil {
		if err := v.BindPFlag("server.address", f); err != nil {
			return err
		}
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	c.viper = v
	c.cfg = cfg
	return nil
}
