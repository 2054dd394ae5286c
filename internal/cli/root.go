// Package cli holds the satrelay cobra commands.
package cli

import (
	"fmt"

	"sensor_relay/internal/config"
	"sensor_relay/internal/logger"

	"github.com/spf13/cobra"
)

// app carries what PersistentPreRunE prepared for the subcommands.
type app struct {
	configFile string
	logLevel   string

	cfg *config.Config
	log *logger.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "satrelay",
		Short: "Satellite sensor relay",
		Long: `satrelay polls a satellite for sensor readings, caches them in memory
and serves them over HTTP. It also forwards sensor creation to the satellite.`,
		Example: `satrelay serve --config configs/config.yml
satrelay poll
satrelay create-sensor --frequency 1245`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&a.configFile, "config", "c", "", "Config file (default: configs/config.yml when present)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log.level (debug|info|warn|error)")

	cmd.AddCommand(
		newServeCmd(a),
		newPollCmd(a),
		newCreateSensorCmd(a),
	)
	return cmd
}

func (a *app) load() error {
	v := config.New(a.configFile)
	if a.logLevel != "" {
		v.Set("log.level", a.logLevel)
	}
	cfg, err := config.Load(v, a.configFile != "")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.log = logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	return nil
}

func Execute() error {
	return NewRootCmd().Execute()
}
