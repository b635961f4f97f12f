package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"logdash/internal/config"
	"logdash/internal/storage"
)

// app carries state resolved before any subcommand runs.
type app struct {
	cfg config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	state := &app{}
	var (
		configPath string
		envFile    string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "logdash",
		Short:         "Dashboard and API for automation-test log summaries",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadEnvFile(envFile); err != nil {
				return err
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			state.cfg = cfg
			state.log = newLogger(cfg.Log, cmd.ErrOrStderr())
			return nil
		},
	}

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&configPath, "config", "config.yaml", "path to configuration file (YAML)")
	persistent.StringVar(&envFile, "env", "", "dotenv file with environment overrides (default .env)")
	persistent.StringVar(&logLevel, "log-level", "", "log level (debug|info|warn|error)")

	cmd.AddCommand(newServeCmd(state))
	cmd.AddCommand(newParseCmd(state))
	cmd.AddCommand(newListCmd(state))

	return cmd
}

// newSource builds the text source: the local log directory, fronted by Azure
// Blob Storage when enabled.
func newSource(cfg config.Config, log logrus.FieldLogger) storage.TextSource {
	local := storage.NewLocalSource(cfg.LogDirectory)
	if !cfg.Blob.Enabled {
		return local
	}

	store, err := storage.NewAzureBlobStore(cfg.Blob.ConnectionString, cfg.Blob.Container)
	if err != nil {
		log.WithError(err).Warn("blob storage unavailable, serving local logs only")
		return local
	}
	log.WithField("container", cfg.Blob.Container).Info("reading logs from blob storage with local fallback")
	remote := storage.NewBlobSource(store, time.Duration(cfg.Blob.TimeoutSeconds)*time.Second)
	return storage.NewFallbackSource(remote, local, log)
}
