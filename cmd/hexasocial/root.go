package main

import (
	"github.com/spf13/cobra"

	"github.com/davicafu/hexasocial/internal/config"
	"github.com/davicafu/hexasocial/pkg/logger"
)

func newRootCmd() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "hexasocial",
		Short:         "Backend social: posts, comentarios, chats y follows",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "fichero de configuración (yaml)")

	load := func() (*config.Config, error) {
		var (
			cfg *config.Config
			err error
		)
		if configFile != "" {
			cfg, err = config.LoadConfigFile(configFile)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			return nil, err
		}
		logger.Init(cfg.LogLevel)
		return cfg, nil
	}

	rootCmd.AddCommand(
		newServeCmd(load),
		newSeedCmd(load),
	)
	return rootCmd
}
