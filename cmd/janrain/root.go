package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/janrain/internal/config"
	"github.com/dmitrymomot/janrain/pkg/janrain"
	"github.com/dmitrymomot/janrain/pkg/logger"
)

func newRootCmd() *cobra.Command {
	var envFiles []string

	root := &cobra.Command{
		Use:           "janrain",
		Short:         "Janrain Engage and Capture sign-in service",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return config.LoadDotenv(envFiles...)
		},
	}
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "dotenv files to load before reading the environment")

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newClientsCmd(),
		newSettingsCmd(),
		newMapCmd(),
		newEntityCmd(),
	)
	return root
}

// apiClient builds a Janrain client from the environment for one-shot commands.
func apiClient() (*janrain.Client, error) {
	cfg, err := config.LoadJanrain()
	if err != nil {
		return nil, err
	}
	var lc logger.Config
	lc.Level, lc.Format = "warn", "text"
	return janrain.New(cfg, janrain.WithLogger(logger.New(lc)))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
