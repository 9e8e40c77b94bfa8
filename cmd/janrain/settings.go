package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// settingsFile is the YAML document accepted by "settings push".
type settingsFile struct {
	ForClientID string            `yaml:"for_client_id"`
	Items       map[string]string `yaml:"items"`
}

func readSettings(path string) (*settingsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f settingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Items) == 0 {
		return nil, fmt.Errorf("%s: no items", path)
	}
	return &f, nil
}

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage Capture application settings",
	}
	cmd.AddCommand(newSettingsPushCmd())
	return cmd
}

func newSettingsPushCmd() *cobra.Command {
	var (
		file      string
		forClient string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Set multiple settings from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := readSettings(file)
			if err != nil {
				return err
			}
			if forClient != "" {
				f.ForClientID = forClient
			}

			c, err := apiClient()
			if err != nil {
				return err
			}
			resp, err := c.SettingsSetMulti(cmd.Context(), f.Items, f.ForClientID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML settings file")
	cmd.Flags().StringVar(&forClient, "for-client", "", "apply settings to this client instead of the application")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
