package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newClientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Manage Capture API clients",
	}
	cmd.AddCommand(newClientsListCmd(), newClientsAddCmd(), newClientsDeleteCmd())
	return cmd
}

func newClientsListCmd() *cobra.Command {
	var features []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List API clients, optionally filtered by feature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			clients, err := c.ClientsList(cmd.Context(), features...)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CLIENT ID\tDESCRIPTION\tFEATURES")
			for _, cl := range clients {
				fmt.Fprintf(tw, "%s\t%s\t%v\n", cl.ClientID, cl.Description, cl.Features)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringSliceVar(&features, "feature", nil, "only list clients with this feature (repeatable)")
	return cmd
}

func newClientsAddCmd() *cobra.Command {
	var features []string

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Create an API client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			resp, err := c.ClientsAdd(cmd.Context(), args[0], features...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringSliceVar(&features, "feature", nil, "feature to grant (repeatable)")
	return cmd
}

func newClientsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <client_id>",
		Short: "Delete an API client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			if _, err := c.ClientsDelete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
