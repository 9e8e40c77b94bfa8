package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/janrain/pkg/janrain"
)

func newMapCmd() *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "map <identifier> <primary_key>",
		Short: "Map an Engage identifier to a local primary key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			resp, err := c.Map(cmd.Context(), args[0], args[1], overwrite)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().BoolVar(&overwrite, "overwrite", true, "replace an existing mapping for the identifier")
	return cmd
}

func newEntityCmd() *cobra.Command {
	var q janrain.EntityQuery

	cmd := &cobra.Command{
		Use:   "entity",
		Short: "Fetch a Capture entity by access token or by uuid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := apiClient()
			if err != nil {
				return err
			}
			res, err := c.FindEntity(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res.Result)
		},
	}
	cmd.Flags().StringVar(&q.AccessToken, "token", "", "OAuth access token")
	cmd.Flags().StringVar(&q.UUID, "uuid", "", "entity uuid (requires client credentials)")
	cmd.Flags().StringVar(&q.TypeName, "type", "user", "entity type name")
	cmd.MarkFlagsOneRequired("token", "uuid")
	cmd.MarkFlagsMutuallyExclusive("token", "uuid")

	cmd.AddCommand(newEntityUpdateCmd())
	return cmd
}

func newEntityUpdateCmd() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "update <uuid> <attribute=value>...",
		Short: "Update attributes of a Capture entity",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			update, err := parseAttributes(args[1:])
			if err != nil {
				return err
			}
			c, err := apiClient()
			if err != nil {
				return err
			}
			resp, err := c.EntityUpdate(cmd.Context(), args[0], typeName, update)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&typeName, "type", "user", "entity type name")
	return cmd
}

// parseAttributes turns name=value pairs into an update document.
// Integer and boolean values keep their type.
func parseAttributes(pairs []string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid attribute %q, want name=value", p)
		}
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			out[name] = n
		} else if b, err := strconv.ParseBool(value); err == nil {
			out[name] = b
		} else {
			out[name] = value
		}
	}
	return out, nil
}
