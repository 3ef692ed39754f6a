package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newModpackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modpack",
		Short: "Manage the modpack the active profile follows",
	}

	set := &cobra.Command{
		Use:   "set <id>",
		Short: "Follow a modpack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noOverrides, _ := cmd.Flags().GetBool("no-overrides")
			pack, err := c.app.SetModpack(cmd.Context(), args[0], !noOverrides)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "profile now follows %s\n", pack.DisplayName())
			return nil
		},
	}
	set.Flags().Bool("no-overrides", false, "Do not extract the pack's bundled config files")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Stop following the modpack",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := c.app.SetModpack(cmd.Context(), "", false)
			return err
		},
	}

	cmd.AddCommand(set, clearCmd)
	return cmd
}
