package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/modsync/internal/app"
	"go.trai.ch/modsync/internal/engine/updater"
)

func (c *CLI) newApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Install the active profile and remove stale files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			_, err := c.app.Apply(cmd.Context(), app.ApplyOptions{Force: force})
			return err
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Re-download files even when they verify in place")
	return cmd
}

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Stage newer versions of unpinned mods; run apply to install them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changes, err := c.app.Update(cmd.Context())
			if err != nil {
				return err
			}
			printChanges(cmd, changes, "no updates available")
			return nil
		},
	}
}

func (c *CLI) newRevertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revert",
		Short: "Discard staged updates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			changes, err := c.app.Revert()
			if err != nil {
				return err
			}
			printChanges(cmd, changes, "nothing to revert")
			return nil
		},
	}
}

func printChanges(cmd *cobra.Command, changes []updater.Change, empty string) {
	out := cmd.OutOrStdout()
	if len(changes) == 0 {
		_, _ = fmt.Fprintln(out, empty)
		return
	}
	for _, ch := range changes {
		_, _ = fmt.Fprintf(out, "%s: %s -> %s (%s)\n", ch.Project, ch.From, ch.To, ch.File)
	}
}
