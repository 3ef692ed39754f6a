package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.trai.ch/modsync/internal/app"
)

func (c *CLI) newAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a mod to the active profile",
		Long: "Add a mod to the active profile. The id is a Modrinth id or slug, " +
			"a numeric CurseForge project id, or owner/repo for GitHub releases.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			version, _ := cmd.Flags().GetString("version")
			mod, err := c.app.Add(cmd.Context(), args[0], version)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", mod.DisplayName())
			return nil
		},
	}
	cmd.Flags().String("version", "", "Pin the mod to this version id")
	return cmd
}

func (c *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a mod from the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mod, err := c.app.Remove(args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", mod.DisplayName())
			return nil
		},
	}
}

func (c *CLI) newPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <id> [version]",
		Short: "Pin a mod to a version, or unpin it when no version is given",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			version := ""
			if len(args) == 2 {
				version = args[1]
			}
			return c.app.Pin(args[0], version)
		},
	}
}

func (c *CLI) newExcludeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exclude <id>",
		Short: "Keep a project out of the profile even when the modpack ships it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			undo, _ := cmd.Flags().GetBool("undo")
			return c.app.Exclude(args[0], !undo)
		},
	}
	cmd.Flags().Bool("undo", false, "Clear the exclusion")
	return cmd
}

func (c *CLI) newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Identify jars already in the mods directory and add them to the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			added, err := c.app.Scan(cmd.Context())
			if err != nil {
				return err
			}
			for _, m := range added {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", m.DisplayName())
			}
			return nil
		},
	}
}

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the mods of the active profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			listing, err := c.app.List()
			if err != nil {
				return err
			}
			return printListing(cmd.OutOrStdout(), listing)
		},
	}
}

func printListing(w io.Writer, l *app.Listing) error {
	_, _ = fmt.Fprintf(w, "profile %s (%s %s)\n", l.Profile.Name, l.Data.GameVersion, l.Data.Loader)
	if pack := l.Data.Modpack; pack != nil {
		_, _ = fmt.Fprintf(w, "modpack %s [%s]\n", pack.DisplayName(), pack.Project.Service())
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tSERVICE\tID\tVERSION\tFILE")
	for _, m := range l.Data.Mods {
		version, file := "latest", "-"
		if m.Pinned() {
			version = m.Version.String()
		}
		if m.Exclude {
			version = "excluded"
		}
		if l.Lock != nil {
			if i := l.Lock.FindMod(m.Project); i >= 0 {
				locked := l.Lock.Mods[i]
				version, file = locked.Version.String(), locked.File.String()
				if l.Lock.IsStaged(m.Project) {
					version += " (staged)"
				}
			}
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.DisplayName(), m.Project.Service(), m.Project, version, file)
	}
	return tw.Flush()
}
