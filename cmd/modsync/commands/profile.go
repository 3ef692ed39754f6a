package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.trai.ch/modsync/internal/app"
	"go.trai.ch/modsync/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage registered profiles",
	}
	cmd.AddCommand(c.newProfileCreateCmd(), c.newProfileListCmd(), c.newProfileSwitchCmd())
	return cmd
}

func (c *CLI) newProfileCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name> <dir>",
		Short: "Register a game directory as a profile and make it active",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(args[1])
			if err != nil {
				return zerr.With(zerr.Wrap(err, "invalid profile directory"), "path", args[1])
			}
			gameVersion, _ := cmd.Flags().GetString("game-version")
			loaderName, _ := cmd.Flags().GetString("loader")
			loader := domain.ParseLoader(loaderName)
			if loaderName != "" && loader == domain.LoaderUnknown {
				return zerr.With(zerr.New("unknown loader"), "loader", loaderName)
			}

			ref, err := c.app.CreateProfile(cmd.Context(), app.CreateProfileOptions{
				Name:        args[0],
				Path:        dir,
				GameVersion: gameVersion,
				Loader:      loader,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created profile %s at %s\n", ref.Name, ref.Path)
			return nil
		},
	}
	cmd.Flags().String("game-version", "", "Game version (defaults to the newest release)")
	cmd.Flags().String("loader", "", "Mod loader: fabric, quilt, forge or neoforge")
	return cmd
}

func (c *CLI) newProfileListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered profiles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			profiles, active := c.app.Profiles()
			for i, p := range profiles {
				marker := " "
				if i == active {
					marker = "*"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\t%s\n", marker, p.Name, p.Path)
			}
		},
	}
}

func (c *CLI) newProfileSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <name>",
		Short: "Make a registered profile active",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return c.app.SwitchProfile(args[0])
		},
	}
}
