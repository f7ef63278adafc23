package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage kid profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the parent's players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			p, err := signIn(ctx, cmd, e.deps.Auth)
			if err != nil {
				return err
			}
			list, err := e.deps.Profiles.List(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("list profiles: %w", err)
			}
			if len(list) == 0 {
				fmt.Println("No players yet. Add one with: sightread profile add <name>")
				return nil
			}

			fmt.Printf("%-24s  %8s  %s\n", "Name", "Score", "Created")
			fmt.Println(strings.Repeat("─", 50))
			for _, pr := range list {
				fmt.Printf("%-24s  %8d  %s\n", pr.Name, pr.Score,
					pr.CreatedAt.Local().Format("2006-01-02"))
			}
			return nil
		})
	},
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a player",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			p, err := signIn(ctx, cmd, e.deps.Auth)
			if err != nil {
				return err
			}
			pr, err := e.deps.Profiles.Create(ctx, p.ID, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s Added %s\n", okStyle("✓"), pr.Name)
			return nil
		})
	},
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a player and their score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			p, err := signIn(ctx, cmd, e.deps.Auth)
			if err != nil {
				return err
			}
			pr, err := findProfile(ctx, e, p.ID, args[0])
			if err != nil {
				return err
			}
			if err := e.deps.Profiles.Delete(ctx, p.ID, pr.ID); err != nil {
				return err
			}
			fmt.Printf("%s Removed %s\n", okStyle("✓"), pr.Name)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{profileListCmd, profileAddCmd, profileRemoveCmd} {
		addEmailFlag(c)
		profileCmd.AddCommand(c)
	}
}
