package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/sightread/internal/app"
	"github.com/abhisek/sightread/internal/problemgen"
	"github.com/abhisek/sightread/internal/screens/deps"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Sign in and start a quiz for a player",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("profile")
		mode, _ := cmd.Flags().GetString("mode")

		format, ok := problemgen.ParseFormat(mode)
		if !ok {
			return fmt.Errorf("invalid mode %q: must be quiz or builder", mode)
		}

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			parent, err := signIn(ctx, cmd, e.deps.Auth)
			if err != nil {
				return err
			}
			pr, err := findProfile(ctx, e, parent.ID, name)
			if err != nil {
				return err
			}
			e.logger.Info().Int64("profile_id", pr.ID).Str("mode", string(format)).Msg("play from command line")

			return app.Run(app.Options{
				Deps:   e.deps,
				Player: &deps.Player{Parent: parent, Profile: pr},
				Format: format,
			})
		})
	},
}

func init() {
	addEmailFlag(playCmd)
	playCmd.Flags().StringP("profile", "p", "", "Player name (required)")
	playCmd.Flags().StringP("mode", "m", "quiz", "Answer mode: quiz or builder")
	_ = playCmd.MarkFlagRequired("profile")
}
