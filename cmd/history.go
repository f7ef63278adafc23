package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sightread/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show a player's recent quizzes and note accuracy",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("profile")
		limit, _ := cmd.Flags().GetInt("limit")

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			parent, err := signIn(ctx, cmd, e.deps.Auth)
			if err != nil {
				return err
			}
			pr, err := findProfile(ctx, e, parent.ID, name)
			if err != nil {
				return err
			}

			events, err := e.deps.Events.QuerySessionEvents(ctx, pr.ID, store.QueryOpts{Limit: limit})
			if err != nil {
				return fmt.Errorf("query sessions: %w", err)
			}
			if len(events) == 0 {
				fmt.Printf("%s has not finished a quiz yet.\n", pr.Name)
				return nil
			}

			fmt.Printf("%-19s  %-8s  %8s  %6s  %6s  %s\n",
				"Finished", "Mode", "Correct", "Score", "Time", "Done")
			fmt.Println(strings.Repeat("─", 64))
			for _, ev := range events {
				done := okStyle("✓")
				if ev.QuestionsAnswered < ev.QuestionsTotal {
					done = dimStyle("quit")
				}
				fmt.Printf("%-19s  %-8s  %8s  %6d  %6s  %s\n",
					ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
					modeName(ev.Mode),
					fmt.Sprintf("%d/%d", ev.CorrectAnswers, ev.QuestionsTotal),
					ev.Score,
					fmt.Sprintf("%d:%02d", ev.DurationSecs/60, ev.DurationSecs%60),
					done,
				)
			}

			acc, err := e.deps.Events.NoteAccuracy(ctx, pr.ID)
			if err != nil {
				return fmt.Errorf("query note accuracy: %w", err)
			}
			if len(acc) == 0 {
				return nil
			}

			fmt.Println()
			fmt.Println("Note Accuracy (weakest first)")
			fmt.Println(strings.Repeat("─", 36))
			for _, na := range acc {
				pct := fmt.Sprintf("%3.0f%%", na.Accuracy()*100)
				if na.Accuracy() < 0.5 {
					pct = errStyle(pct)
				}
				fmt.Printf("%-4s  %6s  %s\n", na.Note, fmt.Sprintf("%d/%d", na.Correct, na.Attempts), pct)
			}
			return nil
		})
	},
}

func modeName(mode string) string {
	if mode == "builder" {
		return "builder"
	}
	return "quiz"
}

func init() {
	addEmailFlag(historyCmd)
	historyCmd.Flags().StringP("profile", "p", "", "Player name (required)")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show")
	_ = historyCmd.MarkFlagRequired("profile")
}
