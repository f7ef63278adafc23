package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/sightread/internal/profile"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show every player ranked by score",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		limit, _ := cmd.Flags().GetInt("limit")

		switch format {
		case "table", "json", "yaml":
		default:
			return fmt.Errorf("invalid format %q: must be table, json or yaml", format)
		}

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			entries, err := e.deps.Profiles.Leaderboard(ctx, limit)
			if err != nil {
				return fmt.Errorf("load leaderboard: %w", err)
			}
			return writeLeaderboard(os.Stdout, format, entries)
		})
	},
}

// writeLeaderboard renders entries in the given format.
func writeLeaderboard(w io.Writer, format string, entries []profile.Entry) error {
	if entries == nil {
		entries = []profile.Entry{}
	}
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "Nobody has played yet.")
		return nil
	}
	fmt.Fprintf(w, "%4s  %-24s  %8s\n", "Rank", "Name", "Score")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	for _, en := range entries {
		line := fmt.Sprintf("%4d  %-24s  %8d", en.Rank, en.Name, en.Score)
		if en.Rank == 1 {
			line = goldStyle(line)
		}
		fmt.Fprintln(w, line)
	}
	return nil
}

func init() {
	leaderboardCmd.Flags().StringP("format", "f", "table", "Output format: table, json or yaml")
	leaderboardCmd.Flags().IntP("limit", "n", 0, "Number of players to show (0 = all)")
}
