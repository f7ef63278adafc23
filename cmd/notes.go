package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/sightread/internal/notes"
	"github.com/abhisek/sightread/internal/ui/staff"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "List the notes the quiz draws from",
	RunE: func(cmd *cobra.Command, args []string) error {
		letter, _ := cmd.Flags().GetString("letter")
		draw, _ := cmd.Flags().GetBool("draw")

		bank := notes.DefaultBank()
		if letter != "" {
			l, _, err := notes.ParseAnswer(letter)
			if err != nil {
				return fmt.Errorf("invalid letter %q: %w", letter, err)
			}
			bank, err = bank.Filter(func(c notes.Card) bool { return c.Letter == l })
			if err != nil {
				return fmt.Errorf("no notes for letter %s", l)
			}
		}

		fmt.Printf("%-6s  %-10s  %s\n", "Note", "Accidental", "Image")
		fmt.Println(strings.Repeat("─", 48))
		for _, c := range bank.Cards() {
			fmt.Printf("%-6s  %-10s  %s\n", c.Answer(), c.Accidental, c.Image)
			if draw {
				art, err := staff.Render(c.Image)
				if err != nil {
					return err
				}
				fmt.Println(art)
			}
		}

		fmt.Printf("\n%d notes\n", bank.Len())
		return nil
	},
}

func init() {
	notesCmd.Flags().StringP("letter", "l", "", "Only show notes with this letter (A-G)")
	notesCmd.Flags().Bool("draw", false, "Draw each note on the staff")
}
