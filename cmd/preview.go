package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/sightread/internal/notes"
	"github.com/abhisek/sightread/internal/problemgen"
	"github.com/abhisek/sightread/internal/session"
	"github.com/abhisek/sightread/internal/ui/staff"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Play a quiz on stdin (no database)",
	Long: `Answer a quiz in the plain terminal.

This is a stateless tool: no database, no accounts, no score saved.
Useful for trying a seed or checking how notes are drawn.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Uint64("seed", 0, "Random seed (0 = clock)")
	previewCmd.Flags().Int("count", 5, "Number of questions")
	previewCmd.Flags().String("mode", "quiz", "Answer mode: quiz or builder")
}

func runPreview(cmd *cobra.Command, args []string) error {
	seed, _ := cmd.Flags().GetUint64("seed")
	count, _ := cmd.Flags().GetInt("count")
	mode, _ := cmd.Flags().GetString("mode")

	format, ok := problemgen.ParseFormat(mode)
	if !ok {
		return fmt.Errorf("invalid mode %q: must be quiz or builder", mode)
	}

	var score int
	quiz := session.New(session.ScoreSinkFunc(func(points int) { score += points }),
		session.WithFormat(format))
	if !quiz.Start(count, notes.DefaultBank(), problemgen.NewSource(seed)) {
		return errors.New("could not start quiz")
	}

	for q := quiz.CurrentQuestion(); q != nil; q = quiz.CurrentQuestion() {
		index, total := quiz.Progress()
		fmt.Printf("── Question %d/%d ──\n", index+1, total)

		art, err := staff.Render(q.Card.Image)
		if err != nil {
			return err
		}
		fmt.Println(art)

		prompt := "Which note is this? "
		if q.Format == problemgen.FormatMultipleChoice {
			for j, o := range q.Options {
				fmt.Printf("  %d) %s\n", j+1, o)
			}
			prompt = "Your answer (number or name): "
		}

		answer, err := promptLine("\n" + prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println("\n(input closed)")
			break
		}
		if err != nil {
			return err
		}

		if answer == "" {
			fmt.Println(dimStyle("(skipped)"))
			fmt.Println()
			quiz.Advance()
			continue
		}
		answer = pickOption(answer, q.Options)

		r, _ := quiz.Answer(answer)
		if r.Correct {
			fmt.Println(okStyle("✓ Correct!"))
		} else {
			fmt.Printf("%s Answer: %s\n", errStyle("✗ Not quite."), r.Answer)
		}
		fmt.Println()
		quiz.Advance()
	}

	sum := quiz.Summary()
	fmt.Printf("── Summary: %d/%d correct, %d points ──\n", sum.TotalCorrect, sum.TotalQuestions, score)
	return nil
}

// pickOption maps a typed option number to its text.
func pickOption(answer string, options []string) string {
	var n int
	if _, err := fmt.Sscanf(answer, "%d", &n); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return answer
}
