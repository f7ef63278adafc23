package problemgen

import "github.com/abhisek/sightread/internal/notes"

// MaxOptions is the number of choices shown when the bank allows it.
const MaxOptions = 4

// Generate builds the question for card. The incorrect options are drawn
// from the bank's own letters and accidentals, so a small bank yields
// fewer than MaxOptions choices.
func Generate(id int, card notes.Card, bank *notes.Bank, format Format, rng RandomSource) Question {
	q := Question{
		ID:     id,
		Card:   card,
		Answer: card.Answer(),
		Format: format,
	}
	if format == FormatBuilder {
		q.Options = []string{}
		return q
	}
	q.Options = options(card, bank, rng)
	return q
}

func options(card notes.Card, bank *notes.Bank, rng RandomSource) []string {
	pool := distractors(card, bank)

	k := min(MaxOptions-1, len(pool))
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	opts := make([]string, 0, k+1)
	opts = append(opts, card.Answer())
	opts = append(opts, pool[:k]...)

	for i := len(opts) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		opts[i], opts[j] = opts[j], opts[i]
	}
	return opts
}

// distractors lists every wrong answer the bank can express, letter-major
// in canonical order.
func distractors(card notes.Card, bank *notes.Bank) []string {
	letters := bank.Letters()
	accs := bank.Accidentals()
	out := make([]string, 0, len(letters)*len(accs))
	for _, l := range letters {
		if l == card.Letter {
			continue
		}
		for _, a := range accs {
			out = append(out, notes.Name(l, a))
		}
	}
	return out
}
