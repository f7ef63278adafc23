package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/ui/theme"
)

// bannerGlyphs are 5-row block letters for the banner word.
var bannerGlyphs = map[rune][5]string{
	'S': {" ████", "█    ", " ███ ", "    █", "████ "},
	'I': {"███", " █ ", " █ ", " █ ", "███"},
	'G': {" ████", "█    ", "█  ██", "█   █", " ████"},
	'H': {"█   █", "█   █", "█████", "█   █", "█   █"},
	'T': {"█████", "  █  ", "  █  ", "  █  ", "  █  "},
	'R': {"████ ", "█   █", "████ ", "█  █ ", "█   █"},
	'E': {"█████", "█    ", "████ ", "█    ", "█████"},
	'A': {" ███ ", "█   █", "█████", "█   █", "█   █"},
	'D': {"████ ", "█   █", "█   █", "█   █", "████ "},
}

const (
	bannerWord    = "SIGHTREAD"
	bannerCompact = "S I G H T R E A D"
)

// blockText spells word in bannerGlyphs, one space between letters.
// Letters without a glyph are skipped.
func blockText(word string) string {
	var rows [5][]string
	for _, r := range word {
		g, ok := bannerGlyphs[r]
		if !ok {
			continue
		}
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}
	lines := make([]string, len(rows))
	for i, parts := range rows {
		lines[i] = strings.Join(parts, " ")
	}
	return strings.Join(lines, "\n")
}

// RenderBanner returns the banner styled in the primary color, falling
// back to spaced letters when the block form would not fit.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	art := blockText(bannerWord)
	if width < lipgloss.Width(art)+4 {
		return style.Render(bannerCompact)
	}
	return style.Render(art)
}
