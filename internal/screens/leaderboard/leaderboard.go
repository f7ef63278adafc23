package leaderboard

import (
	"cmp"
	"context"
	"fmt"
	"image/color"
	"slices"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/profile"
	"github.com/abhisek/sightread/internal/router"
	"github.com/abhisek/sightread/internal/screen"
	"github.com/abhisek/sightread/internal/screens/deps"
	"github.com/abhisek/sightread/internal/ui/layout"
	"github.com/abhisek/sightread/internal/ui/theme"
)

const loadTimeout = 5 * time.Second

// Scope selects whose scores are ranked.
type Scope int

const (
	ScopeEveryone Scope = iota
	ScopeFamily
)

var scopes = []Scope{ScopeEveryone, ScopeFamily}

func (s Scope) label() string {
	if s == ScopeFamily {
		return "Family"
	}
	return "Everyone"
}

type entriesLoadedMsg struct {
	Everyone []profile.Entry
	Family   []profile.Entry
	Err      error
}

// LeaderboardScreen ranks kid profiles by score.
type LeaderboardScreen struct {
	deps   *deps.Deps
	player *deps.Player

	entries      map[Scope][]profile.Entry
	scope        Scope
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*LeaderboardScreen)(nil)
var _ screen.KeyHintProvider = (*LeaderboardScreen)(nil)
var _ screen.PlayerProvider = (*LeaderboardScreen)(nil)

// New creates a LeaderboardScreen that highlights player.
func New(d *deps.Deps, player *deps.Player) *LeaderboardScreen {
	return &LeaderboardScreen{
		deps:    d,
		player:  player,
		entries: make(map[Scope][]profile.Entry),
	}
}

func (s *LeaderboardScreen) Init() tea.Cmd {
	svc := s.deps.Profiles
	var parentID int64
	if s.player != nil && s.player.Parent != nil {
		parentID = s.player.Parent.ID
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		everyone, err := svc.Leaderboard(ctx, 0)
		if err != nil {
			return entriesLoadedMsg{Err: err}
		}
		msg := entriesLoadedMsg{Everyone: everyone}
		if parentID == 0 {
			return msg
		}
		family, err := svc.List(ctx, parentID)
		if err != nil {
			return entriesLoadedMsg{Err: err}
		}
		msg.Family = familyBoard(family)
		return msg
	}
}

// familyBoard ranks the parent's profiles the same way the global board
// does: score descending, then name.
func familyBoard(list []profile.Profile) []profile.Entry {
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b profile.Profile) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return profile.Rank(sorted)
}

func (s *LeaderboardScreen) Title() string {
	return "Leaderboard"
}

func (s *LeaderboardScreen) Player() (string, int) {
	return s.player.Name(), s.player.Score()
}

func (s *LeaderboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Everyone/Family"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = "Could not load the leaderboard."
			s.deps.Logger.Error().Err(msg.Err).Msg("load leaderboard")
		} else {
			s.entries[ScopeEveryone] = msg.Everyone
			s.entries[ScopeFamily] = msg.Family
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "shift+tab":
			s.scope = scopes[(int(s.scope)+1)%len(scopes)]
			s.scrollOffset = 0
			return s, nil
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
			return s, nil
		case "down", "j":
			if s.scrollOffset < len(s.entries[s.scope])-1 {
				s.scrollOffset++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *LeaderboardScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n" + s.errMsg)
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading scores...")
	}

	var b strings.Builder
	b.WriteString("\n")

	var tabs []string
	for _, sc := range scopes {
		label := fmt.Sprintf("%s (%d)", sc.label(), len(s.entries[sc]))
		if sc == s.scope {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 44)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	entries := s.entries[s.scope]
	if len(entries) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Nobody has played yet"))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(entries))

	var me int64
	if s.player != nil && s.player.Profile != nil {
		me = s.player.Profile.ID
	}
	for _, e := range entries[start:end] {
		line := fmt.Sprintf("%s %-3d %-24s ★ %d", medal(e.Rank), e.Rank, e.Name, e.Score)
		style := lipgloss.NewStyle().Foreground(rankColor(e.Rank))
		if e.ProfileID == me {
			style = style.Bold(true).Reverse(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(entries) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(entries)-end)))
	}

	return b.String()
}

func medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	}
	return "  "
}

func rankColor(rank int) color.Color {
	switch rank {
	case 1:
		return theme.ArcadeYellow
	case 2:
		return theme.Secondary
	case 3:
		return theme.Accent
	default:
		return theme.Text
	}
}
