// Package profiles lets a signed-in parent pick, add or remove the kid
// profile that plays.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/sightread/internal/profile"
	"github.com/abhisek/sightread/internal/router"
	"github.com/abhisek/sightread/internal/screen"
	"github.com/abhisek/sightread/internal/screens/deps"
	"github.com/abhisek/sightread/internal/screens/home"
	"github.com/abhisek/sightread/internal/store"
	"github.com/abhisek/sightread/internal/ui/components"
	"github.com/abhisek/sightread/internal/ui/layout"
	"github.com/abhisek/sightread/internal/ui/theme"
)

const opTimeout = 5 * time.Second

type profilesLoadedMsg struct {
	Profiles []store.Profile
	Err      error
}

type profileCreatedMsg struct {
	Profile *store.Profile
	Err     error
}

type profileDeletedMsg struct {
	ID  int64
	Err error
}

// ProfilesScreen lists the parent's kid profiles.
type ProfilesScreen struct {
	deps   *deps.Deps
	parent *store.Parent

	profiles []store.Profile
	selected int
	loaded   bool

	adding        bool
	nameInput     components.TextInput
	confirmDelete bool

	errMsg string
}

var _ screen.Screen = (*ProfilesScreen)(nil)
var _ screen.KeyHintProvider = (*ProfilesScreen)(nil)
var _ screen.EscapeHandler = (*ProfilesScreen)(nil)
var _ screen.Resumer = (*ProfilesScreen)(nil)

// New creates a ProfilesScreen for player's parent.
func New(d *deps.Deps, player *deps.Player) *ProfilesScreen {
	return &ProfilesScreen{
		deps:      d,
		parent:    player.Parent,
		nameInput: components.NewTextInput("Player name", profile.MaxNameLength),
	}
}

func (s *ProfilesScreen) Init() tea.Cmd {
	return s.load()
}

// Resume reloads the list so scores earned since are shown.
func (s *ProfilesScreen) Resume() tea.Cmd {
	return s.load()
}

func (s *ProfilesScreen) Title() string {
	return "Who's Playing?"
}

// HandlesEscape keeps Esc inside the screen: it closes a dialog, or
// signs the parent out.
func (s *ProfilesScreen) HandlesEscape() bool { return true }

func (s *ProfilesScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.adding:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.confirmDelete:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play"},
		{Key: "A", Description: "Add"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Sign out"},
	}
}

func (s *ProfilesScreen) load() tea.Cmd {
	svc := s.deps.Profiles
	parentID := s.parent.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		list, err := svc.List(ctx, parentID)
		return profilesLoadedMsg{Profiles: list, Err: err}
	}
}

func (s *ProfilesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profilesLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = "Could not load players."
			s.deps.Logger.Error().Err(msg.Err).Msg("list profiles")
			return s, nil
		}
		s.profiles = msg.Profiles
		s.selected = min(s.selected, max(len(s.profiles)-1, 0))
		return s, nil

	case profileCreatedMsg:
		if msg.Err != nil {
			s.errMsg = friendly(msg.Err)
			return s, nil
		}
		s.adding = false
		s.errMsg = ""
		s.profiles = append(s.profiles, *msg.Profile)
		s.selected = len(s.profiles) - 1
		return s, nil

	case profileDeletedMsg:
		if msg.Err != nil {
			s.errMsg = friendly(msg.Err)
			return s, nil
		}
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.adding {
		var cmd tea.Cmd
		s.nameInput, cmd = s.nameInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ProfilesScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.adding {
		switch key {
		case "esc":
			s.adding = false
			s.errMsg = ""
			return s, nil
		case "enter":
			return s, s.create(s.nameInput.Value())
		}
		var cmd tea.Cmd
		s.nameInput, cmd = s.nameInput.Update(msg)
		return s, cmd
	}

	if s.confirmDelete {
		switch key {
		case "y", "Y":
			s.confirmDelete = false
			return s, s.remove()
		case "n", "N", "esc":
			s.confirmDelete = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, s.signOut()
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.profiles)-1 {
			s.selected++
		}
	case "a", "A":
		if len(s.profiles) >= s.deps.Profiles.MaxPerParent() {
			s.errMsg = friendly(profile.ErrProfileLimit)
			return s, nil
		}
		s.adding = true
		s.errMsg = ""
		s.nameInput.Reset()
		return s, s.nameInput.Focus()
	case "d", "D":
		if len(s.profiles) > 0 {
			s.confirmDelete = true
		}
	case "enter":
		if len(s.profiles) == 0 {
			return s, nil
		}
		chosen := s.profiles[s.selected]
		player := &deps.Player{Parent: s.parent, Profile: &chosen}
		next := home.New(s.deps, player)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
	return s, nil
}

// signOut forgets the remembered sign-in and returns to the sign-in
// screen, or pops when there is none to build.
func (s *ProfilesScreen) signOut() tea.Cmd {
	svc := s.deps.Auth
	signIn := s.deps.SignIn
	logger := s.deps.Logger
	return func() tea.Msg {
		if svc != nil {
			ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
			defer cancel()
			if err := svc.Logout(ctx); err != nil {
				logger.Error().Err(err).Msg("sign out")
			}
		}
		if signIn == nil {
			return router.PopScreenMsg{}
		}
		return router.ResetScreenMsg{Screen: signIn()}
	}
}

func (s *ProfilesScreen) create(name string) tea.Cmd {
	svc := s.deps.Profiles
	parentID := s.parent.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		p, err := svc.Create(ctx, parentID, name)
		return profileCreatedMsg{Profile: p, Err: err}
	}
}

func (s *ProfilesScreen) remove() tea.Cmd {
	if s.selected >= len(s.profiles) {
		return nil
	}
	svc := s.deps.Profiles
	parentID := s.parent.ID
	id := s.profiles[s.selected].ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return profileDeletedMsg{ID: id, Err: svc.Delete(ctx, parentID, id)}
	}
}

func friendly(err error) string {
	switch {
	case errors.Is(err, profile.ErrBlankName):
		return "Type a name first."
	case errors.Is(err, profile.ErrNameTooLong):
		return fmt.Sprintf("Names can be up to %d letters.", profile.MaxNameLength)
	case errors.Is(err, profile.ErrProfileLimit):
		return "That's the most players one account can have."
	case errors.Is(err, profile.ErrNotFound):
		return "That player is already gone."
	}
	return "Something went wrong. Please try again."
}

func (s *ProfilesScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Who's playing?"))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading players..."))
	case len(s.profiles) == 0 && !s.adding:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("No players yet. Press A to add one."))
	default:
		for i, p := range s.profiles {
			line := fmt.Sprintf("%-24s ★ %d", p.Name, p.Score)
			b.WriteString(components.OptionBox(line, components.FocusState(i == s.selected), cw-8))
			b.WriteString("\n")
		}
	}

	if s.adding {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("New player: "))
		b.WriteString(s.nameInput.View())
	}
	if s.confirmDelete && s.selected < len(s.profiles) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render(fmt.Sprintf("Delete %s and their score? [Y/N]", s.profiles[s.selected].Name)))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	return components.Frame(b.String(), width, height)
}
