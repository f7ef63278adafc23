package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhisek/sightread/internal/auth"
	"github.com/abhisek/sightread/internal/store"
)

var (
	errStyle  = color.New(color.FgRed, color.Bold).SprintFunc()
	okStyle   = color.New(color.FgGreen, color.Bold).SprintFunc()
	dimStyle  = color.New(color.Faint).SprintFunc()
	goldStyle = color.New(color.FgYellow, color.Bold).SprintFunc()
)

var stdin = bufio.NewReader(os.Stdin)

// promptLine prints label and reads one trimmed line from stdin.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	line, err := stdin.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a
// terminal, or a plain line when it is piped.
func promptPassword(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return promptLine(label)
	}
	fmt.Print(label)
	b, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func addEmailFlag(c *cobra.Command) {
	c.Flags().StringP("email", "e", "", "Parent account email (prompted when empty)")
}

// signIn returns the parent remembered on this device, or asks for
// credentials when none is remembered or --email is given.
func signIn(ctx context.Context, cmd *cobra.Command, svc *auth.Service) (*store.Parent, error) {
	email, _ := cmd.Flags().GetString("email")
	if email == "" {
		p, err := svc.Restore(ctx)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, auth.ErrNoSession) {
			fmt.Fprintln(os.Stderr, dimStyle("(could not restore sign-in: "+err.Error()+")"))
		}
	}
	return promptSignIn(ctx, email, svc)
}

// promptSignIn logs the parent in with email, prompting for whatever is
// missing, and remembers the sign-in.
func promptSignIn(ctx context.Context, email string, svc *auth.Service) (*store.Parent, error) {
	if email == "" {
		var err error
		if email, err = promptLine("Email: "); err != nil {
			return nil, err
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		return nil, err
	}
	p, err := svc.Login(ctx, email, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return nil, errors.New("email and password don't match")
	}
	if err != nil {
		return nil, err
	}
	if err := svc.Remember(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// findProfile returns the parent's profile whose name matches,
// ignoring case.
func findProfile(ctx context.Context, e *env, parentID int64, name string) (*store.Profile, error) {
	list, err := e.deps.Profiles.List(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	for i := range list {
		if strings.EqualFold(list[i].Name, strings.TrimSpace(name)) {
			return &list[i], nil
		}
	}
	return nil, fmt.Errorf("no player named %q", name)
}
