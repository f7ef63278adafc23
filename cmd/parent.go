package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var parentCmd = &cobra.Command{
	Use:   "parent",
	Short: "Manage parent accounts",
}

var parentRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a parent account",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			email, _ := cmd.Flags().GetString("email")
			if email == "" {
				var err error
				if email, err = promptLine("Email: "); err != nil {
					return err
				}
			}
			password, err := promptPassword("Password: ")
			if err != nil {
				return err
			}
			confirm, err := promptPassword("Repeat password: ")
			if err != nil {
				return err
			}
			if password != confirm {
				return errors.New("passwords do not match")
			}

			p, err := e.deps.Auth.Register(ctx, email, password)
			if err != nil {
				return err
			}
			if err := e.deps.Auth.Remember(ctx, p); err != nil {
				return err
			}
			fmt.Printf("%s Account created for %s\n", okStyle("✓"), p.Email)
			return nil
		})
	},
}

var parentLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and stay signed in on this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			email, _ := cmd.Flags().GetString("email")
			p, err := promptSignIn(ctx, email, e.deps.Auth)
			if err != nil {
				return err
			}
			list, err := e.deps.Profiles.List(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("list profiles: %w", err)
			}
			fmt.Printf("%s Signed in as %s (%d of %d players)\n",
				okStyle("✓"), p.Email, len(list), e.deps.Profiles.MaxPerParent())
			return nil
		})
	},
}

var parentLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the signed-in parent on this device",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if err := e.deps.Auth.Logout(ctx); err != nil {
				return err
			}
			fmt.Printf("%s Signed out\n", okStyle("✓"))
			return nil
		})
	},
}

func init() {
	addEmailFlag(parentRegisterCmd)
	addEmailFlag(parentLoginCmd)

	parentCmd.AddCommand(parentRegisterCmd)
	parentCmd.AddCommand(parentLoginCmd)
	parentCmd.AddCommand(parentLogoutCmd)
}
