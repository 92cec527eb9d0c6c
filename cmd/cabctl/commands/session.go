package commands

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/cabmobile/monitor/internal/session"
)

var validate = validator.New()

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var token, userID, email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an access token",
		Long:  "Store the access token and user identity issued by the identity provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validate.Var(email, "omitempty,email"); err != nil {
				return fmt.Errorf("invalid email %q", email)
			}

			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.sessions.SaveSession(cmd.Context(), token, userID, email); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged in")
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Access token (required)")
	cmd.Flags().StringVar(&userID, "user-id", "", "User ID")
	cmd.Flags().StringVar(&email, "email", "", "User email")
	_ = cmd.MarkFlagRequired("token")

	return cmd
}

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.sessions.ClearSession(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer e.close()

			out := cmd.OutOrStdout()
			s := e.sessions.Session(cmd.Context())
			if !s.IsAuthenticated() {
				fmt.Fprintln(out, "Not logged in")
				return nil
			}

			fmt.Fprintln(out, "Logged in")
			if s.UserID != nil {
				fmt.Fprintf(out, "  User ID: %s\n", *s.UserID)
			}
			if s.UserEmail != nil {
				fmt.Fprintf(out, "  Email: %s\n", *s.UserEmail)
			}

			info, err := session.InspectToken(*s.Token)
			if err != nil {
				fmt.Fprintln(out, "  Token: opaque")
				return nil
			}
			if info.Subject != "" {
				fmt.Fprintf(out, "  Subject: %s\n", info.Subject)
			}
			if info.Issuer != "" {
				fmt.Fprintf(out, "  Issuer: %s\n", info.Issuer)
			}
			if !info.ExpiresAt.IsZero() {
				state := "valid"
				if info.Expired(time.Now()) {
					state = "expired"
				}
				fmt.Fprintf(out, "  Expires: %s (%s)\n", info.ExpiresAt.Format(time.RFC3339), state)
			}
			return nil
		},
	}
}
