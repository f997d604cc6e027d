package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"academic-records/console/internal/session"
)

func loginCmd(a **app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the identity provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).navigate(routeLogin); err != nil {
				return err
			}
			if username == "" {
				return errors.New("login: --username is required")
			}
			err := (*a).sessions.Login(cmd.Context(), session.Credentials{
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}
			s := (*a).sessions.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s <%s> (%s)\n", s.Name, s.Email, s.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username or email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	return cmd
}

func logoutCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := (*a).sessions.Logout(cmd.Context())
			// Local state is cleared even when the remote call failed.
			if (*a).sessions.Current() == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			}
			return err
		},
	}
}

func whoamiCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := (*a).navigate(routeDashboard); err != nil {
				return err
			}
			s := (*a).sessions.Current()
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\nrole: %s\nauthenticated at: %s\n",
				s.Name, s.Email, s.Role, s.AuthenticatedAt.Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
}

func refreshCmd(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Extend the current session's token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := (*a).sessions.Refresh(cmd.Context())
			if err != nil {
				// The session is kept on a failed refresh; a dead session
				// surfaces through the next 401 instead.
				return fmt.Errorf("refresh failed (session kept): %w", err)
			}
			if ok {
				fmt.Fprintln(cmd.OutOrStdout(), "session refreshed")
			}
			return nil
		},
	}
}
