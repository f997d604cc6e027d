// Package main provides the academic-records console binary: a
// role-differentiated client for the academic-records REST backend,
// authenticating against the external identity provider.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var a *app

	root := &cobra.Command{
		Use:           "console",
		Short:         "Academic records console",
		Long:          "Console client for the academic-records backend: sessions, users, courses, semesters, disciplines, and curriculum matrices.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var err error
			a, err = newApp(ctx)
			if err != nil {
				return err
			}
			// Silent session recovery before any command runs. A failed
			// recovery just means the user has to log in.
			if recovered, _ := a.sessions.Initialize(ctx); recovered {
				if s := a.sessions.Current(); s != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "session recovered for %s (%s)\n", s.Name, s.Role)
				}
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close(cmd.Context())
		},
	}

	root.AddCommand(
		loginCmd(&a),
		logoutCmd(&a),
		whoamiCmd(&a),
		refreshCmd(&a),
		usersCmd(&a),
		coursesCmd(&a),
		semestersCmd(&a),
		disciplinesCmd(&a),
		curriculumCmd(&a),
	)

	root.SetContext(context.Background())
	return root
}
