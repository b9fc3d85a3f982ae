package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/tanker327/react-project-structure-best-practices/internal/services"
)

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "users",
		Aliases: []string{"user"},
		Short:   "List users (requires login)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List users",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				items, err := a.services.Users.GetUsers(cmd.Context())
				if err != nil {
					return err
				}

				return a.print(cmd, items, func(w io.Writer) {
					renderUsers(w, items)
				})
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				u, err := a.services.Users.GetUser(cmd.Context(), args[0])
				if err != nil {
					return err
				}

				return a.print(cmd, u, func(w io.Writer) {
					renderUsers(w, []services.User{*u})
				})
			},
		},
	)

	return cmd
}

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.services.Auth.GetCurrentUser(cmd.Context())
			if err != nil {
				return err
			}

			return a.print(cmd, u, func(w io.Writer) {
				renderUsers(w, []services.User{*u})
			})
		},
	}
}
