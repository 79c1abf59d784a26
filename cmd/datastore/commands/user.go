// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/automa-saga/logx"
	"github.com/spf13/cobra"
)

var (
	flagUserPassword   string
	flagUserRemoveHome bool

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage data store users",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	userCreateCmd = &cobra.Command{
		Use:   "create <username>",
		Short: "Create a data store user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			user, err := b.provisioner.CreateUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if flagUserPassword != "" {
				if err := b.provisioner.SetPassword(cmd.Context(), user.Name, flagUserPassword); err != nil {
					return err
				}
			}

			logx.As().Info().
				Str("user", user.Name).
				Str("zone", user.Zone).
				Msg("User created")
			return nil
		},
	}

	userDeleteCmd = &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a data store user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			if flagUserRemoveHome {
				if err := b.provisioner.DeleteHome(cmd.Context(), args[0]); err != nil {
					return err
				}
			}

			if err := b.provisioner.DeleteUser(cmd.Context(), args[0]); err != nil {
				return err
			}

			logx.As().Info().Str("user", args[0]).Msg("User deleted")
			return nil
		},
	}

	userExistsCmd = &cobra.Command{
		Use:   "exists <username>",
		Short: "Report whether a data store user account exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			exists, err := b.provisioner.UserExists(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if exists {
				cmd.Printf("user %q exists\n", args[0])
			} else {
				cmd.Printf("user %q does not exist\n", args[0])
			}
			return nil
		},
	}

	userHomeCmd = &cobra.Command{
		Use:   "home <username>",
		Short: "Print the user's home collection path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			cmd.Println(b.provisioner.HomePath(args[0]))
			return nil
		},
	}
)

func init() {
	userCreateCmd.Flags().StringVar(&flagUserPassword, "password", "", "initial password for the new account")
	userDeleteCmd.Flags().BoolVar(&flagUserRemoveHome, "remove-home", false, "also remove the user's home collection")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userDeleteCmd)
	userCmd.AddCommand(userExistsCmd)
	userCmd.AddCommand(userHomeCmd)
}
