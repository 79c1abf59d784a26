// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"github.com/automa-saga/automa"
	"github.com/automa-saga/logx"
	"github.com/spf13/cobra"

	"github.com/sciportal/portal-datastore/internal/workflows"
)

var (
	flagRegisterUser      string
	flagRegisterPath      string
	flagRegisterIrodsUser string

	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Register a service for a user",
		Long:  "Ensure the user exists, create the service collection under the user's home and apply the access grants",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBackend()
			if err != nil {
				return err
			}
			defer b.Close()

			reg, report, err := workflows.Register(cmd.Context(), b.services(),
				flagRegisterUser, flagRegisterPath, flagRegisterIrodsUser)
			if report != nil {
				printReport(cmd, report)
			}
			if err != nil {
				return err
			}

			logx.As().Info().
				Str("user", reg.Username).
				Str("path", reg.Path).
				Msg("Service registration complete")
			return nil
		},
	}
)

func init() {
	registerCmd.Flags().StringVarP(&flagRegisterUser, "user", "u", "", "username to register the service for")
	registerCmd.Flags().StringVarP(&flagRegisterPath, "path", "p", "", "service path relative to the user's home collection")
	registerCmd.Flags().StringVar(&flagRegisterIrodsUser, "irods-user", "", "secondary service account granted ownership of the path")
	_ = registerCmd.MarkFlagRequired("user")
	_ = registerCmd.MarkFlagRequired("path")
}

func printReport(cmd *cobra.Command, report *automa.Report) {
	for _, stepReport := range report.StepReports {
		cmd.Printf("%-24s %s\n", stepReport.Id, stepReport.Status)
	}
}
