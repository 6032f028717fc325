/* cmd/root.go */

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/cmd/backup"
	"github.com/stoshu2/opsreport/cmd/bundle"
	"github.com/stoshu2/opsreport/cmd/collect"
	"github.com/stoshu2/opsreport/cmd/endpoint"
	"github.com/stoshu2/opsreport/cmd/logs"
	"github.com/stoshu2/opsreport/pkg/logger"
	"github.com/stoshu2/opsreport/pkg/ops_cli"
	"github.com/stoshu2/opsreport/pkg/ops_err"
	"github.com/stoshu2/opsreport/pkg/ops_io"
)

// RootCmd is the base command for opsreport.
var RootCmd = &cobra.Command{
	Use:   "opsreport",
	Short: "One-shot IT reporting: backup verification, endpoint health, log summaries",
	Long: `opsreport is a command-line application that turns collected operational
facts (backup-job exports, endpoint health documents, log and performance
summaries) into classified HTML and JSON reports.`,

	RunE: ops_cli.Wrap(func(rc *ops_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		rc.Log.Info("No subcommand provided")
		return cmd.Help()
	}),
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	for _, subCmd := range []*cobra.Command{
		backup.BackupCmd,
		endpoint.EndpointCmd,
		logs.LogsCmd,
		collect.CollectCmd,
		bundle.BundleCmd,
	} {
		RootCmd.AddCommand(subCmd)
	}
}

// Execute initializes and runs the root command, mapping error categories to
// exit codes: configuration errors 2, input/output errors 1, internal 3.
func Execute() {
	defer func() {
		_ = logger.Sync()
	}()

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		if ops_err.IsExpectedUserError(err) {
			logger.L().Warn("CLI completed with user error", zap.Error(err))
			os.Exit(0)
		}
		ops_err.PrintError("opsreport failed", err)
		os.Exit(ops_err.ExitCode(err))
	}
}
