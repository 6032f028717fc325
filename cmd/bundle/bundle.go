package bundle

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/bundle"
	"github.com/stoshu2/opsreport/pkg/ops_cli"
	"github.com/stoshu2/opsreport/pkg/ops_err"
	"github.com/stoshu2/opsreport/pkg/ops_io"
)

// BundleCmd archives an existing report or collection directory.
var BundleCmd = &cobra.Command{
	Use:     "bundle <directory>",
	Aliases: []string{"zip", "archive"},
	Short:   "Archive a report directory into a sibling ZIP",
	Long: `Archive an existing report or collection directory.

Writes <directory>.zip next to the directory, with deterministic file
ordering so repeated runs over the same tree produce identical archives.

Examples:
  opsreport bundle ./backup-20260829-101500
  opsreport bundle /srv/reports/INC-4821-endpoint-20260829-101500`,

	Args: cobra.ExactArgs(1),

	RunE: ops_cli.Wrap(func(rc *ops_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		logger := otelzap.Ctx(rc.Ctx)
		dir := args[0]

		info, err := os.Stat(dir)
		if err != nil {
			return ops_err.NewInputError(
				fmt.Sprintf("cannot read directory %s", dir),
				err,
				"pass the report directory a previous run wrote",
			)
		}
		if !info.IsDir() {
			return ops_err.NewInputError(
				fmt.Sprintf("%s is not a directory", dir),
				nil,
				"pass the report directory, not a file inside it",
			)
		}

		zipPath, err := bundle.Zip(rc, dir)
		if err != nil {
			return err
		}

		logger.Info("✅ Archive written", zap.String("path", zipPath))
		return nil
	}),
}
