package collect

import (
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/bundle"
	"github.com/stoshu2/opsreport/pkg/collector"
	"github.com/stoshu2/opsreport/pkg/ops_cli"
	"github.com/stoshu2/opsreport/pkg/ops_io"
)

var (
	collectOutdir string
	collectTicket string
	collectZip    bool
)

// CollectCmd gathers host health documents for a later endpoint audit.
var CollectCmd = &cobra.Command{
	Use:     "collect",
	Aliases: []string{"gather"},
	Short:   "Collect this host's health documents for a later audit",
	Long: `Collect system, disk and resource information from this host.

Writes the JSON documents an endpoint audit consumes (system_info.json,
disk.json, resource.json, services.json, reboot.json, defender.json) into a
timestamped directory. Feed that directory to 'opsreport endpoint --datadir'.

Examples:
  opsreport collect
  opsreport collect --outdir /srv/collected --ticket INC-4821 --zip`,

	RunE: ops_cli.Wrap(func(rc *ops_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		logger := otelzap.Ctx(rc.Ctx)

		v := ops_cli.NewViper()
		if err := ops_cli.BindFlagsToViper(cmd, v); err != nil {
			return err
		}

		dir := bundle.OutputDir(v.GetString("outdir"), "collect", v.GetString("ticket"), rc.Timestamp)
		docs, err := collector.Collect(rc, dir)
		if err != nil {
			return err
		}

		if v.GetBool("zip") {
			if _, err := bundle.Zip(rc, dir); err != nil {
				return err
			}
		}

		logger.Info("✅ Collection finished",
			zap.String("host", docs.SystemInfo.Hostname),
			zap.String("outdir", dir),
			zap.Int("disks", len(docs.Disks)))
		return nil
	}),
}

func init() {
	CollectCmd.Flags().StringVar(&collectOutdir, "outdir", ".", "Parent directory for the timestamped collection directory")
	CollectCmd.Flags().StringVar(&collectTicket, "ticket", "", "Ticket label recorded in the directory name")
	CollectCmd.Flags().BoolVar(&collectZip, "zip", false, "Archive the collection directory after writing")
}
