package endpoint

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/bundle"
	"github.com/stoshu2/opsreport/pkg/endpoint"
	"github.com/stoshu2/opsreport/pkg/ops_cli"
	"github.com/stoshu2/opsreport/pkg/ops_io"
	"github.com/stoshu2/opsreport/pkg/report"
	"github.com/stoshu2/opsreport/pkg/thresholds"
)

var (
	endpointDatadir    string
	endpointThresholds string
	endpointOutdir     string
	endpointTicket     string
	endpointZip        bool
)

// EndpointCmd audits one host from its collector documents.
var EndpointCmd = &cobra.Command{
	Use:     "endpoint",
	Aliases: []string{"health", "audit"},
	Short:   "Audit a host from its collected health documents",
	Long: `Audit a single host from the JSON documents its collector produced.

Reads system_info.json, disk.json, resource.json, services.json, reboot.json
and defender.json from --datadir, classifies every disk, resource and state
check, and writes report.html and report.json into a timestamped directory.

Examples:
  opsreport endpoint --datadir ./collected/host01
  opsreport endpoint --datadir ./collected/host01 --thresholds thresholds.json --zip`,

	RunE: ops_cli.Wrap(func(rc *ops_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		logger := otelzap.Ctx(rc.Ctx)

		v := ops_cli.NewViper()
		if err := ops_cli.BindFlagsToViper(cmd, v); err != nil {
			return err
		}

		datadir, err := ops_cli.GetRequiredString(cmd, "datadir")
		if err != nil {
			return err
		}

		t, err := thresholds.LoadEndpoint(rc.Ctx, v.GetString("thresholds"))
		if err != nil {
			return err
		}

		docs, err := endpoint.Load(rc.Ctx, datadir)
		if err != nil {
			return err
		}

		audit := endpoint.Classify(docs, t)

		rep := report.Build(report.Meta{
			Tool:        "endpoint",
			Title:       "Endpoint Health Report",
			GeneratedAt: rc.Timestamp,
			Host:        audit.Host.Hostname,
			TicketLabel: v.GetString("ticket"),
		}, t, audit.Results)

		rep.AddSection("Host", []string{"Field", "Value"}, hostRows(audit.Host))
		rep.AddSection("Disks",
			[]string{"Drive", "Size (GB)", "Free (GB)", "Free %", "Volume"},
			diskRows(docs.Disks))
		if len(audit.AutoStopped) > 0 {
			rep.AddSection("Stopped automatic services",
				[]string{"Name", "Display name", "State", "Start mode"},
				serviceRows(audit.AutoStopped))
		}

		dir := bundle.OutputDir(v.GetString("outdir"), "endpoint", v.GetString("ticket"), rc.Timestamp)
		if err := rep.WriteFiles(rc, dir); err != nil {
			return err
		}

		if v.GetBool("zip") {
			if _, err := bundle.Zip(rc, dir); err != nil {
				return err
			}
		}

		logger.Info("Endpoint audit finished",
			zap.String("host", audit.Host.Hostname),
			zap.String("outdir", dir))
		return rep.PrintSummary()
	}),
}

func hostRows(h endpoint.SystemInfo) [][]string {
	rows := [][]string{
		{"Hostname", h.Hostname},
		{"OS", h.OS},
	}
	if h.OSVersion != "" {
		rows = append(rows, []string{"OS version", h.OSVersion})
	}
	if h.UptimeHours != nil {
		rows = append(rows, []string{"Uptime (hours)", fmt.Sprintf("%.1f", *h.UptimeHours)})
	}
	if h.BootTime != "" {
		rows = append(rows, []string{"Boot time", h.BootTime})
	}
	return rows
}

func diskRows(disks []endpoint.Disk) [][]string {
	rows := make([][]string, 0, len(disks))
	for _, d := range disks {
		rows = append(rows, []string{
			d.Drive,
			floatCell(d.SizeGB, "%.1f"),
			floatCell(d.FreeGB, "%.1f"),
			floatCell(d.FreePercent, "%.2f"),
			d.VolumeName,
		})
	}
	return rows
}

func serviceRows(services []endpoint.Service) [][]string {
	rows := make([][]string, 0, len(services))
	for _, s := range services {
		rows = append(rows, []string{s.Name, s.DisplayName, s.State, s.StartMode})
	}
	return rows
}

func floatCell(v *float64, format string) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf(format, *v)
}

func init() {
	EndpointCmd.Flags().StringVar(&endpointDatadir, "datadir", "", "Directory holding the collector JSON documents (required)")
	EndpointCmd.Flags().StringVar(&endpointThresholds, "thresholds", "", "Path to thresholds JSON/YAML (defaults used when omitted)")
	EndpointCmd.Flags().StringVar(&endpointOutdir, "outdir", ".", "Parent directory for the timestamped report directory")
	EndpointCmd.Flags().StringVar(&endpointTicket, "ticket", "", "Ticket label recorded in the report and directory name")
	EndpointCmd.Flags().BoolVar(&endpointZip, "zip", false, "Archive the report directory after writing")
}
