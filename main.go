/*
main.go

opsreport generates one-shot IT reports: backup-job verification, endpoint
health audits, and log/performance summaries.
*/
package main

import (
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/cmd"
	"github.com/stoshu2/opsreport/pkg/logger"
	"github.com/stoshu2/opsreport/pkg/telemetry"
)

func main() {
	logger.InitializeWithFallback()

	if err := telemetry.Init("opsreport"); err != nil {
		logger.L().Warn("Telemetry disabled", zap.Error(err))
	}

	cmd.Execute()
}
