// pkg/endpoint/load.go

package endpoint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/ops_err"
	"github.com/stoshu2/opsreport/pkg/ops_io"
)

// Fixed document names written by the collector.
const (
	SystemInfoFile = "system_info.json"
	DiskFile       = "disk.json"
	ResourceFile   = "resource.json"
	ServicesFile   = "services.json"
	RebootFile     = "reboot.json"
	DefenderFile   = "defender.json"
)

// Load reads every subsystem document from dir. All six documents are
// required; a missing one aborts the run as an input error.
func Load(ctx context.Context, dir string) (*Documents, error) {
	logger := otelzap.Ctx(ctx)
	logger.Debug("📖 Loading endpoint documents", zap.String("dir", dir))

	docs := &Documents{}

	if err := ops_io.ReadJSON(ctx, filepath.Join(dir, SystemInfoFile), &docs.SystemInfo); err != nil {
		return nil, missingDoc(SystemInfoFile, err)
	}
	if err := readList(ctx, filepath.Join(dir, DiskFile), &docs.Disks); err != nil {
		return nil, missingDoc(DiskFile, err)
	}
	if err := ops_io.ReadJSON(ctx, filepath.Join(dir, ResourceFile), &docs.Resource); err != nil {
		return nil, missingDoc(ResourceFile, err)
	}
	if err := readList(ctx, filepath.Join(dir, ServicesFile), &docs.Services); err != nil {
		return nil, missingDoc(ServicesFile, err)
	}
	if err := ops_io.ReadJSON(ctx, filepath.Join(dir, RebootFile), &docs.Reboot); err != nil {
		return nil, missingDoc(RebootFile, err)
	}
	if err := ops_io.ReadJSON(ctx, filepath.Join(dir, DefenderFile), &docs.Defender); err != nil {
		return nil, missingDoc(DefenderFile, err)
	}

	logger.Info("Endpoint documents loaded",
		zap.String("host", docs.SystemInfo.Hostname),
		zap.Int("disks", len(docs.Disks)),
		zap.Int("stopped_services", len(docs.Services)))
	return docs, nil
}

func missingDoc(name string, err error) error {
	return ops_err.NewInputError(
		fmt.Sprintf("cannot load collector document %s", name),
		err,
		"run `opsreport collect` or point --datadir at a directory produced by the collector",
	)
}

// readList decodes a document that should be a JSON array but may be a bare
// object: the upstream collector drops the array wrapper when there is
// exactly one element.
func readList[T any](ctx context.Context, path string, out *[]T) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	data = ops_io.StripBOM(data)

	if err := json.Unmarshal(data, out); err == nil {
		return nil
	}

	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		otelzap.Ctx(ctx).Error("❌ Failed to unmarshal JSON list",
			zap.String("path", path), zap.Error(err))
		return fmt.Errorf("failed to unmarshal JSON %s: %w", path, err)
	}
	*out = []T{single}
	return nil
}
