/* pkg/ops_io/json.go */

package ops_io

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// StripBOM removes a UTF-8 byte-order mark. Upstream collectors on Windows
// routinely emit one at the start of JSON and CSV files.
func StripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// ReadJSON reads a JSON document into out, tolerating a UTF-8 BOM.
func ReadJSON(ctx context.Context, filePath string, out interface{}) error {
	logger := otelzap.Ctx(ctx)
	logger.Debug("📖 Reading JSON file", zap.String("path", filePath))

	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	if err := json.Unmarshal(StripBOM(data), out); err != nil {
		logger.Error("❌ Failed to unmarshal JSON",
			zap.String("path", filePath),
			zap.Error(err))
		return fmt.Errorf("failed to unmarshal JSON %s: %w", filePath, err)
	}

	return nil
}
