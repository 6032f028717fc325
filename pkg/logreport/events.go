// pkg/logreport/events.go

package logreport

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/ops_io"
)

// Event is one exported event-log record.
type Event struct {
	TimeCreated string `json:"time_created"`
	Level       string `json:"level"`
	Provider    string `json:"provider"`
	EventID     string `json:"event_id"`
	Machine     string `json:"machine,omitempty"`
	Message     string `json:"message"`
}

// noisyLevels are the levels worth surfacing in the newest-events tables.
var noisyLevels = map[string]bool{
	"Critical": true,
	"Error":    true,
	"Warning":  true,
}

// LoadEvents reads an exported events CSV. A missing file is normal (the
// collector may have had nothing to export) and yields an empty slice.
func LoadEvents(ctx context.Context, path string) ([]Event, error) {
	logger := otelzap.Ctx(ctx)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("No events file, skipping", zap.String("path", path))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read events CSV %s: %w", path, err)
	}

	reader := csv.NewReader(bytes.NewReader(ops_io.StripBOM(data)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse events CSV %s: %w", path, err)
	}
	index := columnIndex(header)

	var events []Event
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot parse events CSV %s: %w", path, err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		events = append(events, Event{
			TimeCreated: field("timecreated"),
			Level:       field("leveldisplayname"),
			Provider:    field("providername"),
			EventID:     field("eventid"),
			Machine:     field("machinename"),
			Message:     field("message"),
		})
	}

	logger.Debug("Events loaded", zap.String("path", path), zap.Int("count", len(events)))
	return events, nil
}

// CountByLevel tallies events by level display name; blank levels count as
// Unknown.
func CountByLevel(events []Event) map[string]int {
	counts := make(map[string]int)
	for _, e := range events {
		level := strings.TrimSpace(e.Level)
		if level == "" {
			level = "Unknown"
		}
		counts[level]++
	}
	return counts
}

// Newest returns the most recent limit events among Critical/Error/Warning.
// TimeCreated strings sort lexically; that holds for the ISO-ish format the
// collector writes and degrades gracefully otherwise.
func Newest(events []Event, limit int) []Event {
	noisy := make([]Event, 0, len(events))
	for _, e := range events {
		if noisyLevels[e.Level] {
			noisy = append(noisy, e)
		}
	}

	sort.SliceStable(noisy, func(i, j int) bool {
		return noisy[i].TimeCreated > noisy[j].TimeCreated
	})

	if len(noisy) > limit {
		noisy = noisy[:limit]
	}
	return noisy
}

// TruncateMessage shortens long event messages for table display.
func TruncateMessage(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
