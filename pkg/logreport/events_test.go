// pkg/logreport/events_test.go

package logreport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEvents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events_system.csv")
	csv := "TimeCreated,LevelDisplayName,ProviderName,EventID,MachineName,Message\n" +
		"2026-08-29 10:15:00,Error,Disk,51,HOST01,An error was detected on device \\Device\\Harddisk0\n" +
		"2026-08-29 10:10:00,Warning,Time-Service,36,HOST01,Time drift detected\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	events, err := LoadEvents(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "Error", events[0].Level)
	assert.Equal(t, "Disk", events[0].Provider)
	assert.Equal(t, "51", events[0].EventID)
	assert.Equal(t, "HOST01", events[0].Machine)
}

func TestLoadEvents_MissingFileIsEmpty(t *testing.T) {
	events, err := LoadEvents(context.Background(), filepath.Join(t.TempDir(), "events_system.csv"))
	assert.NoError(t, err, "an absent export is normal, not an error")
	assert.Empty(t, events)
}

func TestLoadEvents_EmptyFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events_application.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	events, err := LoadEvents(context.Background(), path)
	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestCountByLevel(t *testing.T) {
	events := []Event{
		{Level: "Error"},
		{Level: "Error"},
		{Level: "Warning"},
		{Level: "Information"},
		{Level: "  "},
	}

	counts := CountByLevel(events)
	assert.Equal(t, 2, counts["Error"])
	assert.Equal(t, 1, counts["Warning"])
	assert.Equal(t, 1, counts["Information"])
	assert.Equal(t, 1, counts["Unknown"], "blank levels tally as Unknown")
}

func TestNewest_FiltersAndOrders(t *testing.T) {
	events := []Event{
		{TimeCreated: "2026-08-29 09:00:00", Level: "Information", Message: "noise"},
		{TimeCreated: "2026-08-29 10:00:00", Level: "Warning", Message: "w1"},
		{TimeCreated: "2026-08-29 11:00:00", Level: "Error", Message: "e1"},
		{TimeCreated: "2026-08-29 08:00:00", Level: "Critical", Message: "c1"},
		{TimeCreated: "2026-08-29 12:00:00", Level: "Verbose", Message: "noise"},
	}

	newest := Newest(events, 2)
	require.Len(t, newest, 2)
	assert.Equal(t, "e1", newest[0].Message, "newest noisy event first")
	assert.Equal(t, "w1", newest[1].Message)
}

func TestNewest_LimitLargerThanInput(t *testing.T) {
	events := []Event{{TimeCreated: "2026-08-29 10:00:00", Level: "Error"}}
	assert.Len(t, Newest(events, 25), 1)
}

func TestTruncateMessage(t *testing.T) {
	assert.Equal(t, "short", TruncateMessage("short", 10))
	assert.Equal(t, "exactly-10", TruncateMessage("exactly-10", 10))
	assert.Equal(t, "0123456789...", TruncateMessage("0123456789abcdef", 10))
}
