// pkg/endpoint/load_test.go

package endpoint

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoshu2/opsreport/pkg/ops_err"
)

func writeDocs(t *testing.T, dir string, overrides map[string]string) {
	t.Helper()
	docs := map[string]string{
		SystemInfoFile: `{"Hostname": "host01", "OS": "Windows Server 2022"}`,
		DiskFile:       `[{"Drive": "C:", "SizeGB": 500, "FreeGB": 250, "FreePercent": 50}]`,
		ResourceFile:   `{"CpuLoadPercent": 20, "MemoryUsedPercent": 40}`,
		ServicesFile:   `[]`,
		RebootFile:     `{"Pending": false}`,
		DefenderFile:   `{"Available": true, "RealTimeProtectionEnabled": true}`,
	}
	for name, content := range overrides {
		docs[name] = content
	}
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestLoad_AllDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDocs(t, dir, nil)

	docs, err := Load(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, "host01", docs.SystemInfo.Hostname)
	require.Len(t, docs.Disks, 1)
	assert.Equal(t, "C:", docs.Disks[0].Drive)
	require.NotNil(t, docs.Resource.CPULoadPercent)
	assert.Equal(t, 20.0, *docs.Resource.CPULoadPercent)
	assert.False(t, docs.Reboot.Pending)
}

func TestLoad_BareObjectBecomesSingletonList(t *testing.T) {
	// The upstream collector drops the array wrapper around single elements.
	dir := t.TempDir()
	writeDocs(t, dir, map[string]string{
		DiskFile:     `{"Drive": "C:", "SizeGB": 500, "FreeGB": 100, "FreePercent": 20}`,
		ServicesFile: `{"Name": "Spooler", "State": "Stopped", "StartMode": "Auto"}`,
	})

	docs, err := Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, docs.Disks, 1)
	assert.Equal(t, "C:", docs.Disks[0].Drive)
	require.Len(t, docs.Services, 1)
	assert.Equal(t, "Spooler", docs.Services[0].Name)
}

func TestLoad_MissingDocumentAborts(t *testing.T) {
	dir := t.TempDir()
	writeDocs(t, dir, nil)
	require.NoError(t, os.Remove(filepath.Join(dir, ResourceFile)))

	_, err := Load(context.Background(), dir)
	require.Error(t, err)
	assert.Equal(t, 1, ops_err.ExitCode(err), "missing document is an input error")
	assert.Contains(t, err.Error(), ResourceFile)
}

func TestLoad_NullFieldsStayNil(t *testing.T) {
	dir := t.TempDir()
	writeDocs(t, dir, map[string]string{
		DiskFile:     `[{"Drive": "C:", "SizeGB": null, "FreeGB": null, "FreePercent": null}]`,
		ResourceFile: `{"CpuLoadPercent": null, "MemoryUsedPercent": 40}`,
	})

	docs, err := Load(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, docs.Disks, 1)
	assert.Nil(t, docs.Disks[0].FreePercent)
	assert.Nil(t, docs.Resource.CPULoadPercent)
	require.NotNil(t, docs.Resource.MemoryUsedPercent)
}

func TestLoad_BOMTolerant(t *testing.T) {
	dir := t.TempDir()
	writeDocs(t, dir, map[string]string{
		SystemInfoFile: "\xEF\xBB\xBF" + `{"Hostname": "host01", "OS": "Windows Server 2022"}`,
	})

	docs, err := Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "host01", docs.SystemInfo.Hostname)
}
