// pkg/bundle/bundle_test.go

package bundle

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoshu2/opsreport/pkg/ops_io"
)

func TestOutputDir(t *testing.T) {
	now := time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		ticket string
		want   string
	}{
		{"no ticket", "", filepath.Join("/srv/reports", "backup-20260829-143000")},
		{"with ticket", "INC-4821", filepath.Join("/srv/reports", "INC-4821-backup-20260829-143000")},
		{"unsafe ticket characters", "INC 4821/Jane's", filepath.Join("/srv/reports", "INC_4821_Jane_s-backup-20260829-143000")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutputDir("/srv/reports", "backup", tt.ticket, now))
		})
	}
}

func TestZip_RoundTrip(t *testing.T) {
	rc := ops_io.NewContext(context.Background(), "test")

	parent := t.TempDir()
	dir := filepath.Join(parent, "backup-20260829-143000")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.json"), []byte(`{"ok":true}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "report.html"), []byte("<!doctype html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "extra.txt"), []byte("x"), 0644))

	zipPath, err := Zip(rc, dir)
	require.NoError(t, err)
	assert.Equal(t, dir+".zip", zipPath)

	zr, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer zr.Close()

	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	// Sorted walk order, forward slashes, prefixed with the directory name.
	assert.Equal(t, []string{
		"backup-20260829-143000/nested/extra.txt",
		"backup-20260829-143000/report.html",
		"backup-20260829-143000/report.json",
	}, names)

	r, err := zr.File[2].Open()
	require.NoError(t, err)
	defer r.Close()
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(content))
}

func TestZip_MissingDirectory(t *testing.T) {
	rc := ops_io.NewContext(context.Background(), "test")
	_, err := Zip(rc, filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestZip_FileInsteadOfDirectory(t *testing.T) {
	rc := ops_io.NewContext(context.Background(), "test")
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	_, err := Zip(rc, path)
	assert.Error(t, err)
}
