// Package bundle owns the run's output directory: timestamp-qualified naming
// to avoid collisions between runs, and ZIP archiving of the finished
// directory for ticket attachments.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/ops_err"
	"github.com/stoshu2/opsreport/pkg/ops_io"
)

// OutputDir returns the timestamped directory path for one run, e.g.
// parent/TICKET-backup-20260829-143000. The ticket label is optional.
func OutputDir(parent, tool, ticket string, now time.Time) string {
	name := fmt.Sprintf("%s-%s", tool, now.Format("20060102-150405"))
	if ticket != "" {
		name = sanitizeLabel(ticket) + "-" + name
	}
	return filepath.Join(parent, name)
}

// sanitizeLabel keeps ticket labels filesystem-safe.
func sanitizeLabel(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, strings.TrimSpace(s))
}

// Zip archives dir into a sibling <dir>.zip and returns the archive path.
// Entries are written in sorted order with forward-slash names so the archive
// is reproducible across platforms.
func Zip(rc *ops_io.RuntimeContext, dir string) (string, error) {
	logger := otelzap.Ctx(rc.Ctx)

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", ops_err.NewInputError(
			fmt.Sprintf("cannot archive %s: not a directory", dir), err)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", ops_err.NewIOError(
			fmt.Sprintf("cannot walk output directory %s", dir), err)
	}
	sort.Strings(files)

	zipPath := dir + ".zip"
	out, err := os.Create(zipPath)
	if err != nil {
		return "", ops_err.NewIOError(
			fmt.Sprintf("cannot create archive %s", zipPath), err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, file := range files {
		rel, err := filepath.Rel(dir, file)
		if err != nil {
			return "", ops_err.NewIOError("cannot resolve archive entry name", err)
		}
		name := filepath.ToSlash(filepath.Join(filepath.Base(dir), rel))

		w, err := zw.Create(name)
		if err != nil {
			return "", ops_err.NewIOError(
				fmt.Sprintf("cannot add %s to archive", name), err)
		}
		in, err := os.Open(file)
		if err != nil {
			return "", ops_err.NewIOError(
				fmt.Sprintf("cannot read %s for archiving", file), err)
		}
		if _, err := io.Copy(w, in); err != nil {
			in.Close()
			return "", ops_err.NewIOError(
				fmt.Sprintf("cannot write %s to archive", name), err)
		}
		in.Close()
	}

	if err := zw.Close(); err != nil {
		return "", ops_err.NewIOError(
			fmt.Sprintf("cannot finalize archive %s", zipPath), err)
	}

	logger.Info("📦 Output archived", zap.String("zip", zipPath), zap.Int("files", len(files)))
	return zipPath, nil
}
