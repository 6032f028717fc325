// pkg/thresholds/load.go

package thresholds

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/stoshu2/opsreport/pkg/ops_err"
	"github.com/stoshu2/opsreport/pkg/ops_io"
)

var validate = validator.New()

// LoadBackup reads backup thresholds from path, or returns defaults when path
// is empty. Validation failures abort the run as configuration errors.
func LoadBackup(ctx context.Context, path string) (Backup, error) {
	t := DefaultBackup()
	if err := loadInto(ctx, path, &t); err != nil {
		return Backup{}, err
	}
	if err := check(path, &t); err != nil {
		return Backup{}, err
	}
	return t, nil
}

// LoadEndpoint reads endpoint thresholds from path, or returns defaults when
// path is empty.
func LoadEndpoint(ctx context.Context, path string) (Endpoint, error) {
	t := DefaultEndpoint()
	if err := loadInto(ctx, path, &t); err != nil {
		return Endpoint{}, err
	}
	if err := check(path, &t); err != nil {
		return Endpoint{}, err
	}
	return t, nil
}

// LoadPerf reads counter thresholds from path, or returns defaults when path
// is empty. File-supplied counter paths are normalized to lowercase so they
// match normalized counter rows.
func LoadPerf(ctx context.Context, path string) (Perf, error) {
	t := DefaultPerf()
	if path != "" {
		t = Perf{}
		if err := loadInto(ctx, path, &t); err != nil {
			return Perf{}, err
		}
		lowered := make(map[string]Counter, len(t.Counters))
		for k, v := range t.Counters {
			lowered[strings.ToLower(k)] = v
		}
		t.Counters = lowered
	}
	if err := check(path, &t); err != nil {
		return Perf{}, err
	}
	return t, nil
}

// loadInto overlays a JSON or YAML threshold file onto the defaults already
// present in out. An empty path keeps the defaults.
func loadInto(ctx context.Context, path string, out interface{}) error {
	if path == "" {
		otelzap.Ctx(ctx).Debug("No thresholds file supplied, using defaults")
		return nil
	}

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = ops_io.ReadYAML(ctx, path, out)
	default:
		err = ops_io.ReadJSON(ctx, path, out)
	}
	if err != nil {
		return ops_err.NewConfigurationError(
			fmt.Sprintf("cannot load thresholds from %s", path),
			err,
			"check that the file exists and is valid JSON or YAML",
		)
	}

	otelzap.Ctx(ctx).Debug("Thresholds loaded", zap.String("path", path))
	return nil
}

// check validates a threshold set and converts field errors into one
// descriptive configuration error.
func check(path string, t interface{}) error {
	err := validate.Struct(t)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ops_err.NewConfigurationError("threshold validation failed", err)
	}

	var result *multierror.Error
	for _, fe := range verrs {
		result = multierror.Append(result, cerr.Newf(
			"threshold %q failed rule %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}

	source := path
	if source == "" {
		source = "(defaults)"
	}
	return ops_err.NewConfigurationError(
		fmt.Sprintf("invalid thresholds in %s", source),
		result.ErrorOrNil(),
		"supply every required key with a sensible value",
		"warn limits must be less strict than alert limits",
	)
}
