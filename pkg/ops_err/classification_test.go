// pkg/ops_err/classification_test.go

package ops_err

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitCode_ByCategory(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"input error", NewInputError("cannot read jobs.csv", errors.New("no such file")), 1},
		{"io error", NewIOError("cannot write report.json", errors.New("permission denied")), 1},
		{"configuration error", NewConfigurationError("stale_days must be positive", nil), 2},
		{"plain error is internal", errors.New("boom"), 3},
		{"expected user error", NewExpectedError(errors.New("nothing to do")), 0},
		{"wrapped classified error keeps its code", fmt.Errorf("running backup: %w",
			NewConfigurationError("bad thresholds", nil)), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestClassifiedError_Message(t *testing.T) {
	err := NewInputError(
		"cannot read jobs CSV /tmp/jobs.csv",
		errors.New("open /tmp/jobs.csv: no such file or directory"),
		"pass the exported jobs file with --input",
	)

	msg := err.Error()
	assert.Contains(t, msg, "cannot read jobs CSV /tmp/jobs.csv")
	assert.Contains(t, msg, "Cause:")
	assert.Contains(t, msg, "How to fix:")
	assert.Contains(t, msg, "1. pass the exported jobs file with --input")
}

func TestClassifiedError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := NewIOError("cannot write", cause)
	assert.ErrorIs(t, err, cause)
}

func TestExpectedUserError(t *testing.T) {
	assert.Nil(t, NewExpectedError(nil))

	err := NewExpectedError(ErrNoResults)
	require.Error(t, err)
	assert.True(t, IsExpectedUserError(err))
	assert.ErrorIs(t, err, ErrNoResults)

	wrapped := fmt.Errorf("loading jobs: %w", err)
	assert.True(t, IsExpectedUserError(wrapped))

	assert.False(t, IsExpectedUserError(errors.New("boom")))
}

func TestExtractSummary(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{"empty", "", "No output provided."},
		{"error line wins", "starting up\nerror: disk full\ndone", "error: disk full"},
		{"first line fallback", "all fine\nnothing to see", "all fine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSummary(tt.output, 3))
		})
	}
}
