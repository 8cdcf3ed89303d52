package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripnest/inputguard/pkg/logger"
)

func TestRotatingFile(t *testing.T) {
	t.Parallel()

	assert.Nil(t, logger.RotatingFile(logger.FileConfig{}))

	path := filepath.Join(t.TempDir(), "guard.log")
	w := logger.RotatingFile(logger.FileConfig{Path: path, MaxSizeMB: 1})
	require.NotNil(t, w)

	stdout := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(stdout), logger.WithTee(w), logger.WithTee(nil))
	log.Log(t.Context(), logger.LevelSecurity, "xss pattern detected")
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, stdout.String(), string(data))
	assert.Contains(t, string(data), `"level":"SECURITY"`)
}
