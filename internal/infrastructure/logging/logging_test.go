package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/boticario/catalog-proxy/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Stdout(t *testing.T) {
	logger, closer, err := Setup(config.LogConfig{Level: "debug", Format: "text"})

	require.NoError(t, err)
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}

func TestSetup_JSONFormat(t *testing.T) {
	logger, closer, err := Setup(config.LogConfig{Level: "info", Format: "JSON"})

	require.NoError(t, err)
	defer closer.Close()

	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)
}

func TestSetup_InvalidLevel(t *testing.T) {
	_, _, err := Setup(config.LogConfig{Level: "loud"})

	assert.Error(t, err)
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "catalog-proxy.log")

	logger, closer, err := Setup(config.LogConfig{
		Level:      "info",
		Format:     "json",
		File:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	})
	require.NoError(t, err)

	logger.WithField("product_id", 42).Info("written to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written to file"`)
	assert.Contains(t, string(data), `"product_id":42`)
}
