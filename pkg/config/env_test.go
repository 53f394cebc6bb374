package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvWithDefault(t *testing.T) {
	t.Setenv("SITESEARCH_FOO", "")
	assert.Equal(t, "bar", GetEnv("SITESEARCH_FOO", "bar"))
	t.Setenv("SITESEARCH_FOO", "  ")
	assert.Equal(t, "bar", GetEnv("SITESEARCH_FOO", "bar"))
	t.Setenv("SITESEARCH_FOO", "baz")
	assert.Equal(t, "baz", GetEnv("SITESEARCH_FOO", "bar"))
}

func TestGetEnvNumbers(t *testing.T) {
	t.Setenv("SITESEARCH_NUM", "")
	assert.Equal(t, 42, GetEnvInt("SITESEARCH_NUM", 42))
	t.Setenv("SITESEARCH_NUM", "100")
	assert.Equal(t, 100, GetEnvInt("SITESEARCH_NUM", 42))
	assert.Equal(t, int64(100), GetEnvInt64("SITESEARCH_NUM", 1))
	t.Setenv("SITESEARCH_NUM", "notint")
	assert.Equal(t, 7, GetEnvInt("SITESEARCH_NUM", 7))

	t.Setenv("SITESEARCH_RATE", "2.5")
	assert.InDelta(t, 2.5, GetEnvFloat("SITESEARCH_RATE", 0), 1e-9)
	t.Setenv("SITESEARCH_RATE", "fast")
	assert.InDelta(t, 1.0, GetEnvFloat("SITESEARCH_RATE", 1), 1e-9)
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("SITESEARCH_TIMEOUT", "1m30s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("SITESEARCH_TIMEOUT", time.Second))
	t.Setenv("SITESEARCH_TIMEOUT", "ten")
	assert.Equal(t, time.Second, GetEnvDuration("SITESEARCH_TIMEOUT", time.Second))
}

func TestGetLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"WARN":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"":      logrus.InfoLevel,
		"loud":  logrus.InfoLevel,
	}
	for in, want := range cases {
		t.Setenv("LOG_LEVEL", in)
		assert.Equal(t, want, GetLogLevel(), "LOG_LEVEL=%q", in)
	}
}

func TestLoadEnvOverridesFromFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITESEARCH_FROM_FILE=one\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.dev"), []byte("SITESEARCH_FROM_FILE=two\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("SITESEARCH_FROM_FILE", "")

	LoadEnv(logrus.New())

	assert.Equal(t, "two", os.Getenv("SITESEARCH_FROM_FILE"))
}
