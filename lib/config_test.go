package lib

import (
	"io/ioutil"
	"os"
	"path"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func withEnv(t *testing.T, key, value string) func() {
	old, had := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, value))
	return func() {
		if had {
			os.Setenv(key, old)
		} else {
			os.Unsetenv(key)
		}
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	defer withEnv(t, "ATSCRIPT_DATABASE_URL", "")()
	defer withEnv(t, "ATSCRIPT_LOG_LEVEL", "")()

	cfg, err := LoadConfig("does-not-exist.yaml")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	defer withEnv(t, "ATSCRIPT_DATABASE_URL", "")()
	defer withEnv(t, "ATSCRIPT_LOG_LEVEL", "")()

	dir, err := ioutil.TempDir("", "atscript")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := path.Join(dir, "atscript.yaml")
	require.NoError(t, ioutil.WriteFile(file, []byte(`
scripts_dir: examples
log_level: warn
database_url: "dbname=atscript"
`), 0644))

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	require.Equal(t, "examples", cfg.ScriptsDir)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "dbname=atscript", cfg.DatabaseURL)
	require.Equal(t, "last_test.txt", cfg.StateFile)
	require.Equal(t, "script_runs", cfg.RunsTable)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	defer withEnv(t, "ATSCRIPT_DATABASE_URL", "dbname=fromenv")()
	defer withEnv(t, "ATSCRIPT_LOG_LEVEL", "debug")()

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, "dbname=fromenv", cfg.DatabaseURL)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir, err := ioutil.TempDir("", "atscript")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	file := path.Join(dir, "atscript.yaml")
	require.NoError(t, ioutil.WriteFile(file, []byte("scripts_dir: [unclosed"), 0644))

	_, err = LoadConfig(file)
	require.Error(t, err)
}

func TestConfigureLogging(t *testing.T) {
	old := logrus.GetLevel()
	defer logrus.SetLevel(old)

	cfg := DefaultConfig()
	cfg.LogLevel = "debug"
	require.NoError(t, cfg.ConfigureLogging())
	require.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	cfg.LogLevel = "chatty"
	require.Error(t, cfg.ConfigureLogging())
}
