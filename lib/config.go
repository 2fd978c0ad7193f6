package lib

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "atscript.yaml"

type Config struct {
	ScriptsDir  string `yaml:"scripts_dir"`
	StateFile   string `yaml:"state_file"`
	LogLevel    string `yaml:"log_level"`
	DatabaseURL string `yaml:"database_url"`
	RunsTable   string `yaml:"runs_table"`
}

func DefaultConfig() Config {
	return Config{
		ScriptsDir: "test/scripts",
		StateFile:  "last_test.txt",
		LogLevel:   "info",
		RunsTable:  "script_runs",
	}
}

// LoadConfig reads a YAML config file on top of the defaults. A missing file
// is not an error. ATSCRIPT_DATABASE_URL and ATSCRIPT_LOG_LEVEL override the
// file.
func LoadConfig(file string) (Config, error) {
	cfg := DefaultConfig()

	if file != "" {
		data, err := ioutil.ReadFile(file)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("Invalid config file %s: %w", file, err)
			}
		}
	}

	if v := os.Getenv("ATSCRIPT_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("ATSCRIPT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// ConfigureLogging applies the configured level to the standard logrus
// logger.
func (c Config) ConfigureLogging() error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}
