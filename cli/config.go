package cli

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration file, YAML, by default at
// ~/.liftlog/config.yaml.
type Config struct {
	BaseURL         string `yaml:"baseUrl"`
	CredentialsFile string `yaml:"credentialsFile"`
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".liftlog")
}

// LoadConfig reads the configuration file and fills in defaults. A missing
// file is not an error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		path = filepath.Join(defaultConfigDir(), "config.yaml")
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:3000"
	}
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = filepath.Join(defaultConfigDir(), "credentials.json")
	}
	return cfg, nil
}
