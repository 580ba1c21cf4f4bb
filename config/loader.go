package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/repl/errors"
	"github.com/grovetools/repl/logging"
)

// Filenames searched for, in precedence order, at each directory level.
var configFileNames = []string{"repls.yml", "repls.yaml", "repls.toml"}

func init() {
	logging.RegisterConfigLoader(func() (logging.Config, error) {
		cfg, err := LoadDefault()
		if err != nil {
			return logging.Config{}, err
		}
		var logCfg logging.Config
		err = cfg.UnmarshalExtension("logging", &logCfg)
		return logCfg, err
	})
}

// FindConfigFile walks up from startDir looking for a definitions file,
// then falls back to ~/.config/grove-repl/.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	home, err := os.UserHomeDir()
	if err == nil {
		for _, name := range configFileNames {
			candidate := filepath.Join(home, ".config", "grove-repl", name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	return "", errors.ConfigNotFound(filepath.Join(startDir, configFileNames[0]))
}

// Load reads and validates a definitions file. The format is chosen by
// file extension: .toml is TOML, everything else is YAML.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read definitions file")
	}

	var cfg File
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML definitions file").
				WithDetail("path", path)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML definitions file").
				WithDetail("path", path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadDefault locates the definitions file from the current directory and
// loads it.
func LoadDefault() (*File, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	path, err := FindConfigFile(cwd)
	if err != nil {
		return nil, err
	}

	return Load(path)
}
