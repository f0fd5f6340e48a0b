package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/trebuchet-org/coffer/internal/domain/config"
)

// loadCofferConfig decodes coffer.toml onto the defaults, so keys missing
// from the file keep their default value. Returns the defaults and an empty
// source path when the file does not exist.
func loadCofferConfig(projectRoot string) (*config.CofferFileConfig, string, error) {
	cfg := config.DefaultCofferFileConfig()
	path := filepath.Join(projectRoot, config.FileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, "", nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse %s: %w", config.FileName, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, "", fmt.Errorf("unknown keys in %s: %s", config.FileName, strings.Join(keys, ", "))
	}

	expandEnv(cfg)
	return cfg, path, nil
}

// expandEnv replaces ${VAR} references in the string settings
func expandEnv(cfg *config.CofferFileConfig) {
	cfg.Storage.Backend = os.ExpandEnv(cfg.Storage.Backend)
	cfg.Storage.Path = os.ExpandEnv(cfg.Storage.Path)
	cfg.Actor.UserID = os.ExpandEnv(cfg.Actor.UserID)
	for i, c := range cfg.Expenses.Categories {
		cfg.Expenses.Categories[i] = os.ExpandEnv(c)
	}
}

const cofferFileHeader = `# coffer project configuration
# String values may reference environment variables as ${NAME};
# .env and .env.local in this directory are loaded first.

`

// EncodeCofferConfig renders cfg as a commented coffer.toml document
func EncodeCofferConfig(cfg *config.CofferFileConfig) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(cofferFileHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", config.FileName, err)
	}
	return buf.Bytes(), nil
}
