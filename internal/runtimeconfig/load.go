package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "SEOGEN_"

// LoadOptions locates the configuration sources. Every field is optional.
type LoadOptions struct {
	// ConfigPath is a YAML file layered over DefaultConfig.
	ConfigPath string
	// EnvFile is a dotenv file; a missing file is ignored.
	EnvFile string
	// Environ replaces os.Environ when set, mostly for tests.
	Environ []string
}

// Load builds a Config from defaults, the YAML file, the dotenv file and the
// process environment, in that order, then validates it. Real environment
// variables win over dotenv entries.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	if path := strings.TrimSpace(opts.ConfigPath); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("seogen config: read %s: %w", path, err)
		}
		if err := decodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("seogen config: parse %s: %w", path, err)
		}
	}

	environment := map[string]string{}
	if path := strings.TrimSpace(opts.EnvFile); path != "" {
		values, err := godotenv.Read(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("seogen config: read %s: %w", path, err)
		default:
			for key, value := range values {
				environment[key] = value
			}
		}
	}
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	for _, entry := range environ {
		if key, value, ok := strings.Cut(entry, "="); ok {
			environment[key] = value
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	}); err != nil {
		return Config{}, fmt.Errorf("seogen config: environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
