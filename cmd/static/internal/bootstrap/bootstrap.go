package bootstrap

import (
	"fmt"

	"github.com/goliatone/go-seogen"
	"github.com/goliatone/go-seogen/internal/di"
	"github.com/goliatone/go-seogen/internal/logging"
	"github.com/goliatone/go-seogen/pkg/interfaces"
)

// Options captures configuration for static CLI bootstraps.
type Options struct {
	ConfigPath     string
	EnvFile        string
	Verbose        bool
	Environ        []string
	LoggerProvider interfaces.LoggerProvider
}

// Resources wraps the generator module together with the loaded configuration
// and the logger reserved for the watcher.
type Resources struct {
	Module *seogen.Module
	Config seogen.Config
	Logger interfaces.Logger
}

// BuildModule loads configuration and constructs a generator module for CLI use.
func BuildModule(opts Options) (*Resources, error) {
	cfg, err := seogen.LoadConfig(seogen.LoadOptions{
		ConfigPath: opts.ConfigPath,
		EnvFile:    opts.EnvFile,
		Environ:    opts.Environ,
	})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Verbose {
		cfg.Logging.Level = "debug"
	}

	diOpts := []di.Option{}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := seogen.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise generator module: %w", err)
	}
	if module.Generator() == nil {
		return nil, fmt.Errorf("generator service not configured")
	}

	return &Resources{
		Module: module,
		Config: cfg,
		Logger: logging.WatchLogger(module.LoggerProvider()),
	}, nil
}
