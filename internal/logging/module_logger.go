package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-seogen/pkg/interfaces"
)

// Logger names handed to the provider. Each one is also logged as the
// "module" field.
const (
	rootModule      = "seogen"
	generatorModule = "seogen.generator"
	i18nModule      = "seogen.i18n"
	watchModule     = "seogen.watch"
)

// ModuleLogger asks provider for the logger named module and tags it with a
// module field. A nil provider, or one returning nil, yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module = strings.TrimSpace(module); module == "" {
		module = rootModule
	}
	var logger interfaces.Logger
	if provider != nil {
		logger = provider.GetLogger(module)
	}
	if logger == nil {
		logger = NoOp()
	}
	return WithFields(logger, map[string]any{"module": module})
}

func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

func I18NLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, i18nModule)
}

func WatchLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, watchModule)
}

// WithUnitContext tags logger with the page, language and output of one
// build unit, skipping blank values.
func WithUnitContext(logger interfaces.Logger, page, language, output string) interfaces.Logger {
	fields := make(map[string]any, 3)
	for key, value := range map[string]string{"page": page, "language": language, "output": output} {
		if value = strings.TrimSpace(value); value != "" {
			fields[key] = value
		}
	}
	return WithFields(logger, fields)
}

// NoOp discards everything.
func NoOp() interfaces.Logger { return discard{} }

type discard struct{}

var _ interfaces.FieldsLogger = discard{}

func (discard) Trace(string, ...any)                            {}
func (discard) Debug(string, ...any)                            {}
func (discard) Info(string, ...any)                             {}
func (discard) Warn(string, ...any)                             {}
func (discard) Error(string, ...any)                            {}
func (discard) Fatal(string, ...any)                            {}
func (d discard) WithFields(map[string]any) interfaces.Logger   { return d }
func (d discard) WithContext(context.Context) interfaces.Logger { return d }
