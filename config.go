package seogen

import "github.com/goliatone/go-seogen/internal/runtimeconfig"

var (
	ErrConfigInvalid                = runtimeconfig.ErrConfigInvalid
	ErrDefaultLanguageNotConfigured = runtimeconfig.ErrDefaultLanguageNotConfigured
	ErrDuplicateLanguage            = runtimeconfig.ErrDuplicateLanguage
	ErrDuplicatePage                = runtimeconfig.ErrDuplicatePage
	ErrMultipleHomePages            = runtimeconfig.ErrMultipleHomePages
	ErrLoggingProviderRequired      = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown       = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid          = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid         = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	SiteConfig      = runtimeconfig.SiteConfig
	I18NConfig      = runtimeconfig.I18NConfig
	LanguageConfig  = runtimeconfig.LanguageConfig
	PageConfig      = runtimeconfig.PageConfig
	TextKeyConfig   = runtimeconfig.TextKeyConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	CommandsConfig  = runtimeconfig.CommandsConfig
	WatchConfig     = runtimeconfig.WatchConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
	LoadOptions     = runtimeconfig.LoadOptions
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig layers the YAML file, dotenv file and SEOGEN_ environment over DefaultConfig.
func LoadConfig(opts LoadOptions) (Config, error) {
	return runtimeconfig.Load(opts)
}
