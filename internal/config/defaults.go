package config

const (
	defaultAssetsDir       = "~/.local/share/galley/assets"
	defaultPublicDir       = "~/.local/share/galley/public"
	defaultDataDir         = "~/.local/share/galley/data"
	defaultLogDir          = "~/.local/share/galley/logs"
	defaultPublicBasePath  = "/assets"
	defaultAPIBasePath     = "/api/assets"
	defaultMaxSlugAttempts = 25
	defaultNotifyTimeout   = 10
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

// Default returns a Config populated with repository defaults.
//
// UploadsDir and ManifestPath default to locations inside AssetsDir; the
// empty values here are filled in during normalization so user overrides of
// assets_dir cascade correctly.
func Default() Config {
	return Config{
		Paths: Paths{
			AssetsDir: defaultAssetsDir,
			PublicDir: defaultPublicDir,
			DataDir:   defaultDataDir,
			LogDir:    defaultLogDir,
		},
		Serving: Serving{
			PublicBasePath: defaultPublicBasePath,
			APIBasePath:    defaultAPIBasePath,
		},
		Imports: Imports{
			Reports:         true,
			Marketing:       true,
			Covers:          true,
			LandingPages:    true,
			MaxSlugAttempts: defaultMaxSlugAttempts,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Imports:        true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
