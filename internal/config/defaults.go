package config

const (
	defaultDataDir            = "~/.local/share/md5tap"
	defaultLogDir             = "~/.local/share/md5tap/logs"
	defaultAlgorithm          = "md5"
	defaultChunkSize          = 64 * 1024
	defaultLogLevel           = "info"
	defaultHistoryEnabled     = true
	defaultRetentionDays      = 30
	defaultWatchSettleSeconds = 2
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Observer: Observer{
			Algorithm: defaultAlgorithm,
			ChunkSize: defaultChunkSize,
			Verbose:   false,
		},
		Logging: Logging{
			Level: defaultLogLevel,
			// Format is left empty so logging.DefaultFormat can pick
			// console or JSON based on the terminal.
		},
		History: History{
			Enabled:       defaultHistoryEnabled,
			RetentionDays: defaultRetentionDays,
		},
		Watch: Watch{
			SettleSeconds: defaultWatchSettleSeconds,
		},
	}
}
