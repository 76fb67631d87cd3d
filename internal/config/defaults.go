package config

const (
	defaultCorporaDir    = "~/corpora"
	defaultLogDir        = "~/.local/share/subclean/logs"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultBucketWarnMiB = 512
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CorporaDir: defaultCorporaDir,
			LogDir:     defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Join: Join{
			Progress: true,
		},
		Dedup: Dedup{
			BucketWarnMiB: defaultBucketWarnMiB,
		},
	}
}
