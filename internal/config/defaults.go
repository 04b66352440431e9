package config

const (
	defaultConfigPath   = "~/.config/photorganiser/config.toml"
	projectConfigName   = "photorganiser.toml"
	defaultAuditLog     = "photOrganiser.log"
	defaultJournalDB    = "~/.local/share/photorganiser/journal.db"
	defaultExiv2Binary  = "exiv2"
	defaultFallbackDir  = "unorganised"
	defaultReportFormat = "json"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	exiv2EnvVar         = "PHOTORGANISER_EXIV2"
)

func defaultExtensions() []string {
	return []string{"jpg", "jpeg", "tif", "tiff", "png"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			AuditLog:  defaultAuditLog,
			JournalDB: defaultJournalDB,
		},
		Organize: Organize{
			Extensions:   defaultExtensions(),
			FallbackDir:  defaultFallbackDir,
			ReportFormat: defaultReportFormat,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
