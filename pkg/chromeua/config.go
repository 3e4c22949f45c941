package chromeua

// Config holds environment-driven settings. Load it with config.Load and the
// "CHROMEUA_" prefix.
type Config struct {
	DataFile  string `env:"DATA_FILE"`                   // DataFile is an optional YAML or JSON registry file applied at startup.
	Watch     bool   `env:"WATCH" envDefault:"false"`     // Watch reloads DataFile whenever it changes.
	CacheSize int    `env:"CACHE_SIZE" envDefault:"1024"` // CacheSize bounds the header cache; zero keeps DefaultCacheSize, negative is unbounded.
}

// NewFromConfig creates a ChromeUA and applies cfg.DataFile if set.
// Only non-zero fields are applied. Watching is left to the caller, see
// NewWatcher.
func NewFromConfig(cfg Config, opts ...Option) (*ChromeUA, error) {
	configOpts := make([]Option, 0, 1+len(opts))
	if cfg.CacheSize != 0 {
		configOpts = append(configOpts, WithCacheSize(cfg.CacheSize))
	}

	// Append any additional options provided
	configOpts = append(configOpts, opts...)

	ua := New(configOpts...)
	if cfg.DataFile != "" {
		if err := ua.UpdateFromFile(cfg.DataFile); err != nil {
			return nil, err
		}
	}
	return ua, nil
}
