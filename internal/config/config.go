package config

import "time"

// Config is the root application configuration.
type Config struct {
	WordFile string         `yaml:"word_file" env:"FIVEWORDS_WORD_FILE"`
	Search   SearchConfig   `yaml:"search"`
	Output   OutputConfig   `yaml:"output"`
	Store    StoreConfig    `yaml:"store"`
	Database DatabaseConfig `yaml:"database"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
}

// SearchConfig holds word eligibility and engine settings.
type SearchConfig struct {
	AllowDuplicateLetters bool          `yaml:"allow_duplicate_letters" env:"SEARCH_ALLOW_DUPLICATE_LETTERS" env-default:"false"`
	Incremental           bool          `yaml:"incremental"             env:"SEARCH_INCREMENTAL"             env-default:"false"`
	Workers               int           `yaml:"workers"                 env:"SEARCH_WORKERS"                 env-default:"0"`
	ProgressInterval      time.Duration `yaml:"progress_interval"       env:"SEARCH_PROGRESS_INTERVAL"       env-default:"10s"`
}

// OutputConfig holds result rendering settings.
type OutputConfig struct {
	Format string `yaml:"format" env:"OUTPUT_FORMAT" env-default:"list"`
}

// StoreConfig controls persisting results to PostgreSQL.
type StoreConfig struct {
	Enabled   bool `yaml:"enabled"    env:"STORE_ENABLED"    env-default:"false"`
	Migrate   bool `yaml:"migrate"    env:"STORE_MIGRATE"    env-default:"false"`
	BatchSize int  `yaml:"batch_size" env:"STORE_BATCH_SIZE" env-default:"500"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"               env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"         env:"DATABASE_MAX_CONNS"         env-default:"4"`
	MinConns        int32         `yaml:"min_conns"         env:"DATABASE_MIN_CONNS"         env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime" env:"DATABASE_MAX_CONN_LIFETIME" env-default:"1h"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout"   env:"DATABASE_CONNECT_TIMEOUT"   env-default:"10s"`
}

// MetricsConfig holds progress metrics export settings.
type MetricsConfig struct {
	// TextfilePath, when set, receives the run's counters in Prometheus text
	// format (for the node_exporter textfile collector).
	TextfilePath string `yaml:"textfile_path" env:"METRICS_TEXTFILE_PATH"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
