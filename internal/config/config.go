package config

import "time"

// Default configuration values.
const (
	defaultServiceName     = "brandquery"
	defaultServiceVersion  = "1.0.0"
	defaultServicePort     = 8070
	defaultCatalogPath     = "rules.csv"
	defaultReloadInterval  = 5 * time.Minute
	defaultQueueCapacity   = 10000
	defaultBatchSize       = 10
	defaultBatchInterval   = 60 * time.Second
	defaultStoreDriver     = "sqlite"
	defaultSQLitePath      = "brandquery.db"
	defaultDBSSLMode       = "disable"
	defaultDBMaxConns      = 25
	defaultDBMaxIdleConns  = 5
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
)

// Config holds all configuration for the classification service.
type Config struct {
	Service Service `yaml:"service"`
	Query   Query   `yaml:"query"`
	Ingest  Ingest  `yaml:"ingest"`
	Store   Store   `yaml:"store"`
	Logging Logging `yaml:"logging"`
}

// Service holds service-level configuration.
type Service struct {
	Name    string `                  yaml:"name"`
	Version string `                  yaml:"version"`
	Port    int    `env:"SERVICE_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"     yaml:"debug"`
}

// Query holds rule catalog configuration (component F).
type Query struct {
	CatalogPath    string        `env:"CATALOG_PATH"     yaml:"catalog_path"`
	ReloadInterval time.Duration `env:"CATALOG_RELOAD"   yaml:"reload_interval"`
}

// Ingest holds webhook queue and batch drain configuration (component N).
type Ingest struct {
	QueueCapacity int           `env:"INGEST_QUEUE_CAPACITY" yaml:"queue_capacity"`
	BatchSize     int           `env:"INGEST_BATCH_SIZE"     yaml:"batch_size"`
	BatchInterval time.Duration `env:"INGEST_BATCH_INTERVAL" yaml:"batch_interval"`
}

// Store holds durable document store configuration (component J).
type Store struct {
	Driver          string        `env:"STORE_DRIVER"           yaml:"driver"` // "sqlite" or "postgres"
	SQLitePath      string        `env:"SQLITE_PATH"            yaml:"sqlite_path"`
	Host            string        `env:"POSTGRES_HOST"          yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"          yaml:"port"`
	User            string        `env:"POSTGRES_USER"          yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD"      yaml:"password"` //nolint:gosec // config field, not a literal secret
	Database        string        `env:"POSTGRES_DB"            yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"       yaml:"sslmode"`
	MaxConnections  int           `                             yaml:"max_connections"`
	MaxIdleConns    int           `                             yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `                             yaml:"connection_max_lifetime"`

	ElasticsearchURL string `env:"ELASTICSEARCH_URL" yaml:"elasticsearch_url"` // optional processed-record mirror
	ElasticsearchIdx string `env:"ELASTICSEARCH_INDEX" yaml:"elasticsearch_index"`
}

// Logging holds logging configuration.
type Logging struct {
	Level  string `env:"LOG_LEVEL"  yaml:"level"`
	Format string `env:"LOG_FORMAT" yaml:"format"`
}

// LoadDefault loads configuration from path, applying service defaults.
func LoadDefault(path string) (*Config, error) {
	return Load(path, setDefaults)
}

func setDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = defaultServiceName
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = defaultServiceVersion
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = defaultServicePort
	}
	if cfg.Query.CatalogPath == "" {
		cfg.Query.CatalogPath = defaultCatalogPath
	}
	if cfg.Query.ReloadInterval == 0 {
		cfg.Query.ReloadInterval = defaultReloadInterval
	}
	if cfg.Ingest.QueueCapacity == 0 {
		cfg.Ingest.QueueCapacity = defaultQueueCapacity
	}
	if cfg.Ingest.BatchSize == 0 {
		cfg.Ingest.BatchSize = defaultBatchSize
	}
	if cfg.Ingest.BatchInterval == 0 {
		cfg.Ingest.BatchInterval = defaultBatchInterval
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = defaultStoreDriver
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = defaultSQLitePath
	}
	if cfg.Store.SSLMode == "" {
		cfg.Store.SSLMode = defaultDBSSLMode
	}
	if cfg.Store.MaxConnections == 0 {
		cfg.Store.MaxConnections = defaultDBMaxConns
	}
	if cfg.Store.MaxIdleConns == 0 {
		cfg.Store.MaxIdleConns = defaultDBMaxIdleConns
	}
	if cfg.Store.ConnMaxLifetime == 0 {
		cfg.Store.ConnMaxLifetime = time.Hour
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultLogFormat
	}
}
