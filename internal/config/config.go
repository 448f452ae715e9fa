package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database    *dbConfig
	Service     *svcConfig
	ObjectStore *objectStoreConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"borelog"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string `envconfig:"BORELOG_REGISTRY_ADDRESS" default:":3443"`
	MetricsAddress string `envconfig:"BORELOG_REGISTRY_METRICS_ADDRESS" default:":8080"`
	BaseUrl        string `envconfig:"BORELOG_REGISTRY_BASE_URL" default:"https://localhost:3443"`
	LogLevel       string `envconfig:"BORELOG_REGISTRY_LOG_LEVEL" default:"info"`
}

type objectStoreConfig struct {
	Endpoint  string `envconfig:"BORELOG_REGISTRY_S3_ENDPOINT" default:"localhost:9000"`
	Bucket    string `envconfig:"BORELOG_REGISTRY_S3_BUCKET" default:"borelogs"`
	AccessKey string `envconfig:"BORELOG_REGISTRY_S3_ACCESS_KEY" default:""`
	SecretKey string `envconfig:"BORELOG_REGISTRY_S3_SECRET_KEY" default:""`
	UseSSL    bool   `envconfig:"BORELOG_REGISTRY_S3_USE_SSL" default:"false"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault builds a configuration without reading the environment. Tests use it
// with the sqlite dialector.
func NewDefault() *Config {
	return &Config{
		Database:    &dbConfig{Type: "sqlite", Name: ":memory:"},
		Service:     &svcConfig{Address: ":3443", MetricsAddress: ":8080", LogLevel: "info"},
		ObjectStore: &objectStoreConfig{Bucket: "borelogs"},
	}
}
