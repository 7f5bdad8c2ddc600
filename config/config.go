// Initializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig  `mapstructure:"server"`
	Graph  GraphConfig   `mapstructure:"graph"`
	App    AppConfig     `mapstructure:"app"`
	Kafka  KafkaConfig   `mapstructure:"kafka"`
	Brands []BrandConfig `mapstructure:"brands"`
}

type ServerConfig struct {
	AppVersion   string `mapstructure:"appVersion"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Timeout      time.Duration
	Idle_timeout time.Duration
	Env          string `mapstructure:"environment"`
	Mode         string `mapstructure:"mode"`
}

// GraphConfig holds the Microsoft Graph credentials and endpoints.
// The client secret is never stored in config.yaml; it is taken from
// the GRAPH_CLIENT_SECRET environment variable at startup.
type GraphConfig struct {
	TenantID     string `mapstructure:"tenant_id"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"-"`
	BaseURL      string `mapstructure:"base_url"`
	TokenURL     string `mapstructure:"token_url"`
}

type AppConfig struct {
	SafePaddingPx    int           `mapstructure:"safe_padding_px"`
	LogoMaxWidthPct  float64       `mapstructure:"logo_max_width_pct"`
	FileNameTemplate string        `mapstructure:"file_name_template"`
	BatchDelay       time.Duration `mapstructure:"batch_delay"`
	BatchMaxItems    int           `mapstructure:"batch_max_items"`
}

type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// BrandConfig binds a tenant name to its drive and root folder. Requests
// naming an unconfigured brand are rejected as bad requests.
type BrandConfig struct {
	Name       string `mapstructure:"name"`
	DriveID    string `mapstructure:"drive_id"`
	RootItemID string `mapstructure:"root_item_id"`
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}

	c.Graph.ClientSecret = GetEnv("GRAPH_CLIENT_SECRET", "")
	c.Graph.TenantID = GetEnv("GRAPH_TENANT_ID", c.Graph.TenantID)
	c.Graph.ClientID = GetEnv("GRAPH_CLIENT_ID", c.Graph.ClientID)

	if c.App.SafePaddingPx == 0 {
		c.App.SafePaddingPx = 64
	}
	if c.App.LogoMaxWidthPct == 0 {
		c.App.LogoMaxWidthPct = 16
	}
	if c.App.FileNameTemplate == "" {
		c.App.FileNameTemplate = "{brand}_{product}_{format}.png"
	}
	if c.App.BatchDelay == 0 {
		c.App.BatchDelay = 350 * time.Millisecond
	}

	return &c, nil
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
