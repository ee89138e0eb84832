package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Shipping ShippingConfig
	Payment  PaymentConfig
	Media    MediaConfig
	Events   EventsConfig
	Assisted AssistedConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	DraftTTL time.Duration
}

type ShippingConfig struct {
	BaseURL  string
	User     string
	Password string
	Contract string
	Timeout  time.Duration
}

type PaymentConfig struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

type MediaConfig struct {
	UploadURL      string
	MaxUploadBytes int64
	Timeout        time.Duration
}

// EventsConfig is optional: with no brokers configured the service runs
// with a no-op publisher.
type EventsConfig struct {
	Brokers []string
	Topic   string
}

// AssistedConfig drives the human-in-the-loop checkout channel.
type AssistedConfig struct {
	WhatsAppNumber string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", 3306)
	viper.SetDefault("DB_USER", "mimo")
	viper.SetDefault("DB_PASSWORD", "secret")
	viper.SetDefault("DB_NAME", "mimo")
	viper.SetDefault("DB_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DB_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DRAFT_TTL", "24h")
	viper.SetDefault("SHIPPING_BASE_URL", "https://api.correios.com.br")
	viper.SetDefault("SHIPPING_USER", "")
	viper.SetDefault("SHIPPING_PASSWORD", "")
	viper.SetDefault("SHIPPING_CONTRACT", "9912726956")
	viper.SetDefault("SHIPPING_TIMEOUT", "10s")
	viper.SetDefault("PAYMENT_BASE_URL", "https://api.mercadopago.com")
	viper.SetDefault("PAYMENT_ACCESS_TOKEN", "")
	viper.SetDefault("PAYMENT_TIMEOUT", "10s")
	viper.SetDefault("MEDIA_UPLOAD_URL", "")
	viper.SetDefault("MEDIA_MAX_UPLOAD_BYTES", 25<<20)
	viper.SetDefault("MEDIA_TIMEOUT", "30s")
	viper.SetDefault("EVENTS_BROKERS", []string{})
	viper.SetDefault("EVENTS_TOPIC", "mimo.orders")
	viper.SetDefault("ASSISTED_WHATSAPP_NUMBER", "5567992236484")
	viper.SetDefault("LOG_LEVEL", "info")

	connMaxLifetime, err := time.ParseDuration(viper.GetString("DB_CONN_MAX_LIFETIME"))
	if err != nil {
		return nil, err
	}
	draftTTL, err := time.ParseDuration(viper.GetString("REDIS_DRAFT_TTL"))
	if err != nil {
		return nil, err
	}
	shippingTimeout, err := time.ParseDuration(viper.GetString("SHIPPING_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	paymentTimeout, err := time.ParseDuration(viper.GetString("PAYMENT_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	mediaTimeout, err := time.ParseDuration(viper.GetString("MEDIA_TIMEOUT"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: viper.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			Name:            viper.GetString("DB_NAME"),
			MaxOpenConns:    viper.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: connMaxLifetime,
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			DraftTTL: draftTTL,
		},
		Shipping: ShippingConfig{
			BaseURL:  viper.GetString("SHIPPING_BASE_URL"),
			User:     viper.GetString("SHIPPING_USER"),
			Password: viper.GetString("SHIPPING_PASSWORD"),
			Contract: viper.GetString("SHIPPING_CONTRACT"),
			Timeout:  shippingTimeout,
		},
		Payment: PaymentConfig{
			BaseURL:     viper.GetString("PAYMENT_BASE_URL"),
			AccessToken: viper.GetString("PAYMENT_ACCESS_TOKEN"),
			Timeout:     paymentTimeout,
		},
		Media: MediaConfig{
			UploadURL:      viper.GetString("MEDIA_UPLOAD_URL"),
			MaxUploadBytes: viper.GetInt64("MEDIA_MAX_UPLOAD_BYTES"),
			Timeout:        mediaTimeout,
		},
		Events: EventsConfig{
			Brokers: viper.GetStringSlice("EVENTS_BROKERS"),
			Topic:   viper.GetString("EVENTS_TOPIC"),
		},
		Assisted: AssistedConfig{
			WhatsAppNumber: viper.GetString("ASSISTED_WHATSAPP_NUMBER"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	return cfg, nil
}
