package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR" default:":8080"`
	BaseURL    string `envconfig:"BASE_URL" default:"http://localhost:8080"`

	// Client-state database (profiles, sessions, carts). Orders live in the
	// external store and are never persisted here.
	DBPath string `envconfig:"DB_PATH" default:"cafe.db"`

	OrderStoreURL string `envconfig:"ORDER_STORE_URL" default:"https://server-cafe-ifpb.onrender.com/api"`
	PaymentURL    string `envconfig:"PAYMENT_URL" default:"https://payment-microservices-c54u.onrender.com"`

	// PaymentInstrument goes out as payment_method on the initiation request.
	PaymentInstrument string `envconfig:"PAYMENT_INSTRUMENT" default:"pix"`

	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"6s"`
	PollLifetime time.Duration `envconfig:"POLL_LIFETIME" default:"120s"`

	NotificationTTL time.Duration `envconfig:"NOTIFICATION_TTL" default:"3s"`

	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"15s"`

	SessionCookie string        `envconfig:"SESSION_COOKIE" default:"cafe_session"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	CookieSecure  bool          `envconfig:"COOKIE_SECURE" default:"false"`

	// Menu image storage: local disk by default, s3 in production.
	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"local"`
	UploadDir     string `envconfig:"LOCAL_UPLOAD_DIR" default:"./storage/uploads"`
	UploadURLBase string `envconfig:"LOCAL_UPLOAD_URL_PREFIX" default:"/uploads"`
	S3Region      string `envconfig:"S3_REGION"`
	S3Bucket      string `envconfig:"S3_BUCKET"`
	S3Prefix      string `envconfig:"S3_PREFIX" default:"uploads"`
	S3PublicBase  string `envconfig:"S3_PUBLIC_BASE_URL"`
}

func Load() (*Config, error) {
	// .env is optional; production uses real env vars.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.OrderStoreURL == "" {
		return fmt.Errorf("ORDER_STORE_URL is required")
	}
	if c.PaymentURL == "" {
		return fmt.Errorf("PAYMENT_URL is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}
	if c.PollLifetime < c.PollInterval {
		return fmt.Errorf("POLL_LIFETIME must be at least POLL_INTERVAL")
	}
	return nil
}
