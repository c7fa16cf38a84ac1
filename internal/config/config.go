package config

// Environment values accepted by DODO_PAYMENTS_ENVIRONMENT.
const (
	LiveMode = "live_mode"
	TestMode = "test_mode"
)

type Config struct {
	Log  Log
	HTTP HTTPServer

	// Optional sqlite path for the persistent entitlement store.
	// Empty means entitlements live in process memory only.
	DatabaseURL string `env:"DATABASE_URL"`

	Dodo Dodo `envPrefix:"DODO_PAYMENTS_"`
}

type Dodo struct {
	APIKey           string `env:"API_KEY"`
	Environment      string `env:"ENVIRONMENT" envDefault:"test_mode"`
	ReturnURL        string `env:"RETURN_URL"`
	WebhookKey       string `env:"WEBHOOK_KEY"`
	DefaultProductID string `env:"DEFAULT_PRODUCT_ID" envDefault:"pdt_Wi9yels9t5RHrfN4BjxNw"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"PORT" envDefault:"3000"`
}
