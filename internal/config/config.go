// Package config builds the process configuration once at startup.
// Handlers receive the resulting struct explicitly; nothing reads the
// environment after construction.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Tripay holds the payment-gateway settings. APIKey, MerchantCode and
// PrivateKey are deployment secrets.
type Tripay struct {
	APIKey        string
	MerchantCode  string
	PrivateKey    string
	BaseURL       string
	DefaultMethod string
	CallbackURL   string
	ReturnURLBase string
}

// OpenAI holds the completion-API settings.
type OpenAI struct {
	APIKey  string
	BaseURL string
}

// Quota holds the chat-demo quota settings.
type Quota struct {
	SigningSecret string
	MaxMessages   int
	Window        time.Duration
}

// Config is the full process configuration.
type Config struct {
	Addr          string
	DBPath        string
	CatalogSeed   string // optional JSON file used to seed an empty catalog
	AdminPassword string
	Tripay        Tripay
	OpenAI        OpenAI
	Quota         Quota
}

// FromEnv reads the process environment and returns a validated Config.
// Every missing required variable is reported in a single error so an
// operator can fix the deployment in one pass.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:          envOr("ADDR", ":8080"),
		DBPath:        envOr("DB_PATH", "storefront.db"),
		CatalogSeed:   os.Getenv("CATALOG_SEED"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		Tripay: Tripay{
			APIKey:        os.Getenv("TRIPAY_API_KEY"),
			MerchantCode:  os.Getenv("TRIPAY_MERCHANT_CODE"),
			PrivateKey:    os.Getenv("TRIPAY_PRIVATE_KEY"),
			BaseURL:       envOr("TRIPAY_API_BASE", "https://tripay.co.id/api-sandbox"),
			DefaultMethod: envOr("TRIPAY_DEFAULT_METHOD", "QRIS"),
			CallbackURL:   envOr("TRIPAY_CALLBACK_URL", "http://localhost:3000/api/tripay/callback"),
			ReturnURLBase: envOr("TRIPAY_RETURN_URL", "http://localhost:3000/status"),
		},
		OpenAI: OpenAI{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: envOr("OPENAI_API_BASE", "https://api.openai.com/v1"),
		},
		Quota: Quota{
			SigningSecret: os.Getenv("DEMO_COOKIE_SECRET"),
			MaxMessages:   5,
			Window:        time.Hour,
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every required field that is unset. Absence of a
// secret fails construction here instead of surfacing mid-request.
func (c Config) Validate() error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"TRIPAY_API_KEY", c.Tripay.APIKey},
		{"TRIPAY_MERCHANT_CODE", c.Tripay.MerchantCode},
		{"TRIPAY_PRIVATE_KEY", c.Tripay.PrivateKey},
		{"OPENAI_API_KEY", c.OpenAI.APIKey},
		{"ADMIN_PASSWORD", c.AdminPassword},
		{"DEMO_COOKIE_SECRET", c.Quota.SigningSecret},
	}
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
