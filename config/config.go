package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Burgess-GLAY/psdahs-alumni-sub003/internal/payments"
	"github.com/Burgess-GLAY/psdahs-alumni-sub003/models"
)

// Settings is the application configuration, loaded from an optional YAML
// file and overridden by environment variables. Provider credentials are
// env-only and never appear in the file.
type Settings struct {
	Port          string            `yaml:"port"`
	PublicBaseURL string            `yaml:"publicBaseUrl"`
	Currency      string            `yaml:"currency"`
	// Fees maps a payment method to a processing-fee formula evaluated
	// with an "amount" parameter, e.g. "amount * 0.029 + 0.30".
	Fees map[string]string `yaml:"fees"`
}

var (
	App    Settings
	JwtKey []byte
	Fees   *payments.FeeTable
)

func defaultSettings() Settings {
	return Settings{
		Port:          "8080",
		PublicBaseURL: "http://localhost:8080",
		Currency:      "USD",
		Fees: map[string]string{
			string(models.MethodCard):               "amount * 0.029 + 0.30",
			string(models.MethodPayPal):             "amount * 0.0349 + 0.49",
			string(models.MethodLiberiaMobileMoney): "amount * 0.015",
			string(models.MethodOrangeMoney):        "amount * 0.015",
		},
	}
}

// Load populates App from the given YAML file (if it exists) and the
// environment, and compiles the fee table. Call before any Connect*.
func Load(path string) error {
	App = defaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &App); err != nil {
				return fmt.Errorf("parse config %s: %w", path, err)
			}
			slog.Info("Configuration file loaded", "path", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		App.Port = v
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		App.PublicBaseURL = v
	}
	if v := os.Getenv("CURRENCY"); v != "" {
		App.Currency = v
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET environment variable is not set")
		os.Exit(1)
	}
	JwtKey = []byte(secret)

	fees, err := payments.NewFeeTable(App.Fees)
	if err != nil {
		return fmt.Errorf("compile fee formulas: %w", err)
	}
	Fees = fees

	return nil
}
