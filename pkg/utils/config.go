package utils

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// insecureDevSecret is only used when JWT_SECRET is absent. main logs a
// loud warning whenever this fallback is active.
const insecureDevSecret = "default_secret_for_dev_only_do_not_use_in_prod"

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	OTP      OTPConfig
}

type AppConfig struct {
	Name       string
	Port       string
	Debug      bool
	Production bool
	LogPath    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
	// InsecureDefault is true when no secret was configured and the
	// development fallback is in effect.
	InsecureDefault bool
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	TLSMode  string
}

type OTPConfig struct {
	ExpiryMinutes int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "complaint-desk")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("PRODUCTION", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_EXPIRY_HOURS", 2)
	viper.SetDefault("OTP_EXPIRY_MINUTES", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_TLS_MODE", "starttls")

	if err := viper.ReadInConfig(); err != nil {
		// A missing .env is fine, the environment still applies
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	secret := viper.GetString("JWT_SECRET")
	insecureDefault := secret == ""
	if insecureDefault {
		secret = insecureDevSecret
	}

	config := &Config{
		App: AppConfig{
			Name:       viper.GetString("APP_NAME"),
			Port:       viper.GetString("PORT"),
			Debug:      viper.GetBool("DEBUG"),
			Production: viper.GetBool("PRODUCTION"),
			LogPath:    viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:          secret,
			ExpiryHours:     viper.GetInt("JWT_EXPIRY_HOURS"),
			InsecureDefault: insecureDefault,
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("EMAIL_USER"),
			Password: viper.GetString("EMAIL_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
			TLSMode:  viper.GetString("SMTP_TLS_MODE"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: viper.GetInt("OTP_EXPIRY_MINUTES"),
		},
	}

	return config, nil
}
