package config

import (
	"log"

	"github.com/spf13/viper"
)

type AlertsConfig struct {
	ShiftHorizonDays    int  `mapstructure:"shift_horizon_days"`
	DocumentHorizonDays int  `mapstructure:"document_horizon_days"`
	TrainingHorizonDays int  `mapstructure:"training_horizon_days"`
	PartialResults      bool `mapstructure:"partial_results"`
}

type EmailConfig struct {
	From            string   `mapstructure:"from"`
	SMTPHost        string   `mapstructure:"smtp_host"`
	SMTPPort        int      `mapstructure:"smtp_port"`
	Username        string   `mapstructure:"username"`
	Password        string   `mapstructure:"password"`
	AlertRecipients []string `mapstructure:"alert_recipients"`
}

type Config struct {
	DatabaseURL    string       `mapstructure:"database_url"`
	ServerPort     string       `mapstructure:"server_port"`
	JWTSecret      string       `mapstructure:"jwt_secret"`
	AllowedOrigins []string     `mapstructure:"allowed_origins"`
	Alerts         AlertsConfig `mapstructure:"alerts"`
	Email          EmailConfig  `mapstructure:"email"`
}

// Load reads the configuration from a YAML file and returns a Config instance.
func Load() *Config {
	v := viper.New()

	// Look for config in the current directory and ./config
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("Error unmarshalling config: %v", err)
	}

	// Fallback defaults
	if config.ServerPort == "" {
		config.ServerPort = "8080"
	}

	if config.DatabaseURL == "" {
		log.Fatal("Database URL must be set in the config file")
	}
	if config.JWTSecret == "" {
		log.Fatal("JWT secret must be set in the config file")
	}

	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if config.Alerts.ShiftHorizonDays <= 0 {
		config.Alerts.ShiftHorizonDays = 7
	}
	if config.Alerts.DocumentHorizonDays <= 0 {
		config.Alerts.DocumentHorizonDays = 30
	}
	if config.Alerts.TrainingHorizonDays <= 0 {
		config.Alerts.TrainingHorizonDays = 60
	}

	if config.Email.SMTPPort == 0 {
		config.Email.SMTPPort = 587
	}

	return &config
}
