package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration, loaded once at startup.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	ServerPort  string `mapstructure:"SERVER_PORT"`

	// Database
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`

	// Emotion classification provider (any OpenAI-compatible endpoint)
	ClassifierAPIKey         string `mapstructure:"CLASSIFIER_API_KEY"`
	ClassifierAPIEndpoint    string `mapstructure:"CLASSIFIER_API_ENDPOINT"`
	ClassifierModel          string `mapstructure:"CLASSIFIER_MODEL"`
	ClassifierTimeoutSeconds int    `mapstructure:"CLASSIFIER_TIMEOUT_SECONDS"`

	// JWT
	JWTSecret string `mapstructure:"JWT_SECRET"`
}

// LoadConfig reads configuration from a .env file or the environment.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CLASSIFIER_MODEL", "gpt-4o-mini")
	viper.SetDefault("CLASSIFIER_TIMEOUT_SECONDS", 4)

	err = viper.ReadInConfig()
	if err != nil {
		// The config file is optional, environment variables still apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	return
}

// GetDBConnString returns the postgres DSN.
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName)
}
