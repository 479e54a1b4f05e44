package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	JWT        JWTConfig
	Auth       AuthConfig
	ResultsAPI ResultsAPIConfig
	LogLevel   string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// AuthConfig holds the injected authorization configuration. AdminEmails
// is the admin allow-list; it is read once at construction and never
// mutated at runtime.
type AuthConfig struct {
	AdminEmails []string
}

// ResultsAPIConfig holds the upstream results source configuration.
// RequiredGames is the per-source list of game names that may reach
// presentation; anything else is dropped by the game service.
type ResultsAPIConfig struct {
	BaseURL       string
	APIKey        string
	MockAPI       bool
	RequiredGames []string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}
	applyEnvOverrides(&config)

	return &config, nil
}

// applyEnvOverrides lets deployment environment variables win over the
// config file. Slice values are comma-separated.
func applyEnvOverrides(config *Config) {
	config.Server.Port = GetEnv("PORT", config.Server.Port)
	config.Server.AllowedHosts = GetEnvAsSlice("ALLOWED_HOSTS", ",", config.Server.AllowedHosts)
	config.MongoDB.URI = GetEnv("MONGODB_URI", config.MongoDB.URI)
	config.MongoDB.Database = GetEnv("MONGODB_DATABASE", config.MongoDB.Database)
	config.JWT.Secret = GetEnv("JWT_SECRET", config.JWT.Secret)
	config.JWT.ExpiresIn = GetEnvAsInt("JWT_EXPIRES_IN", config.JWT.ExpiresIn)
	config.Auth.AdminEmails = GetEnvAsSlice("ADMIN_EMAILS", ",", config.Auth.AdminEmails)
	config.ResultsAPI.BaseURL = GetEnv("RESULTS_API_URL", config.ResultsAPI.BaseURL)
	config.ResultsAPI.APIKey = GetEnv("RESULTS_API_KEY", config.ResultsAPI.APIKey)
	config.ResultsAPI.MockAPI = GetEnvAsBool("RESULTS_API_MOCK", config.ResultsAPI.MockAPI)
	config.ResultsAPI.RequiredGames = GetEnvAsSlice("REQUIRED_GAMES", ",", config.ResultsAPI.RequiredGames)
	config.LogLevel = GetEnv("LOG_LEVEL", config.LogLevel)
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "island-results")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Auth.AdminEmails", []string{})
	viper.SetDefault("ResultsAPI.MockAPI", true)
	viper.SetDefault("ResultsAPI.RequiredGames", []string{
		"Lotto", "Super 6", "3D", "Play 4", "Big 4", "Pick 2",
	})
}
