// Package config handles loading of process settings and of load plan
// files, such as configs/ctd_gene_disease_plan.json.
package config

import (
	"errors"
	"os"
	"strings"
)

const defaultMongoDatabase = "loadplan"

// Config holds all configuration for the application,
// typically loaded from environment variables.
type Config struct {
	SQLConnString   string
	MongoConnString string
	MongoDatabase   string
	LogFile         string
	Debug           bool
}

// LoadConfig loads application settings from environment variables
// (which should be populated by the .env file in main.go). Connection
// strings are optional here; commands that need one call RequireSQL or
// RequireMongo.
func LoadConfig() *Config {
	cfg := &Config{
		SQLConnString:   os.Getenv("SQL_CONNECTION_STRING"),
		MongoConnString: os.Getenv("MONGO_CONNECTION_STRING"),
		MongoDatabase:   os.Getenv("MONGO_DATABASE"),
		LogFile:         os.Getenv("LOG_FILE"),
		Debug:           strings.EqualFold(os.Getenv("LOG_LEVEL"), "debug"),
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = defaultMongoDatabase
	}
	return cfg
}

func (c *Config) RequireSQL() error {
	if c.SQLConnString == "" {
		return errors.New("SQL_CONNECTION_STRING environment variable not set")
	}
	return nil
}

func (c *Config) RequireMongo() error {
	if c.MongoConnString == "" {
		return errors.New("MONGO_CONNECTION_STRING environment variable not set")
	}
	return nil
}
