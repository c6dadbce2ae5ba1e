// Package config loads runtime settings for the graph store and the model
// client from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Defaults for the graph store connection. The URI and user may be
// overridden through the environment; the password must always come from
// it and is never hardcoded.
const (
	DefaultNeo4jURI  = "bolt://localhost:7687"
	DefaultNeo4jUser = "neo4j"
)

// Config carries the externally supplied settings for one run.
type Config struct {
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	GeminiModel   string
}

// Load reads a .env file when present, then the process environment.
// A missing .env is not an error.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Neo4jURI:      envOrDefault("NEO4J_URI", DefaultNeo4jURI),
		Neo4jUser:     envOrDefault("NEO4J_USER", DefaultNeo4jUser),
		Neo4jPassword: os.Getenv("NEO4J_PASSWORD"),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
	}
	if cfg.Neo4jPassword == "" {
		// Legacy variable name kept for existing deployments.
		cfg.Neo4jPassword = os.Getenv("DATABASE_PWD")
	}
	return cfg
}

// ValidateGraphStore reports whether the config is usable for graph writes.
func (c Config) ValidateGraphStore() error {
	if c.Neo4jPassword == "" {
		return fmt.Errorf("graph store password missing: set NEO4J_PASSWORD (or DATABASE_PWD)")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
