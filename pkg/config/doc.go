// Package config loads typed configuration structs from the environment.
//
// Load parses `env` struct tags via github.com/caarlos0/env, after loading a
// local .env file through github.com/joho/godotenv when present. Results are
// cached per struct type for the lifetime of the process, so every component
// asking for the same config sees the same values. MustLoad panics on
// failure and is meant for startup-critical configuration.
package config
