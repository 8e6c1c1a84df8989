package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName   string
	HTTPPort      string
	PostgresDSN   string
	ElectionStore string
	AdminUserIDs  []string
	LogJSON       bool

	// Pool sizing for the postgres store. Zero means the db package default.
	PostgresMaxOpenConns    int
	PostgresMaxIdleConns    int
	PostgresConnMaxLifetime time.Duration

	// SweepInterval paces the worker that unlinks voters from closed elections.
	SweepInterval time.Duration
}

// Load reads the process environment. A .env file in the working directory
// is applied first; variables already set in the environment win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "elect"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	store := strings.ToLower(strings.TrimSpace(os.Getenv("ELECTION_STORE")))
	if store == "" {
		store = StoreMemory
		if dsn != "" {
			store = StorePostgres
		}
	}
	switch store {
	case StoreMemory:
	case StorePostgres:
		if dsn == "" {
			return Config{}, errors.New("POSTGRES_DSN is required when ELECTION_STORE=postgres")
		}
	default:
		return Config{}, fmt.Errorf("unsupported ELECTION_STORE %q", store)
	}

	interval := time.Hour
	if raw := strings.TrimSpace(os.Getenv("DISASSOCIATE_SWEEP_INTERVAL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			return Config{}, fmt.Errorf("invalid DISASSOCIATE_SWEEP_INTERVAL %q", raw)
		}
		interval = parsed
	}

	maxOpen, err := envInt("POSTGRES_MAX_OPEN_CONNS")
	if err != nil {
		return Config{}, err
	}
	maxIdle, err := envInt("POSTGRES_MAX_IDLE_CONNS")
	if err != nil {
		return Config{}, err
	}
	var lifetime time.Duration
	if raw := strings.TrimSpace(os.Getenv("POSTGRES_CONN_MAX_LIFETIME")); raw != "" {
		lifetime, err = time.ParseDuration(raw)
		if err != nil || lifetime < 0 {
			return Config{}, fmt.Errorf("invalid POSTGRES_CONN_MAX_LIFETIME %q", raw)
		}
	}

	return Config{
		ServiceName:             service,
		HTTPPort:                port,
		PostgresDSN:             dsn,
		ElectionStore:           store,
		AdminUserIDs:            envList("ELECTION_ADMIN_IDS"),
		LogJSON:                 envBool("LOG_JSON", false),
		PostgresMaxOpenConns:    maxOpen,
		PostgresMaxIdleConns:    maxIdle,
		PostgresConnMaxLifetime: lifetime,
		SweepInterval:           interval,
	}, nil
}

func envInt(name string) (int, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return value, nil
}

func envList(name string) []string {
	var values []string
	for _, value := range strings.Split(os.Getenv(name), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			values = append(values, value)
		}
	}
	return values
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
