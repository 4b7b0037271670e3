package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from flags, environment and a dotenv file.
type Config struct {
	RunAddress         string
	PredictEndpoint    string
	DatabaseURI        string
	StrictInput        bool
	RequestTimeout     time.Duration
	SessionIdleTimeout time.Duration
	SweepInterval      time.Duration
	SweeperPoolSize    int
	ShutdownTimeout    time.Duration
	LogLevel           string
}

const (
	defaultRunAddress         = ":8080"
	defaultEnvFile            = ".env"
	defaultRequestTimeout     = 0
	defaultSessionIdleTimeout = 30 * time.Minute
	defaultSweepInterval      = time.Minute
	defaultSweeperPoolSize    = 2
	defaultShutdownTimeout    = 10 * time.Second
	defaultLogLevel           = "info"
)

// Load parses configuration from flags, environment variables and the dotenv file.
func Load() (*Config, error) {
	lookup, err := withDotenv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

// withDotenv layers values from ENV_FILE (default .env) beneath the process environment.
func withDotenv(env envLookup) (envLookup, error) {
	path := getString(env, "ENV_FILE", defaultEnvFile)
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return env, nil
		}
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := env(key); ok {
			return v, ok
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		PredictEndpoint:    getString(lookup, "PREDICT_ENDPOINT", ""),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		StrictInput:        getBool(lookup, "STRICT_INPUT", false),
		RequestTimeout:     getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		SessionIdleTimeout: getDuration(lookup, "SESSION_IDLE_TIMEOUT", defaultSessionIdleTimeout),
		SweepInterval:      getDuration(lookup, "SWEEP_INTERVAL", defaultSweepInterval),
		SweeperPoolSize:    getInt(lookup, "SWEEPER_POOL_SIZE", defaultSweeperPoolSize),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:           getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("clvpredictor", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		requestTimeoutStr  = cfg.RequestTimeout.String()
		sessionTTLStr      = cfg.SessionIdleTimeout.String()
		sweepIntervalStr   = cfg.SweepInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.PredictEndpoint, "e", cfg.PredictEndpoint, "Scoring service endpoint URL")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN for draft inputs (optional)")
	fs.BoolVar(&cfg.StrictInput, "strict", cfg.StrictInput, "Reject non-numeric input instead of sending it")
	fs.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Outbound prediction request timeout (0 disables)")
	fs.StringVar(&sessionTTLStr, "session-ttl", sessionTTLStr, "Idle time before a session is discarded")
	fs.StringVar(&sweepIntervalStr, "sweep-interval", sweepIntervalStr, "Interval between idle session sweeps")
	fs.IntVar(&cfg.SweeperPoolSize, "sweeper-pool", cfg.SweeperPoolSize, "Number of concurrent session evictions")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.SessionIdleTimeout, err = time.ParseDuration(sessionTTLStr); err != nil {
		return nil, fmt.Errorf("invalid session ttl: %w", err)
	}

	if cfg.SweepInterval, err = time.ParseDuration(sweepIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid sweep interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	// Zero keeps the transport without a deadline.
	if cfg.RequestTimeout < 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.SessionIdleTimeout <= 0 {
		cfg.SessionIdleTimeout = defaultSessionIdleTimeout
	}

	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}

	if cfg.SweeperPoolSize <= 0 {
		cfg.SweeperPoolSize = defaultSweeperPoolSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.PredictEndpoint == "" {
		return nil, fmt.Errorf("predict endpoint must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
