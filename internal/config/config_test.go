package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func envFrom(env map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	_, err := load(nil, func(string) (string, bool) { return "", false })
	if err == nil {
		t.Fatalf("expected error due to missing predict endpoint, got nil")
	}

	cfg, err := load(nil, envFrom(map[string]string{
		"PREDICT_ENDPOINT": "http://scoring.local/predict",
	}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != defaultRunAddress {
		t.Errorf("expected default run address %q, got %q", defaultRunAddress, cfg.RunAddress)
	}
	if cfg.DatabaseURI != "" {
		t.Errorf("expected empty database uri, got %q", cfg.DatabaseURI)
	}
	if cfg.StrictInput {
		t.Errorf("expected permissive input by default")
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("expected no request timeout by default, got %v", cfg.RequestTimeout)
	}
	if cfg.SessionIdleTimeout != defaultSessionIdleTimeout {
		t.Errorf("expected default session ttl %v, got %v", defaultSessionIdleTimeout, cfg.SessionIdleTimeout)
	}
	if cfg.SweeperPoolSize != defaultSweeperPoolSize {
		t.Errorf("expected default sweeper pool %d, got %d", defaultSweeperPoolSize, cfg.SweeperPoolSize)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Errorf("expected default log level %q, got %q", defaultLogLevel, cfg.LogLevel)
	}
}

func TestLoadWithFlagOverrides(t *testing.T) {
	env := map[string]string{
		"PREDICT_ENDPOINT":  "http://scoring.local/predict",
		"SWEEPER_POOL_SIZE": "3",
		"STRICT_INPUT":      "false",
		"REQUEST_TIMEOUT":   "5s",
	}

	args := []string{
		"-a", ":9090",
		"-e", "http://override/predict",
		"-d", "postgres://override",
		"--strict",
		"--request-timeout", "7s",
		"--session-ttl", "5m",
		"--sweep-interval", "20s",
		"--sweeper-pool", "9",
		"--shutdown-timeout", "20s",
		"--log-level", "debug",
	}

	cfg, err := load(args, envFrom(env))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.RunAddress != ":9090" {
		t.Errorf("expected run address :9090, got %q", cfg.RunAddress)
	}
	if cfg.PredictEndpoint != "http://override/predict" {
		t.Errorf("expected endpoint override, got %q", cfg.PredictEndpoint)
	}
	if cfg.DatabaseURI != "postgres://override" {
		t.Errorf("expected database uri override, got %q", cfg.DatabaseURI)
	}
	if !cfg.StrictInput {
		t.Errorf("expected strict input override")
	}
	if cfg.RequestTimeout != 7*time.Second {
		t.Errorf("expected request timeout 7s, got %v", cfg.RequestTimeout)
	}
	if cfg.SessionIdleTimeout != 5*time.Minute {
		t.Errorf("expected session ttl 5m, got %v", cfg.SessionIdleTimeout)
	}
	if cfg.SweepInterval != 20*time.Second {
		t.Errorf("expected sweep interval 20s, got %v", cfg.SweepInterval)
	}
	if cfg.SweeperPoolSize != 9 {
		t.Errorf("expected sweeper pool 9, got %d", cfg.SweeperPoolSize)
	}
	if cfg.ShutdownTimeout != 20*time.Second {
		t.Errorf("expected shutdown timeout 20s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.LogLevel)
	}
}

func TestLoadRequestTimeoutIsOptIn(t *testing.T) {
	cfg, err := load(nil, envFrom(map[string]string{
		"PREDICT_ENDPOINT": "http://scoring.local/predict",
		"REQUEST_TIMEOUT":  "0",
	}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if cfg.RequestTimeout != 0 {
		t.Fatalf("expected explicit zero to be kept, got %v", cfg.RequestTimeout)
	}

	cfg, err = load([]string{"--request-timeout", "250ms"}, envFrom(map[string]string{
		"PREDICT_ENDPOINT": "http://scoring.local/predict",
	}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if cfg.RequestTimeout != 250*time.Millisecond {
		t.Fatalf("expected 250ms, got %v", cfg.RequestTimeout)
	}
}

func TestLoadValidationErrors(t *testing.T) {
	env := envFrom(map[string]string{"PREDICT_ENDPOINT": "http://scoring.local/predict"})

	cases := []struct {
		flag string
		want string
	}{
		{"--request-timeout", "invalid request timeout"},
		{"--session-ttl", "invalid session ttl"},
		{"--sweep-interval", "invalid sweep interval"},
		{"--shutdown-timeout", "invalid shutdown timeout"},
	}

	for _, tc := range cases {
		t.Run(tc.flag, func(t *testing.T) {
			_, err := load([]string{tc.flag, "bad"}, env)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q error, got %v", tc.want, err)
			}
		})
	}

	if _, err := load([]string{"--unknown"}, env); err == nil {
		t.Fatal("expected error for unknown flag")
	}
}

func TestLoadNormalizesNonPositiveValues(t *testing.T) {
	cfg, err := load(nil, envFrom(map[string]string{
		"PREDICT_ENDPOINT":     "http://scoring.local/predict",
		"SWEEPER_POOL_SIZE":    "-1",
		"REQUEST_TIMEOUT":      "-5s",
		"SESSION_IDLE_TIMEOUT": "0",
		"SWEEP_INTERVAL":       "-1s",
		"SHUTDOWN_TIMEOUT":     "0",
	}))
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}

	if cfg.SweeperPoolSize != defaultSweeperPoolSize {
		t.Errorf("expected default sweeper pool %d, got %d", defaultSweeperPoolSize, cfg.SweeperPoolSize)
	}
	if cfg.RequestTimeout != 0 {
		t.Errorf("expected negative request timeout to disable the deadline, got %v", cfg.RequestTimeout)
	}
	if cfg.SessionIdleTimeout != defaultSessionIdleTimeout {
		t.Errorf("expected default session ttl %v, got %v", defaultSessionIdleTimeout, cfg.SessionIdleTimeout)
	}
	if cfg.SweepInterval != defaultSweepInterval {
		t.Errorf("expected default sweep interval %v, got %v", defaultSweepInterval, cfg.SweepInterval)
	}
	if cfg.ShutdownTimeout != defaultShutdownTimeout {
		t.Errorf("expected default shutdown timeout %v, got %v", defaultShutdownTimeout, cfg.ShutdownTimeout)
	}
}

func TestWithDotenvLayersBelowEnvironment(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, "predictor.env")
	content := "PREDICT_ENDPOINT=http://from-file/predict\nRUN_ADDRESS=:7000\n"
	if err := os.WriteFile(envFile, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	lookup, err := withDotenv(envFrom(map[string]string{
		"ENV_FILE":    envFile,
		"RUN_ADDRESS": ":9000",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := load(nil, lookup)
	if err != nil {
		t.Fatalf("load returned unexpected error: %v", err)
	}
	if cfg.PredictEndpoint != "http://from-file/predict" {
		t.Errorf("expected endpoint from env file, got %q", cfg.PredictEndpoint)
	}
	if cfg.RunAddress != ":9000" {
		t.Errorf("expected process env to win over env file, got %q", cfg.RunAddress)
	}
}

func TestWithDotenvIgnoresMissingFile(t *testing.T) {
	env := envFrom(map[string]string{"ENV_FILE": filepath.Join(t.TempDir(), "absent.env")})
	lookup, err := withDotenv(env)
	if err != nil {
		t.Fatalf("expected missing env file to be ignored, got %v", err)
	}
	if _, ok := lookup("PREDICT_ENDPOINT"); ok {
		t.Fatal("expected no values from missing file")
	}
}
