package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// These tests use t.Setenv, so they cannot run in parallel.

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"API_ADDRESS", "SHUTDOWN_TIMEOUT", "DATABASE_PATH", "PROPERTIES_PATH", "WEIGHTS_PATH", "COSTS_SERVICE_URL", "COSTS_SERVICE_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Rest.Address != ":8080" || cfg.Rest.ShutdownTimeout != 10*time.Second {
		t.Fatalf("rest=%+v", cfg.Rest)
	}
	if cfg.Costs.ServiceURL != "" || cfg.Costs.Timeout != 5*time.Second {
		t.Fatalf("costs=%+v", cfg.Costs)
	}
	if cfg.WeightsPath != "configs/weights.yaml" || cfg.Log.Format != "color" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

func TestLoadConfig_EnvFileAndOverrides(t *testing.T) {
	unsetenv(t, "SHUTDOWN_TIMEOUT", "LOG_LEVEL")
	t.Setenv("API_ADDRESS", ":9999")

	path := filepath.Join(t.TempDir(), ".env")
	body := "API_ADDRESS=:7000\nSHUTDOWN_TIMEOUT=3\nLOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	// godotenv never overrides variables that are already set.
	if cfg.Rest.Address != ":9999" {
		t.Fatalf("address=%q", cfg.Rest.Address)
	}
	if cfg.Rest.ShutdownTimeout != 3*time.Second || cfg.Log.Level != "debug" {
		t.Fatalf("cfg=%+v", cfg)
	}
}

// unsetenv removes keys for the duration of the test so that an .env file
// can set them.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		if err := os.Unsetenv(k); err != nil {
			t.Fatal(err)
		}
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	cases := []struct {
		val     string
		want    time.Duration
		wantErr bool
	}{
		{"", 7 * time.Second, false},
		{"15", 15 * time.Second, false},
		{"1m30s", 90 * time.Second, false},
		{"-1", 0, true},
		{"soon", 0, true},
	}
	for _, tc := range cases {
		t.Setenv("TEST_DURATION", tc.val)
		got, err := getEnvAsDuration("TEST_DURATION", 7*time.Second)
		if (err != nil) != tc.wantErr {
			t.Errorf("%q: err=%v wantErr=%v", tc.val, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("%q: got %v want %v", tc.val, got, tc.want)
		}
	}
}
