package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// Configuration resolves in layers: defaults, then the config file,
// then TRUSTLENS_* environment variables, then flags set on the
// command line.
func TestBuildConfigLayering(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setConfigDefaults()
	viper.SetConfigType("yaml")
	fileYAML := strings.Join([]string{
		"backend:",
		"  base_url: http://backend.internal:9000",
		"  timeout: 3m",
		"cache:",
		"  enabled: false",
	}, "\n")
	if err := viper.ReadConfig(strings.NewReader(fileYAML)); err != nil {
		t.Fatalf("read config: %v", err)
	}

	viper.SetEnvPrefix("TRUSTLENS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	t.Setenv("TRUSTLENS_BACKEND_TIMEOUT", "4m")

	if err := analyzeCmd.Flags().Set("pro", "true"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	t.Cleanup(func() {
		_ = analyzeCmd.Flags().Set("pro", "false")
	})

	cfg, err := buildConfig(analyzeCmd)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	if cfg.Backend.BaseURL != "http://backend.internal:9000" {
		t.Errorf("BaseURL = %q, want the config file value", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 4*time.Minute {
		t.Errorf("Timeout = %v, want 4m (env overrides the file's 3m)", cfg.Backend.Timeout)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false from the config file")
	}
	if !cfg.Backend.IsPro {
		t.Error("IsPro = false, want true from the flag")
	}
	// Untouched sections keep their defaults.
	if cfg.Input.MinWords != 50 {
		t.Errorf("MinWords = %d, want default 50", cfg.Input.MinWords)
	}
	if cfg.Concurrency.BatchWorkers != 4 {
		t.Errorf("BatchWorkers = %d, want default 4", cfg.Concurrency.BatchWorkers)
	}
}

func TestBuildConfigUnchangedFlagsDoNotOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setConfigDefaults()
	viper.SetConfigType("yaml")
	if err := viper.ReadConfig(strings.NewReader("backend:\n  timeout: 7m\n")); err != nil {
		t.Fatalf("read config: %v", err)
	}

	cfg, err := buildConfig(analyzeCmd)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	// The --timeout flag default must not stomp the configured value.
	if cfg.Backend.Timeout != 7*time.Minute {
		t.Errorf("Timeout = %v, want 7m from the config file", cfg.Backend.Timeout)
	}
}
