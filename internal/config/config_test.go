package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadLayered_CLIOverridesEverything(t *testing.T) {
	embedded := []byte("collection:\n  interval: \"5s\"\noutput:\n  format: \"text\"")
	t.Setenv("CANDYMON_INTERVAL", "3s")
	cli := CLIOverrides{Interval: time.Second, Format: "json"}

	cfg, err := LoadLayered(cli, embedded, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collection.Interval.Duration != time.Second {
		t.Errorf("Interval = %v, want CLI override", cfg.Collection.Interval.Duration)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("Format = %q, want CLI override", cfg.Output.Format)
	}
}

func TestLoadLayered_EnvOverridesEmbed(t *testing.T) {
	embedded := []byte("collection:\n  interval: \"5s\"\n  top_processes: 5")
	t.Setenv("CANDYMON_INTERVAL", "3s")

	cfg, err := LoadLayered(CLIOverrides{}, embedded, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collection.Interval.Duration != 3*time.Second {
		t.Errorf("Interval = %v, want env override", cfg.Collection.Interval.Duration)
	}
	if cfg.Collection.TopProcesses != 5 {
		t.Errorf("TopProcesses = %d, want embedded value", cfg.Collection.TopProcesses)
	}
}

func TestLoadLayered_FileOverridesEmbed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("sources:\n  proc_root: /host/proc\nlogging:\n  level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	embedded := []byte("logging:\n  level: warn\n")

	cfg, err := LoadLayered(CLIOverrides{}, embedded, path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sources.ProcRoot != "/host/proc" {
		t.Errorf("ProcRoot = %q", cfg.Sources.ProcRoot)
	}
	if cfg.Sources.SysRoot != "/sys" {
		t.Errorf("SysRoot = %q, want default", cfg.Sources.SysRoot)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want file value", cfg.Logging.Level)
	}
}

func TestLoadLayered_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadLayered(CLIOverrides{}, nil, filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collection.Interval.Duration != 2*time.Second {
		t.Errorf("Interval = %v, want 2s default", cfg.Collection.Interval.Duration)
	}
	if cfg.Collection.TopProcesses != 20 {
		t.Errorf("TopProcesses = %d, want 20", cfg.Collection.TopProcesses)
	}
}

func TestLoadLayered_Errors(t *testing.T) {
	if _, err := LoadLayered(CLIOverrides{}, []byte("collection:\n  interval: soon\n"), ""); err == nil {
		t.Error("expected error for invalid embedded duration")
	}

	t.Setenv("CANDYMON_INTERVAL", "often")
	if _, err := LoadLayered(CLIOverrides{}, nil, ""); err == nil {
		t.Error("expected error for invalid env duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"text format", func(c *Config) { c.Output.Format = "text" }, false},
		{"zero interval", func(c *Config) { c.Collection.Interval.Duration = 0 }, true},
		{"negative timeout", func(c *Config) { c.Collection.Timeout.Duration = -time.Second }, true},
		{"no timeout", func(c *Config) { c.Collection.Timeout.Duration = 0 }, false},
		{"no processes", func(c *Config) { c.Collection.TopProcesses = 0 }, true},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := DefaultConfig()
	cfg.Collection.Interval.Duration = 750 * time.Millisecond

	if err := WriteConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadLayered(CLIOverrides{}, nil, path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Collection.Interval.Duration != 750*time.Millisecond {
		t.Errorf("Interval = %v after round trip", loaded.Collection.Interval.Duration)
	}
}
