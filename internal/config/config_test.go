package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Timing.RevealDelayMs != 1000 {
		t.Errorf("Timing.RevealDelayMs = %d, want 1000", cfg.Timing.RevealDelayMs)
	}
	if cfg.Timing.ZoomDelayMs != 500 {
		t.Errorf("Timing.ZoomDelayMs = %d, want 500", cfg.Timing.ZoomDelayMs)
	}
	if cfg.Timing.BlackScreenDelayMs != 2000 {
		t.Errorf("Timing.BlackScreenDelayMs = %d, want 2000", cfg.Timing.BlackScreenDelayMs)
	}
	if cfg.Text.Font != "Metamorphous" {
		t.Errorf("Text.Font = %q, want Metamorphous", cfg.Text.Font)
	}
	if !cfg.TUI.AltScreen {
		t.Error("TUI.AltScreen should be true by default")
	}
	if cfg.TUI.ExitAfterMs != 0 {
		t.Error("TUI.ExitAfterMs should be disabled by default")
	}

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("default config should validate, got %v", ValidationErrors(errs))
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name string
		got  time.Duration
		want time.Duration
	}{
		{"reveal", cfg.Timing.RevealDelay(), time.Second},
		{"zoom", cfg.Timing.ZoomDelay(), 500 * time.Millisecond},
		{"black screen", cfg.Timing.BlackScreenDelay(), 2 * time.Second},
		{"button transition", cfg.Timing.ButtonTransition(), 500 * time.Millisecond},
		{"fetch timeout", cfg.Assets.FetchTimeout(), 3 * time.Second},
		{"video frame", cfg.Assets.VideoFrame(), 120 * time.Millisecond},
		{"frame interval", cfg.TUI.FrameInterval(), 33 * time.Millisecond},
		{"exit after", cfg.TUI.ExitAfter(), 0},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("defaults only", func(t *testing.T) {
		viper.Reset()
		SetDefaults()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !reflect.DeepEqual(*cfg, *Default()) {
			t.Errorf("Load() = %+v, want defaults", cfg)
		}
	})

	t.Run("file overrides", func(t *testing.T) {
		viper.Reset()
		SetDefaults()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "timing:\n  zoom_delay_ms: 300\ntext:\n  button: Enter\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Timing.ZoomDelayMs != 300 || cfg.Text.Button != "Enter" {
			t.Errorf("overrides not applied: %+v", cfg)
		}
		if cfg.Timing.BlackScreenDelayMs != 2000 {
			t.Errorf("unset field lost its default: %d", cfg.Timing.BlackScreenDelayMs)
		}
	})

	t.Run("invalid ordering falls back in Get", func(t *testing.T) {
		viper.Reset()
		SetDefaults()
		viper.Set("timing.black_screen_delay_ms", 400)

		if _, err := Load(); err == nil {
			t.Fatal("expected validation error")
		}
		if got := Get(); got.Timing.BlackScreenDelayMs != 2000 {
			t.Errorf("Get() should fall back to defaults, got %d", got.Timing.BlackScreenDelayMs)
		}
	})
}

func TestConfigDir(t *testing.T) {
	t.Run("respects XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		if got := ConfigDir(); got != filepath.Join("/tmp/xdg", "splash") {
			t.Errorf("ConfigDir() = %q", got)
		}
		if got := ConfigFile(); got != filepath.Join("/tmp/xdg", "splash", "config.yaml") {
			t.Errorf("ConfigFile() = %q", got)
		}
	})
}

func TestLoggingConfig_ResolveDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	l := LoggingConfig{}
	if got := l.ResolveDir(); got != filepath.Join("/tmp/xdg", "splash", "logs") {
		t.Errorf("default ResolveDir() = %q", got)
	}

	l.Dir = "/var/log/splash"
	if got := l.ResolveDir(); got != "/var/log/splash" {
		t.Errorf("absolute ResolveDir() = %q", got)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	l.Dir = "~/splash-logs"
	if got := l.ResolveDir(); got != filepath.Join(home, "splash-logs") {
		t.Errorf("home ResolveDir() = %q", got)
	}
}
