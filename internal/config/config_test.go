package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/vsave/internal/paths"
)

func TestLoad_ExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	Init()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: 1
save_dir: /saves/here
retention: 7
watch:
  debounce: 5s
  schedule: "*/10 * * * *"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.SaveDir != "/saves/here" {
		t.Errorf("SaveDir = %q", cfg.SaveDir)
	}
	if cfg.Retention != 7 {
		t.Errorf("Retention = %d, want 7", cfg.Retention)
	}
	if cfg.Watch.Debounce != 5*time.Second {
		t.Errorf("Watch.Debounce = %v, want 5s", cfg.Watch.Debounce)
	}
	if cfg.Watch.Schedule != "*/10 * * * *" {
		t.Errorf("Watch.Schedule = %q", cfg.Watch.Schedule)
	}
}

func TestLoad_MissingExplicitFileIsError(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	Init()

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	Init()

	// Run from an empty directory so no stray config.yaml is picked up
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Retention != DefaultRetention {
		t.Errorf("Retention = %d, want %d", cfg.Retention, DefaultRetention)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Watch.Debounce = %v, want 2s", cfg.Watch.Debounce)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	viper.Reset()
	t.Cleanup(viper.Reset)
	Init()

	in := &Config{
		Version:   1,
		SaveDir:   "/saves/here",
		Retention: 12,
		Watch: WatchConfig{
			Debounce: 3 * time.Second,
			Schedule: "@hourly",
		},
	}
	require.NoError(t, Save(in))
	require.FileExists(t, paths.ConfigFile())

	out, err := Load(paths.ConfigFile())
	require.NoError(t, err)
	require.Equal(t, in.SaveDir, out.SaveDir)
	require.Equal(t, in.Retention, out.Retention)
	require.Equal(t, in.Watch.Debounce, out.Watch.Debounce)
	require.Equal(t, in.Watch.Schedule, out.Watch.Schedule)
}
