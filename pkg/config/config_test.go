package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	homedir.DisableCache = true
	t.Setenv("HOME", dir)
	t.Setenv("MOOD_CONFIG_PATH", dir)
	t.Setenv("MOOD_PATH", "")
	t.Setenv("MOOD_DRIVER", "")
	t.Setenv("MOOD_WEEK_START", "")
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_TIME", "")
	t.Setenv("LANG", "en_US.UTF-8")
	return dir
}

func TestLoadDefaults(t *testing.T) {
	home := isolate(t)

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Driver() != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.Driver())
	}
	if want := filepath.Join(home, ".mood"); cfg.BasePath() != want {
		t.Fatalf("expected path %q, got %q", want, cfg.BasePath())
	}
	first, err := cfg.FirstWeekday()
	if err != nil {
		t.Fatalf("first weekday: %v", err)
	}
	if first != time.Sunday {
		t.Fatalf("expected sunday for en_US, got %s", first)
	}
	moods, err := cfg.Palette()
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	if len(moods) != 5 {
		t.Fatalf("expected default palette, got %d moods", len(moods))
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	data := []byte(`
path: ` + filepath.Join(dir, "journal") + `
driver: diskv
week_start: monday
log:
  level: debug
moods:
  - label: "Tired 😴"
    color: "#4DB6AC"
  - label: "Excited 🤩"
    color: "#81C784"
`)
	if err := os.WriteFile(filepath.Join(dir, ".mood.yaml"), data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MOOD_DRIVER", "memory")

	cfg, err := load(viper.New())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Driver() != DriverMemory {
		t.Fatalf("expected env override to memory, got %q", cfg.Driver())
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.Log.Level)
	}
	first, err := cfg.FirstWeekday()
	if err != nil || first != time.Monday {
		t.Fatalf("expected monday, got %s (%v)", first, err)
	}
	moods, err := cfg.Palette()
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	if len(moods) != 2 || moods[0].Label != "Tired 😴" {
		t.Fatalf("unexpected palette %v", moods.Labels())
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	isolate(t)
	t.Setenv("MOOD_DRIVER", "postgres")
	if _, err := load(viper.New()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
