package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lemiae/PlantShelf/config"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("writes defaults when file is absent", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "plantshelf.yml")

		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.ListenAddr != ":8080" {
			t.Errorf("ListenAddr = %q", cfg.ListenAddr)
		}
		if cfg.Perenual.TimeoutSeconds != 10 {
			t.Errorf("TimeoutSeconds = %d, want 10", cfg.Perenual.TimeoutSeconds)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("default config file not written: %v", err)
		}
	})

	t.Run("reads an existing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "plantshelf.yml")
		content := "listenAddr: \":9001\"\nperenual:\n  apiKey: sk-test\n  timeoutSeconds: 3\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.ListenAddr != ":9001" {
			t.Errorf("ListenAddr = %q", cfg.ListenAddr)
		}
		if cfg.Perenual.APIKey != "sk-test" {
			t.Errorf("APIKey = %q", cfg.Perenual.APIKey)
		}
		if cfg.Perenual.Timeout().Seconds() != 3 {
			t.Errorf("Timeout = %v, want 3s", cfg.Perenual.Timeout())
		}
	})

	t.Run("zero timeout falls back to default", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "plantshelf.yml")
		if err := os.WriteFile(path, []byte("listenAddr: \":9001\"\n"), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Perenual.TimeoutSeconds != 10 {
			t.Errorf("TimeoutSeconds = %d, want default 10", cfg.Perenual.TimeoutSeconds)
		}
	})
}
