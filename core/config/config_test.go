package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"example.com/descstat/core/config"
)

func TestDecode(t *testing.T) {
	const raw = `
metrics_address = "127.0.0.1:9090"

[[datasets]]
name = "latency"
path = "latency.txt"

[[datasets]]
name = "sizes"
path = "sizes.txt"
sorted = true
`
	cfg, err := config.Decode(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if cfg.ListenAddr != config.DefaultListenAddr {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, config.DefaultListenAddr)
	}
	if cfg.MetricsAddr != "127.0.0.1:9090" {
		t.Errorf("MetricsAddr = %q, want %q", cfg.MetricsAddr, "127.0.0.1:9090")
	}
	want := []config.Dataset{
		{Name: "latency", Path: "latency.txt"},
		{Name: "sizes", Path: "sizes.txt", Sorted: true},
	}
	if len(cfg.Datasets) != len(want) {
		t.Fatalf("len(Datasets) = %d, want %d", len(cfg.Datasets), len(want))
	}
	for i := range want {
		if cfg.Datasets[i] != want[i] {
			t.Errorf("Datasets[%d] = %+v, want %+v", i, cfg.Datasets[i], want[i])
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{
			name: "Missing name",
			raw: `[[datasets]]
path = "a.txt"`,
			wantErr: config.ErrInvalidDataset,
		},
		{
			name: "Missing path",
			raw: `[[datasets]]
name = "a"`,
			wantErr: config.ErrInvalidDataset,
		},
		{
			name: "Duplicate name",
			raw: `[[datasets]]
name = "a"
path = "a.txt"
[[datasets]]
name = "a"
path = "b.txt"`,
			wantErr: config.ErrDuplicateDataset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Decode(strings.NewReader(tt.raw))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeUnknownField(t *testing.T) {
	_, err := config.Decode(strings.NewReader(`dscp = 63`))
	if err == nil {
		t.Error("Decode() with unknown field did not fail")
	}
}

func TestLoad(t *testing.T) {
	name := filepath.Join(t.TempDir(), "descstat.toml")
	err := os.WriteFile(name, []byte(`listen_address = "127.0.0.1:0"`), 0o600)
	if err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	cfg, err := config.Load(name)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", name, err)
	}
	if cfg.ListenAddr != "127.0.0.1:0" {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, "127.0.0.1:0")
	}

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want %v", err, os.ErrNotExist)
	}
}

func TestLoadResolvesDatasetPaths(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "abs.txt")
	raw := `[[datasets]]
name = "rel"
path = "data/rel.txt"

[[datasets]]
name = "abs"
path = "` + filepath.ToSlash(abs) + `"
`
	name := filepath.Join(dir, "descstat.toml")
	err := os.WriteFile(name, []byte(raw), 0o600)
	if err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := config.Load(name)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", name, err)
	}
	if want := filepath.Join(dir, "data", "rel.txt"); cfg.Datasets[0].Path != want {
		t.Errorf("Datasets[0].Path = %q, want %q", cfg.Datasets[0].Path, want)
	}
	if cfg.Datasets[1].Path != filepath.Clean(abs) {
		t.Errorf("Datasets[1].Path = %q, want %q", cfg.Datasets[1].Path, abs)
	}
}
