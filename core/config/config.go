package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultListenAddr is used by serve if listen_address is not set.
	DefaultListenAddr = "127.0.0.1:8081"
)

var (
	ErrInvalidDataset   = errors.New("invalid dataset")
	ErrDuplicateDataset = errors.New("duplicate dataset")
)

type Dataset struct {
	Name   string `toml:"name"`
	Path   string `toml:"path"`
	Sorted bool   `toml:"sorted,omitempty"`
}

type Config struct {
	ListenAddr  string    `toml:"listen_address,omitempty"`
	MetricsAddr string    `toml:"metrics_address,omitempty"`
	Datasets    []Dataset `toml:"datasets,omitempty"`
}

func Decode(r io.Reader) (Config, error) {
	var cfg Config
	err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to decode configuration: %w", err)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration file name. Relative dataset paths are
// resolved against the directory containing name.
func Load(name string) (Config, error) {
	raw, err := os.ReadFile(name)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(raw))
	if err != nil {
		return Config{}, err
	}
	dir := filepath.Dir(name)
	for i := range cfg.Datasets {
		if !filepath.IsAbs(cfg.Datasets[i].Path) {
			cfg.Datasets[i].Path = filepath.Join(dir, cfg.Datasets[i].Path)
		}
	}
	return cfg, nil
}

func (c Config) Validate() error {
	seen := make(map[string]bool, len(c.Datasets))
	for i, ds := range c.Datasets {
		if ds.Name == "" {
			return fmt.Errorf("dataset %d: %w: missing name", i, ErrInvalidDataset)
		}
		if ds.Path == "" {
			return fmt.Errorf("dataset %q: %w: missing path", ds.Name, ErrInvalidDataset)
		}
		if seen[ds.Name] {
			return fmt.Errorf("dataset %q: %w", ds.Name, ErrDuplicateDataset)
		}
		seen[ds.Name] = true
	}
	return nil
}
