package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	toml "github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/dshills/hookstorm/internal/logging"
)

var log = logging.Logger("manifest")

// Load reads and validates the manifest file at path. The format is
// chosen by extension: .toml, .yaml, or .yml.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse TOML %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Debug().
		Str("path", path).
		Int("hooks", len(m.Hooks)).
		Msg("manifest loaded")

	return &m, nil
}

// Files returns the manifest file paths directly inside dir, sorted by
// name. A missing directory yields an empty list.
func Files(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".toml", ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDir loads every manifest file directly inside dir and merges
// them into one Manifest. Files parse concurrently; the merged hook
// order is deterministic, following file name order and in-file order.
// An empty or missing directory yields an empty manifest.
func LoadDir(dir string) (*Manifest, error) {
	paths, err := Files(dir)
	if err != nil {
		return nil, err
	}

	loaded := make([]*Manifest, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			m, err := Load(path)
			if err != nil {
				return err
			}
			loaded[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Manifest{}
	for _, m := range loaded {
		merged.Hooks = append(merged.Hooks, m.Hooks...)
	}

	log.Debug().
		Str("dir", dir).
		Int("files", len(paths)).
		Int("hooks", len(merged.Hooks)).
		Msg("manifest dir loaded")

	return merged, nil
}
