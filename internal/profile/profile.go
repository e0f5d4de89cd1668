// Package profile manages named threshold presets (minsup, minconf,
// prune) saved as TOML files, the format the teacher codebase adopts
// for its own formula files because of its human-readable diffs and
// comment support.
package profile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// Profile is a named, reusable set of mining thresholds (SPEC_FULL.md
// §2/§6.2 profile save|list|show).
type Profile struct {
	Name    string  `toml:"-"`
	MinSup  float64 `toml:"minsup"`
	MinConf float64 `toml:"minconf"`
	Prune   bool    `toml:"prune"`
}

// Store manages profiles persisted as one .toml file per name under
// dir (typically ~/.ermine/profiles).
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".toml")
}

// Save writes p to disk, creating the profile directory if needed.
func (s *Store) Save(p Profile) error {
	if p.Name == "" {
		return fmt.Errorf("profile: name must not be empty")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("profile: creating %s: %w", s.dir, err)
	}
	var buf bytes.Buffer
	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(p); err != nil {
		return fmt.Errorf("profile: encoding %s: %w", p.Name, err)
	}
	if err := os.WriteFile(s.path(p.Name), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("profile: writing %s: %w", p.Name, err)
	}
	return nil
}

// Load reads the named profile.
func (s *Store) Load(name string) (Profile, error) {
	var p Profile
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return p, fmt.Errorf("profile: %s: %w", name, err)
	}
	if _, err := toml.Decode(string(data), &p); err != nil {
		return p, fmt.Errorf("profile: decoding %s: %w", name, err)
	}
	p.Name = name
	return p, nil
}

// List returns the names of all saved profiles, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile: listing %s: %w", s.dir, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".toml" {
			names = append(names, e.Name()[:len(e.Name())-len(".toml")])
		}
	}
	sort.Strings(names)
	return names, nil
}
