// Package cli bootstraps an O²L program: locating the entry .obq file, an
// optional o2l.yaml project manifest, and the full stdlib host-object
// surface, then invoking Main.main() and translating its outcome into a
// process exit code. Grounded on the prior interpreter
// bootstrap/evaluate-module shape, trimmed to O²L's single-entry-object
// model.
package cli

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional project config. Absence of the file
// is not an error; defaults below apply.
type Manifest struct {
	Entry string `yaml:"entry"`
	FFI   bool   `yaml:"ffi"`
	HTTP  struct {
		DefaultAddr string `yaml:"default_addr"`
	} `yaml:"http"`
}

func defaultManifest() *Manifest {
	return &Manifest{Entry: "main.obq"}
}

// LoadManifest reads o2l.yaml from dir, returning the default manifest
// (main.obq, ffi disabled) if the file is absent. A malformed manifest
// that does exist is still an error — only a missing file falls back
// silently.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, "o2l.yaml")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultManifest(), nil
		}
		return nil, err
	}
	m := defaultManifest()
	if err := yaml.Unmarshal(b, m); err != nil {
		return nil, err
	}
	if m.Entry == "" {
		m.Entry = "main.obq"
	}
	return m, nil
}

// ResolveEntry finds the entry .obq file for a program given on the
// command line: either a direct path to a .obq file, or a directory
// containing an o2l.yaml manifest (or falling back to main.obq in that
// directory).
func ResolveEntry(target string) (entryPath string, manifest *Manifest, err error) {
	info, err := os.Stat(target)
	if err != nil {
		return "", nil, err
	}
	if !info.IsDir() {
		dir := filepath.Dir(target)
		m, err := LoadManifest(dir)
		if err != nil {
			return "", nil, err
		}
		return target, m, nil
	}
	m, err := LoadManifest(target)
	if err != nil {
		return "", nil, err
	}
	return filepath.Join(target, m.Entry), m, nil
}
