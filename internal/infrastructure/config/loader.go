package config

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/younwookim/brawl/internal/domain/move"
)

// EnvPrefix prefixes environment overrides, e.g. BRAWL_PHYSICS_GRAVITY
const EnvPrefix = "BRAWL"

// Loader loads game configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// LoadSettings loads settings.json. Every key can be overridden from the
// environment: display.framerate is read from BRAWL_DISPLAY_FRAMERATE.
func (l *Loader) LoadSettings() (*Settings, error) {
	data, err := fs.ReadFile(l.fsys, "settings.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read settings.json: %w", err)
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to parse settings.json: %w", err)
	}

	var cfg Settings
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode settings.json: %w", err)
	}

	return &cfg, nil
}

// LoadMoveset loads and validates moves/<name>.yaml
func (l *Loader) LoadMoveset(name string) (*move.Moveset, error) {
	path := "moves/" + name + ".yaml"
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read moveset %s: %w", name, err)
	}

	var f MovesetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse moveset %s: %w", name, err)
	}
	if f.Name == "" {
		f.Name = name
	}

	ms, err := f.Moveset()
	if err != nil {
		return nil, fmt.Errorf("failed to load moveset %s: %w", name, err)
	}
	return ms, nil
}

// LoadMovesets loads every moveset the match roster refers to, once each
func (l *Loader) LoadMovesets(s *Settings) (map[string]*move.Moveset, error) {
	out := make(map[string]*move.Moveset)
	for _, f := range s.Match.Fighters {
		if _, ok := out[f.Moveset]; ok {
			continue
		}
		ms, err := l.LoadMoveset(f.Moveset)
		if err != nil {
			return nil, err
		}
		out[f.Moveset] = ms
	}
	return out, nil
}
