package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Source describes where a configuration was read from.
type Source string

// SourceEmbedded marks the built-in defaults.
const SourceEmbedded Source = "embedded"

// extensions are tried in order in every search directory.
var extensions = []string{".yaml", ".yml", ".toml"}

type validator interface {
	Validate() error
}

// Load reads the configuration of gameID into T.
//
// Search order: customPath -> ~/.arcade/configs/<game>.(yaml|toml) ->
// ./configs/<game>.(yaml|toml) -> embedded default. Files are decoded on top
// of the embedded default, so a file only needs the keys it changes. A
// custom path that cannot be read or parsed is an error; unreadable files in
// the search directories are skipped.
func Load[T any](gameID, customPath string) (T, Source, error) {
	cfg, err := Default[T](gameID)
	if err != nil {
		return cfg, SourceEmbedded, err
	}

	if customPath != "" {
		if err := decodeFile(customPath, &cfg); err != nil {
			return cfg, Source(customPath), err
		}
		return cfg, Source(customPath), validate(&cfg, customPath)
	}

	for _, dir := range searchDirs() {
		for _, ext := range extensions {
			path := filepath.Join(dir, gameID+ext)
			candidate := cfg
			if err := decodeFile(path, &candidate); err != nil {
				continue
			}
			return candidate, Source(path), validate(&candidate, path)
		}
	}

	return cfg, SourceEmbedded, nil
}

// Default returns the embedded default configuration of gameID.
func Default[T any](gameID string) (T, error) {
	var cfg T
	data := DefaultYAML(gameID)
	if data == nil {
		return cfg, fmt.Errorf("config: no defaults for game %q", gameID)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: embedded defaults for %s: %w", gameID, err)
	}
	return cfg, nil
}

// decodeFile decodes a YAML or TOML file, chosen by extension, into out.
func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: cannot read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), out)
		if err != nil {
			return fmt.Errorf("config: cannot parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("%w: %s: unknown keys %v", ErrInvalid, path, undecoded)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty file keeps the defaults.
		if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("config: cannot parse %s: %w", path, err)
		}
	}
	return nil
}

func validate(cfg any, path string) error {
	v, ok := cfg.(validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// searchDirs returns the user and local config directories.
func searchDirs() []string {
	dirs := make([]string, 0, 2)
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".arcade", "configs"))
	}
	return append(dirs, "configs")
}
