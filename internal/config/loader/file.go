package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file syntax.
type Format string

// Supported formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// decodeFunc parses file contents into a raw map. source is used in errors.
type decodeFunc func(source string, data []byte) (map[string]any, error)

// FileLoader loads configuration from a single file.
type FileLoader struct {
	fs     FileSystem
	path   string
	format Format
	decode decodeFunc
}

// NewTOMLLoader creates a new TOML loader for the given path.
func NewTOMLLoader(path string) *FileLoader {
	return &FileLoader{fs: DefaultFS(), path: path, format: FormatTOML, decode: decodeTOML}
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *FileLoader {
	return &FileLoader{fs: DefaultFS(), path: path, format: FormatYAML, decode: decodeYAML}
}

// NewJSONLoader creates a new JSON loader for the given path.
func NewJSONLoader(path string) *FileLoader {
	return &FileLoader{fs: DefaultFS(), path: path, format: FormatJSON, decode: decodeJSON}
}

// WithFS replaces the file system used by the loader and returns it.
func (l *FileLoader) WithFS(fs FileSystem) *FileLoader {
	l.fs = fs
	return l
}

// Path returns the configured file path.
func (l *FileLoader) Path() string {
	return l.path
}

// Format returns the file syntax handled by the loader.
func (l *FileLoader) Format() Format {
	return l.format
}

// Load reads configuration from the configured path.
func (l *FileLoader) Load() (map[string]any, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading config file %s: %w", l.path, err)
	}
	return l.parse(l.path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *FileLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.parse("<reader>", data)
}

func (l *FileLoader) parse(source string, data []byte) (map[string]any, error) {
	config, err := l.decode(source, data)
	if err != nil {
		return nil, err
	}
	if config == nil {
		config = make(map[string]any)
	}
	return config, nil
}

func decodeTOML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := toml.Unmarshal(data, &config); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return config, nil
}

func decodeYAML(source string, data []byte) (map[string]any, error) {
	var config map[string]any
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	return config, nil
}

func decodeJSON(source string, data []byte) (map[string]any, error) {
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "invalid JSON"}
	}
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil, &ParseError{Path: source, Message: "top-level value must be an object"}
	}
	config, _ := result.Value().(map[string]any)
	return config, nil
}
