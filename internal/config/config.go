// Package config holds the settings shared by the language server and the
// command line tool.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bennypowers.dev/sls/internal/log"
	"github.com/tidwall/jsonc"
)

// Key is the settings key in package.json and in client configuration
const Key = "scssLanguageServer"

// Tree parser names
const (
	ParserSCSS       = "scss"
	ParserTreeSitter = "tree-sitter"
)

// ErrInvalidConfig is returned for settings of the wrong shape
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the analysis settings
type Config struct {
	// ShowErrors reports syntax errors instead of returning empty results
	ShowErrors bool `json:"showErrors" yaml:"showErrors"`

	// Parser selects the tree parser for scoped lookups: "scss" or "tree-sitter"
	Parser string `json:"parser" yaml:"parser"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `json:"logLevel" yaml:"logLevel"`

	// Exclude lists doublestar globs of files to skip
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		ShowErrors: false,
		Parser:     ParserSCSS,
		LogLevel:   "info",
		Exclude:    []string{"**/node_modules/**"},
	}
}

// Validate checks enumerated fields
func (c Config) Validate() error {
	switch c.Parser {
	case ParserSCSS, ParserTreeSitter:
	default:
		return fmt.Errorf("%w: unknown parser %q", ErrInvalidConfig, c.Parser)
	}
	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// Apply overlays the keys present in settings onto c. Absent keys keep
// their current values.
func (c Config) Apply(settings map[string]any) (Config, error) {
	if v, ok := settings["showErrors"]; ok {
		b, ok := v.(bool)
		if !ok {
			return c, fmt.Errorf("%w: showErrors must be a boolean", ErrInvalidConfig)
		}
		c.ShowErrors = b
	}
	if v, ok := settings["parser"]; ok {
		s, ok := v.(string)
		if !ok {
			return c, fmt.Errorf("%w: parser must be a string", ErrInvalidConfig)
		}
		c.Parser = s
	}
	if v, ok := settings["logLevel"]; ok {
		s, ok := v.(string)
		if !ok {
			return c, fmt.Errorf("%w: logLevel must be a string", ErrInvalidConfig)
		}
		c.LogLevel = s
	}
	if v, ok := settings["exclude"]; ok {
		c.Exclude = stringList(v)
	}
	return c, c.Validate()
}

// stringList accepts a string or a list of strings
func stringList(v any) []string {
	switch v := v.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Section extracts the settings object stored under Key. It returns nil
// when the key is absent.
func Section(root map[string]any) (map[string]any, error) {
	raw, ok := root[Key]
	if !ok {
		return nil, nil
	}
	section, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an object", ErrInvalidConfig, Key)
	}
	return section, nil
}

// LoadPackageJSON reads the settings section of rootPath/package.json,
// which may contain comments. It returns nil when the file or the section
// does not exist.
func LoadPackageJSON(rootPath string) (map[string]any, error) {
	if rootPath == "" {
		return nil, nil
	}
	packageJSONPath := filepath.Join(rootPath, "package.json")

	data, err := os.ReadFile(packageJSONPath) //nolint:gosec // G304: Reading workspace package.json - local trusted environment
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkgJSON map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(data), &pkgJSON); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}
	return Section(pkgJSON)
}

// Load returns the defaults overlaid with rootPath's package.json settings
func Load(rootPath string) (Config, error) {
	cfg := Default()
	section, err := LoadPackageJSON(rootPath)
	if err != nil || section == nil {
		return cfg, err
	}
	return cfg.Apply(section)
}
