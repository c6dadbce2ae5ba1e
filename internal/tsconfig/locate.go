// Package tsconfig discovers the nearest tsconfig.json for a directory and
// extracts the compilerOptions relevant to import resolution.
package tsconfig

import (
	"encoding/json"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

const configFileName = "tsconfig.json"

// Cache sizes; many start directories typically collapse onto few config
// directories, so the parse cache stays small.
const (
	dirCacheSize    = 512
	configCacheSize = 64
)

// Config holds the path-mapping options extracted from a tsconfig.json.
// The zero value means "no configuration found" and is a valid result:
// files outside any configured project resolve without alias support.
type Config struct {
	BaseURL string              // compilerOptions.baseUrl, relative to Dir
	Paths   map[string][]string // compilerOptions.paths alias table
	Dir     string              // absolute directory containing the config file
}

// Found reports whether a config file was actually discovered.
func (c Config) Found() bool {
	return c.Dir != ""
}

// Locator finds the nearest tsconfig.json by walking parent directories.
// Results are memoized on two levels: start directory -> discovered config
// directory, and config directory -> parsed Config. Keying the parse cache
// by the config directory avoids re-reading the same file when many start
// directories resolve to one project root.
type Locator struct {
	dirCache    *lru.Cache[string, string]
	configCache *lru.Cache[string, Config]
}

func NewLocator() *Locator {
	// lru.New errors only on a non-positive size, which the fixed sizes
	// above rule out.
	dirCache, _ := lru.New[string, string](dirCacheSize)
	configCache, _ := lru.New[string, Config](configCacheSize)
	return &Locator{
		dirCache:    dirCache,
		configCache: configCache,
	}
}

// Locate walks upward from startDir until a tsconfig.json is found or the
// filesystem root is reached. A missing or malformed config file is a soft
// failure: the zero Config is returned and no error is surfaced.
func (l *Locator) Locate(startDir string) Config {
	absStart, err := filepath.Abs(startDir)
	if err != nil {
		return Config{}
	}

	configDir, cached := l.dirCache.Get(absStart)
	if !cached {
		configDir = findConfigDir(absStart)
		l.dirCache.Add(absStart, configDir)
	}
	if configDir == "" {
		return Config{}
	}

	if cfg, ok := l.configCache.Get(configDir); ok {
		return cfg
	}
	cfg := parseConfig(filepath.Join(configDir, configFileName))
	l.configCache.Add(configDir, cfg)
	return cfg
}

// findConfigDir returns the nearest directory at or above start containing a
// tsconfig.json, or "" when none exists. Termination is the parent == current
// test, not a hardcoded root path.
func findConfigDir(start string) string {
	dir := start
	for {
		if info, err := os.Stat(filepath.Join(dir, configFileName)); err == nil && !info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

type configFile struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// parseConfig reads and decodes a tsconfig.json. Unreadable or malformed
// files behave exactly like an absent config.
func parseConfig(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}

	var parsed configFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return Config{}
	}

	paths := parsed.CompilerOptions.Paths
	if paths == nil {
		paths = make(map[string][]string)
	}
	return Config{
		BaseURL: parsed.CompilerOptions.BaseURL,
		Paths:   paths,
		Dir:     filepath.Dir(path),
	}
}
