// Package resolver classifies raw import specifiers and maps local ones to
// concrete files on disk using tsconfig path-mapping options.
package resolver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/featlens-dev/featlens/internal/tsconfig"
)

// Kind classifies the outcome of resolving one import specifier.
type Kind int

const (
	// KindIgnored marks specifiers under a configured framework prefix.
	// They are dropped entirely and never become graph edges.
	KindIgnored Kind = iota
	// KindLocal is a resolved absolute path to a real source file.
	KindLocal
	// KindExternal is a bare package reference such as "react".
	KindExternal
	// KindUnresolved is a local-looking specifier that matched no file;
	// the raw string is kept so downstream consumers stay lenient.
	KindUnresolved
)

func (k Kind) String() string {
	switch k {
	case KindIgnored:
		return "ignored"
	case KindLocal:
		return "local"
	case KindExternal:
		return "external"
	case KindUnresolved:
		return "unresolved"
	default:
		return "unknown"
	}
}

// Resolution is the classified result for one specifier. Target is an
// absolute file path for KindLocal and the raw specifier otherwise
// (empty for KindIgnored).
type Resolution struct {
	Kind   Kind
	Target string
}

// extensions is the fixed probe order. Direct files are always tried for
// every extension before any index file.
var extensions = [4]string{".ts", ".tsx", ".js", ".jsx"}

// Resolver resolves import specifiers for one scan. It holds no global
// state; construct one per run and share it across files.
type Resolver struct {
	locator        *tsconfig.Locator
	ignorePrefixes []string
}

// New creates a resolver. ignorePrefixes lists framework-internal specifier
// prefixes (e.g. "next") whose imports are dropped from results.
func New(locator *tsconfig.Locator, ignorePrefixes []string) *Resolver {
	if locator == nil {
		locator = tsconfig.NewLocator()
	}
	return &Resolver{
		locator:        locator,
		ignorePrefixes: ignorePrefixes,
	}
}

// Resolve classifies rawSpecifier as seen from importerDir.
//
// Rules apply in order: configured ignore prefixes first, then local-looking
// specifiers (".", "/", or an alias marker "@"), everything else is an
// external package name. Local resolution failure falls back to the raw
// specifier rather than erroring.
func (r *Resolver) Resolve(importerDir, rawSpecifier string) Resolution {
	specifier := strings.TrimSpace(rawSpecifier)
	if specifier == "" {
		return Resolution{Kind: KindUnresolved, Target: rawSpecifier}
	}

	for _, prefix := range r.ignorePrefixes {
		if prefix != "" && strings.HasPrefix(specifier, prefix) {
			return Resolution{Kind: KindIgnored}
		}
	}

	if strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/") || strings.HasPrefix(specifier, "@") {
		if path := r.resolveLocal(importerDir, specifier); path != "" {
			return Resolution{Kind: KindLocal, Target: path}
		}
		return Resolution{Kind: KindUnresolved, Target: specifier}
	}

	return Resolution{Kind: KindExternal, Target: specifier}
}

// resolveLocal maps a local-looking specifier to an existing file, or ""
// when nothing matches.
func (r *Resolver) resolveLocal(importerDir, specifier string) string {
	for _, candidate := range r.candidatePaths(importerDir, specifier) {
		if path := probe(candidate); path != "" {
			return path
		}
	}
	return ""
}

// candidatePaths expands a specifier into the extensionless base paths to
// probe, in precedence order. Alias specifiers anchor at the config
// directory joined with baseUrl so every file in one configuration scope
// resolves an alias identically.
func (r *Resolver) candidatePaths(importerDir, specifier string) []string {
	if strings.HasPrefix(specifier, "@") {
		return r.aliasCandidates(importerDir, specifier)
	}
	if filepath.IsAbs(specifier) {
		return []string{filepath.Clean(specifier)}
	}
	return []string{filepath.Join(importerDir, specifier)}
}

func (r *Resolver) aliasCandidates(importerDir, specifier string) []string {
	cfg := r.locator.Locate(importerDir)
	base := filepath.Join(cfg.Dir, cfg.BaseURL)

	patterns := make([]string, 0, len(cfg.Paths))
	for pattern := range cfg.Paths {
		patterns = append(patterns, pattern)
	}
	sort.Strings(patterns)

	candidates := make([]string, 0, 2)
	for _, pattern := range patterns {
		prefix, ok := aliasPrefix(pattern)
		if !ok || !strings.HasPrefix(specifier, prefix) {
			continue
		}
		rest := specifier[len(prefix):]
		for _, target := range cfg.Paths[pattern] {
			mapped := strings.Replace(target, "*", rest, 1)
			candidates = append(candidates, filepath.Join(base, mapped))
		}
	}
	if len(candidates) > 0 {
		return candidates
	}

	// No alias table entry. With a baseUrl the "@/" shorthand still maps
	// under it; otherwise strip the marker and try relative to the
	// importer as a best effort.
	if strings.HasPrefix(specifier, "@/") {
		rest := specifier[len("@/"):]
		if cfg.Found() && cfg.BaseURL != "" {
			return []string{filepath.Join(base, rest)}
		}
		return []string{filepath.Join(importerDir, rest)}
	}
	return []string{filepath.Join(importerDir, specifier)}
}

// aliasPrefix turns a tsconfig paths pattern like "@/*" into its literal
// prefix "@/". Patterns without a wildcard match exactly.
func aliasPrefix(pattern string) (string, bool) {
	if !strings.HasPrefix(pattern, "@") {
		return "", false
	}
	if idx := strings.Index(pattern, "*"); idx >= 0 {
		return pattern[:idx], true
	}
	return pattern, true
}

// probe tries the candidate with every extension as a direct file, then as
// a directory containing an index file. The direct-file pass completes for
// all extensions before any index file is considered.
func probe(candidate string) string {
	for _, ext := range extensions {
		if path := statFile(candidate + ext); path != "" {
			return path
		}
	}
	for _, ext := range extensions {
		if path := statFile(filepath.Join(candidate, "index"+ext)); path != "" {
			return path
		}
	}
	return ""
}

func statFile(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ""
	}
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return ""
	}
	return filepath.Clean(abs)
}
