// Package scanner extracts import specifiers from TypeScript/TSX sources by
// traversing their tree-sitter syntax trees.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/featlens-dev/featlens/internal/ignore"
	"github.com/featlens-dev/featlens/internal/resolver"
)

// sourceExtensions are the files picked up by a directory scan.
var sourceExtensions = map[string]bool{
	".ts":  true,
	".tsx": true,
}

// ImportRecord is the per-file scan result: the absolute source path and its
// import resolutions in document order. Ignored specifiers are already
// dropped and never appear here.
type ImportRecord struct {
	File    string
	Imports []resolver.Resolution
}

// LocalDependencies returns the resolved local file paths of the record's
// imports, preserving document order.
func (r ImportRecord) LocalDependencies() []string {
	deps := make([]string, 0, len(r.Imports))
	for _, imp := range r.Imports {
		if imp.Kind == resolver.KindLocal {
			deps = append(deps, imp.Target)
		}
	}
	return deps
}

// ScanIssue captures a per-file failure that did not abort the batch.
type ScanIssue struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// ScanResult holds the records for every successfully scanned file plus the
// issues for files that were skipped.
type ScanResult struct {
	RootPath string
	Records  []ImportRecord
	Issues   []ScanIssue
}

// Scanner parses source files and classifies their imports. One scanner is
// built per run; it owns its tree-sitter parsers and resolver and keeps no
// other state, so scans are a pure function of file contents and the
// filesystem probes done during resolution.
type Scanner struct {
	tsParser *sitter.Parser
	txParser *sitter.Parser
	resolver *resolver.Resolver
}

// New creates a scanner that delegates specifier classification to res.
func New(res *resolver.Resolver) *Scanner {
	ts := sitter.NewParser()
	ts.SetLanguage(typescript.GetLanguage())

	tx := sitter.NewParser()
	tx.SetLanguage(tsx.GetLanguage())

	return &Scanner{
		tsParser: ts,
		txParser: tx,
		resolver: res,
	}
}

// Scan parses one file and returns its import record. The syntax tree is
// visited depth-first in pre-order; for each import statement the first
// string-literal child is taken as the specifier.
func (s *Scanner) Scan(ctx context.Context, filePath string) (*ImportRecord, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %q: %w", filePath, err)
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", absPath, err)
	}

	parser := s.tsParser
	if strings.HasSuffix(absPath, ".tsx") {
		parser = s.txParser
	}
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", absPath, err)
	}
	defer tree.Close()

	record := &ImportRecord{
		File:    filepath.Clean(absPath),
		Imports: make([]resolver.Resolution, 0),
	}

	importerDir := filepath.Dir(record.File)
	s.collectImports(tree.RootNode(), content, importerDir, record)
	return record, nil
}

// collectImports walks the tree pre-order, visiting each node once before
// its children, and records every non-ignored import resolution.
func (s *Scanner) collectImports(node *sitter.Node, content []byte, importerDir string, record *ImportRecord) {
	if node.Type() == "import_statement" {
		if specifier, ok := importSpecifier(node, content); ok {
			res := s.resolver.Resolve(importerDir, specifier)
			if res.Kind != resolver.KindIgnored {
				record.Imports = append(record.Imports, res)
			}
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		s.collectImports(node.Child(i), content, importerDir, record)
	}
}

// importSpecifier extracts the first string-literal child of an import
// statement, stripped of its quotes.
func importSpecifier(node *sitter.Node, content []byte) (string, bool) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Type() != "string" {
			continue
		}
		raw := child.Content(content)
		return strings.Trim(raw, `"'`+"`"), true
	}
	return "", false
}

// ScanDirectory walks root and scans every .ts/.tsx file not excluded by the
// ignore rules. A file that cannot be read or parsed is recorded as an issue
// and skipped; the rest of the batch continues.
func (s *Scanner) ScanDirectory(ctx context.Context, root string, ignoreRules []string, onFile func(path string, scanned int)) (*ScanResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", root, err)
	}

	matcher := ignore.NewMatcher(ignoreRules)
	result := &ScanResult{
		RootPath: absRoot,
		Records:  make([]ImportRecord, 0),
		Issues:   make([]ScanIssue, 0),
	}

	walkErr := filepath.Walk(absRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			relPath := path
			if rel, relErr := filepath.Rel(absRoot, path); relErr == nil {
				relPath = rel
			}
			result.Issues = append(result.Issues, ScanIssue{
				File:    relPath,
				Message: fmt.Sprintf("walk error: %v", err),
			})
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, _ := filepath.Rel(absRoot, path)
		if matcher.ShouldIgnore(relPath, info.IsDir()) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() || !sourceExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		record, err := s.Scan(ctx, path)
		if err != nil {
			result.Issues = append(result.Issues, ScanIssue{File: relPath, Message: err.Error()})
			return nil
		}
		result.Records = append(result.Records, *record)
		if onFile != nil {
			onFile(relPath, len(result.Records))
		}
		return nil
	})

	sort.Slice(result.Records, func(i, j int) bool {
		return result.Records[i].File < result.Records[j].File
	})
	sort.Slice(result.Issues, func(i, j int) bool {
		if result.Issues[i].File == result.Issues[j].File {
			return result.Issues[i].Message < result.Issues[j].Message
		}
		return result.Issues[i].File < result.Issues[j].File
	})

	return result, walkErr
}
