package doc

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SearchResult is one document matching a text query.
type SearchResult struct {
	Path         string `json:"path"`
	Filename     string `json:"filename"`
	Format       string `json:"format"`
	WordCount    int    `json:"word_count"`
	MatchContext string `json:"match_context"`
}

const matchContextChars = 200

var searchExts = map[string]bool{
	".odt": true, ".ods": true, ".odp": true, ".odg": true,
	".doc": true, ".docx": true, ".txt": true,
}

var listExts = map[string]bool{
	".odt": true, ".ods": true, ".odp": true, ".odg": true,
	".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true,
}

// DefaultRoots returns the common document locations: the user's
// Documents and Desktop directories plus the working directory.
func DefaultRoots() []string {
	var roots []string
	if home, err := os.UserHomeDir(); err == nil {
		roots = append(roots, filepath.Join(home, "Documents"), filepath.Join(home, "Desktop"))
	}
	if cwd, err := os.Getwd(); err == nil {
		roots = append(roots, cwd)
	}
	return roots
}

// ListDocuments walks roots for office documents and returns their paths
// sorted. Unreadable directories are skipped.
func ListDocuments(roots []string) []string {
	var docs []string
	for _, root := range roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() && listExts[strings.ToLower(filepath.Ext(path))] {
				docs = append(docs, path)
			}
			return nil
		})
	}
	sort.Strings(docs)
	return docs
}

// Search extracts text from every candidate document under roots and
// reports those containing query, case-insensitively, with surrounding
// context. Documents that cannot be read are skipped; search is a
// discovery aid, not a validator.
func (e *Extractor) Search(ctx context.Context, query string, roots []string) []SearchResult {
	results := []SearchResult{}
	lower := strings.ToLower(query)
	for _, root := range roots {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() || !searchExts[strings.ToLower(filepath.Ext(path))] {
				return nil
			}
			if ctx.Err() != nil {
				return fs.SkipAll
			}
			tc, err := e.Text(ctx, path)
			if err != nil {
				return nil
			}
			if !strings.Contains(strings.ToLower(tc.Content), lower) {
				return nil
			}
			results = append(results, SearchResult{
				Path:         path,
				Filename:     filepath.Base(path),
				Format:       format(path),
				WordCount:    tc.WordCount,
				MatchContext: MatchContext(tc.Content, query, matchContextChars),
			})
			return nil
		})
	}
	return results
}
