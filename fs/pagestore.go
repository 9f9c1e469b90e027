// Package fs stores raw search-results pages on disk.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/carlist"
)

// Ensure FileStore implements carlist.PageStore at compile time.
var _ carlist.PageStore = (*FileStore)(nil)

// FileStore implements carlist.PageStore with atomic update semantics.
// Pages are saved to a temporary directory, then moved atomically on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *FileStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *FileStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// PageFileName returns the file name used for a page number, e.g. page-0007.html.
func PageFileName(page int) string {
	return fmt.Sprintf("page-%04d.html", page)
}

// Save writes the page markup, prefixed with a comment naming its source.
func (s *FileStore) Save(ctx context.Context, page int, url, html string) error {
	if page < 1 {
		return carlist.Errorf(carlist.EINVALID, "invalid page number %d", page)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	fullPath := filepath.Join(s.tempDir(), PageFileName(page))
	return os.WriteFile(fullPath, []byte(FormatPage(url, html)), 0644)
}

// FormatPage prefixes html with a comment recording its source URL and
// the date it was saved.
func FormatPage(url, html string) string {
	var b strings.Builder
	b.WriteString("<!-- source: ")
	b.WriteString(strings.ReplaceAll(url, "--", "%2D%2D"))
	b.WriteString(" saved: ")
	b.WriteString(time.Now().Format("2006-01-02"))
	b.WriteString(" -->\n")
	b.WriteString(html)
	return b.String()
}

// Commit replaces the output directory with the saved pages.
func (s *FileStore) Commit() error {
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Nothing saved: leave an empty output directory.
	if _, err := os.Stat(s.tempDir()); os.IsNotExist(err) {
		return os.MkdirAll(s.finalDir(), 0755)
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved pages and keeps any previous output.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
