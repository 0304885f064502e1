package uploader

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// PreviewStore materializes selected files in a session-scoped temp directory
// so a UI can render them before the remote upload finishes. Every preview is
// released exactly once, on entry removal or session teardown, whichever
// comes first.
type PreviewStore struct {
	dir string
}

func NewPreviewStore() (*PreviewStore, error) {
	dir, err := os.MkdirTemp("", "storefront-previews-")
	if err != nil {
		return nil, fmt.Errorf("failed to create preview dir: %w", err)
	}
	return &PreviewStore{dir: dir}, nil
}

func (ps *PreviewStore) Create(fileName string, data []byte) (*Preview, error) {
	path := filepath.Join(ps.dir, uuid.New().String()+filepath.Ext(fileName))
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write preview: %w", err)
	}
	return &Preview{URL: "file://" + path, path: path}, nil
}

// Close removes the whole preview directory. Individual previews released
// earlier are already gone; removing the directory is safe either way.
func (ps *PreviewStore) Close() error {
	return os.RemoveAll(ps.dir)
}

// Preview is a locally owned, revocable reference to a file's bytes.
type Preview struct {
	URL string

	path string
	once sync.Once
}

// Release deletes the backing file. Safe to call more than once.
func (p *Preview) Release() {
	p.once.Do(func() {
		_ = os.Remove(p.path)
	})
}
