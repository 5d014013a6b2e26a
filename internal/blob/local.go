package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sanad/pkg/platform/sentinel"
)

// URLPrefix is the public path uploaded certificates are served under.
const URLPrefix = "/uploads/certificates/"

// LocalStore keeps uploaded documents on the local filesystem under the data
// directory. The directory is also mounted on the router so the minted URLs
// are directly fetchable.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory under dataDir.
func NewLocalStore(dataDir string) (*LocalStore, error) {
	dir := filepath.Join(dataDir, "uploads", "certificates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the directory documents are written to, for static mounting.
func (s *LocalStore) Dir() string {
	return s.dir
}

// PutPDF writes the document and returns its public URL. Re-uploading for
// the same certificate id overwrites the previous document.
func (s *LocalStore) PutPDF(_ context.Context, certificateID string, data []byte) (string, error) {
	name := fileName(certificateID)
	tmp := filepath.Join(s.dir, name+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write certificate file: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("write certificate file: %w", err)
	}
	return URLPrefix + name, nil
}

// Open resolves a URL minted by PutPDF back to the stored bytes.
func (s *LocalStore) Open(_ context.Context, url string) ([]byte, bool, error) {
	name, found := strings.CutPrefix(url, URLPrefix)
	if !found || name == "" || strings.ContainsAny(name, "/\\") {
		return nil, false, nil
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, true, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, true, fmt.Errorf("read certificate file: %w", err)
	}
	return data, true, nil
}

// fileName maps a certificate id to a safe, case-stable file name.
func fileName(certificateID string) string {
	id := strings.ToLower(certificateID)
	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String() + ".pdf"
}
