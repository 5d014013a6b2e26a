// Package blob stores uploaded certificate documents. Records only carry a
// URL; where the bytes live depends on the configured backend.
package blob

import "context"

// Store persists certificate PDFs and resolves the URLs it minted.
type Store interface {
	// PutPDF stores the document for a certificate id and returns the URL
	// to record on the student.
	PutPDF(ctx context.Context, certificateID string, data []byte) (string, error)
	// Open returns the bytes behind a URL this store produced. ok is false
	// when the URL is not one of ours (external link or data URI), which
	// callers resolve through the asset fetcher instead.
	Open(ctx context.Context, url string) (data []byte, ok bool, err error)
}
