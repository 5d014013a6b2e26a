package blob

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"sanad/pkg/platform/sentinel"
)

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	pdf := []byte("%PDF-1.4\nminimal")
	url, err := store.PutPDF(ctx, "WTC-1001", pdf)
	require.NoError(t, err)
	require.Equal(t, URLPrefix+"wtc-1001.pdf", url)

	data, ok, err := store.Open(ctx, url)
	require.True(t, ok)
	require.NoError(t, err)
	require.Equal(t, pdf, data)
}

func TestLocalStoreOverwritesOnReupload(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.PutPDF(ctx, "WTC-1001", []byte("%PDF-1.4\nfirst"))
	require.NoError(t, err)
	url, err := store.PutPDF(ctx, "WTC-1001", []byte("%PDF-1.4\nsecond"))
	require.NoError(t, err)

	data, _, err := store.Open(ctx, url)
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.4\nsecond"), data)
}

func TestLocalStoreSanitizesFileNames(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	url, err := store.PutPDF(ctx, "WTC/10:01", []byte("%PDF-1.4\n"))
	require.NoError(t, err)
	require.Equal(t, URLPrefix+"wtc_10_01.pdf", url)
}

func TestLocalStoreOpen(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	t.Run("ignores foreign urls", func(t *testing.T) {
		_, ok, err := store.Open(ctx, "https://example.com/file.pdf")
		require.False(t, ok)
		require.NoError(t, err)
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		_, ok, _ := store.Open(ctx, URLPrefix+"../../etc/passwd")
		require.False(t, ok)
	})

	t.Run("missing document is not found", func(t *testing.T) {
		_, ok, err := store.Open(ctx, URLPrefix+"missing.pdf")
		require.True(t, ok)
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
