package certificate

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchDataURI(t *testing.T) {
	f := NewAssetFetcher(nil)

	t.Run("decodes base64 payloads", func(t *testing.T) {
		payload := []byte("%PDF-1.4 hello")
		uri := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(payload)
		data, err := f.Fetch(context.Background(), uri)
		require.NoError(t, err)
		require.Equal(t, payload, data)
	})

	t.Run("rejects non-base64 data uris", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), "data:text/plain,hello")
		require.Error(t, err)
	})

	t.Run("rejects malformed data uris", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), "data:application/pdf;base64")
		require.Error(t, err)
	})
}

func TestFetchRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/asset.bin":
			_, _ = w.Write([]byte("asset bytes"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := NewAssetFetcher(nil)

	data, err := f.Fetch(context.Background(), srv.URL+"/asset.bin")
	require.NoError(t, err)
	require.Equal(t, []byte("asset bytes"), data)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	require.Error(t, err)
}

func TestFetchSuspendsRemoteAfterRepeatedFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewAssetFetcher(nil)
	for i := 0; i < 5; i++ {
		_, err := f.Fetch(context.Background(), srv.URL+"/broken")
		require.Error(t, err)
	}
	require.Equal(t, 5, hits)

	// Breaker is open now; further fetches fail without touching the server.
	_, err := f.Fetch(context.Background(), srv.URL+"/broken")
	require.Error(t, err)
	require.Equal(t, 5, hits)
}
