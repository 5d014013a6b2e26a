package certificate

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"sanad/internal/blob"
	"sanad/pkg/platform/circuit"
)

// maxAssetBytes caps fetched assets. Logos and photos are small; anything
// larger is a misconfigured URL.
const maxAssetBytes = 8 << 20

// AssetFetcher resolves the URLs stored on records and settings: data URIs
// inline, blob-store URLs locally, everything else over HTTP.
type AssetFetcher struct {
	client  *http.Client
	blobs   blob.Store
	breaker *circuit.Breaker

	mu         sync.Mutex
	lastOpened time.Time
}

// breakerCooldown is how long an open breaker fails remote fetches fast
// before letting one probe request through.
const breakerCooldown = 30 * time.Second

// NewAssetFetcher constructs an AssetFetcher. blobs may be nil when no blob
// store is mounted.
func NewAssetFetcher(blobs blob.Store) *AssetFetcher {
	return &AssetFetcher{
		client: &http.Client{Timeout: 15 * time.Second},
		blobs:  blobs,
		breaker: circuit.New("asset-fetch",
			circuit.WithFailureThreshold(5),
			circuit.WithSuccessThreshold(2),
		),
	}
}

// Fetch returns the bytes behind a URL.
func (f *AssetFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if strings.HasPrefix(url, "data:") {
		return decodeDataURI(url)
	}

	if f.blobs != nil {
		data, ok, err := f.blobs.Open(ctx, url)
		if ok {
			return data, err
		}
	}

	if !f.allowRemote() {
		return nil, fmt.Errorf("fetch asset %q: remote fetches suspended", url)
	}

	data, err := f.fetchRemote(ctx, url)
	if err != nil {
		f.recordFailure()
		return nil, err
	}
	f.breaker.RecordSuccess()
	return data, nil
}

// allowRemote lets requests through while the breaker is closed, and one
// probe per cooldown while it is open.
func (f *AssetFetcher) allowRemote() bool {
	if !f.breaker.IsOpen() {
		return true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if time.Since(f.lastOpened) < breakerCooldown {
		return false
	}
	f.lastOpened = time.Now()
	return true
}

func (f *AssetFetcher) recordFailure() {
	if _, change := f.breaker.RecordFailure(); change.Opened {
		f.mu.Lock()
		f.lastOpened = time.Now()
		f.mu.Unlock()
	}
}

func (f *AssetFetcher) fetchRemote(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch asset %q: %w", url, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch asset %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch asset %q: status %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch asset %q: %w", url, err)
	}
	if len(data) > maxAssetBytes {
		return nil, fmt.Errorf("fetch asset %q: larger than %d bytes", url, maxAssetBytes)
	}
	return data, nil
}

// FetchImage fetches and decodes an image asset.
func (f *AssetFetcher) FetchImage(ctx context.Context, url string) (image.Image, error) {
	data, err := f.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", url, err)
	}
	return img, nil
}

func decodeDataURI(uri string) ([]byte, error) {
	_, rest, found := strings.Cut(uri, ",")
	if !found {
		return nil, fmt.Errorf("malformed data uri")
	}
	if !strings.Contains(uri[:len(uri)-len(rest)], ";base64") {
		return nil, fmt.Errorf("unsupported data uri encoding")
	}
	data, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return nil, fmt.Errorf("decode data uri: %w", err)
	}
	return data, nil
}
