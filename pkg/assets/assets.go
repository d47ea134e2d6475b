// Package assets resolves per-company branding: an optional logo image and
// a pair of brand colors. Logo downloads are strictly best-effort, a single
// bounded attempt with no retries; the report is built without a logo on
// any failure.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	apperrors "github.com/r3d91ll/apreport/pkg/errors"
	"github.com/r3d91ll/apreport/pkg/lead"
)

// Fallback brand colors, used when a sheet cell is absent or not a hex value.
const (
	DefaultPrimary   = "#001F3F"
	DefaultSecondary = "#2ECC40"
)

// DefaultTimeout bounds the single logo download attempt.
const DefaultTimeout = 15 * time.Second

// BrandColors is the resolved per-company color pair.
type BrandColors struct {
	Primary   string
	Secondary string
}

// ResolveLogoURL returns the first candidate that is an http(s) URL after
// trimming, or "" when no candidate qualifies.
func ResolveLogoURL(candidates ...string) string {
	for _, c := range candidates {
		if url := lead.NormalizeURL(c); url != "" {
			return url
		}
	}
	return ""
}

// ResolveBrandColors validates raw color cells. A value is accepted only if
// it starts with "#"; anything else (empty cells, named colors, numbers
// coerced to strings) falls back to the default for that slot.
func ResolveBrandColors(primaryRaw, secondaryRaw string) BrandColors {
	colors := BrandColors{Primary: DefaultPrimary, Secondary: DefaultSecondary}
	if strings.HasPrefix(primaryRaw, "#") {
		colors.Primary = primaryRaw
	}
	if strings.HasPrefix(secondaryRaw, "#") {
		colors.Secondary = secondaryRaw
	}
	return colors
}

// Fetcher downloads logo images with a bounded timeout and an optional
// batch-wide rate limit.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithTimeout overrides the per-download timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.client.Timeout = d
	}
}

// WithRateLimit limits downloads to n requests per second across the batch.
// n <= 0 disables limiting.
func WithRateLimit(n float64) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// WithLogger attaches a logger for fetch diagnostics.
func WithLogger(logger *zap.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher with the default 15s timeout.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: DefaultTimeout},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs one download attempt and writes the raw response body to
// dest. Any failure (network error, non-2xx status, timeout, cancelled
// context) returns "" and an ASSET_FETCH_FAILED error; callers log it and
// proceed without the asset. On success it returns dest.
func (f *Fetcher) Fetch(ctx context.Context, url, dest string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return "", apperrors.AssetWrap(err, apperrors.ErrAssetFetchFailed, "rate limit wait cancelled")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperrors.AssetWrap(err, apperrors.ErrAssetFetchFailed, "building request").
			WithContext("url", url)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", apperrors.AssetWrap(err, apperrors.ErrAssetFetchFailed, "request failed").
			WithContext("url", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", apperrors.Asset(apperrors.ErrAssetFetchFailed,
			fmt.Sprintf("unexpected status %d", resp.StatusCode)).
			WithContext("url", url)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", apperrors.AssetWrap(err, apperrors.ErrAssetFetchFailed, "creating image directory")
	}

	out, err := os.Create(dest)
	if err != nil {
		return "", apperrors.AssetWrap(err, apperrors.ErrAssetFetchFailed, "creating destination file")
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		// Remove the partial file so the assembler never embeds a
		// truncated image.
		os.Remove(dest)
		return "", apperrors.AssetWrap(err, apperrors.ErrAssetFetchFailed, "writing response body")
	}

	f.logger.Debug("logo downloaded", zap.String("url", url), zap.String("dest", dest))
	return dest, nil
}
