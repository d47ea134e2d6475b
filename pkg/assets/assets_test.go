// Package assets tests for logo resolution and best-effort downloads.
package assets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/r3d91ll/apreport/pkg/errors"
)

// -----------------------------------------------------------------------------
// Logo URL Resolution
// -----------------------------------------------------------------------------

func TestResolveLogoURL(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{
			"first valid wins",
			[]string{"", "not-a-url", "https://example.com/logo.png"},
			"https://example.com/logo.png",
		},
		{
			"earlier valid beats later",
			[]string{"http://a.example/x.png", "https://b.example/y.png"},
			"http://a.example/x.png",
		},
		{"trims whitespace", []string{"  https://example.com/l.png  "}, "https://example.com/l.png"},
		{"scheme is case-insensitive", []string{"HTTP://example.com"}, "HTTP://example.com"},
		{"rejects other schemes", []string{"ftp://example.com", "file:///etc/passwd"}, ""},
		{"no candidates", nil, ""},
		{"all empty", []string{"", "", ""}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveLogoURL(tt.candidates...); got != tt.want {
				t.Errorf("ResolveLogoURL(%v) = %q, want %q", tt.candidates, got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Brand Colors
// -----------------------------------------------------------------------------

func TestResolveBrandColors(t *testing.T) {
	tests := []struct {
		name          string
		primary       string
		secondary     string
		wantPrimary   string
		wantSecondary string
	}{
		{"both valid", "#112233", "#AABBCC", "#112233", "#AABBCC"},
		{"named color rejected", "blue", "#AABBCC", DefaultPrimary, "#AABBCC"},
		{"both empty", "", "", DefaultPrimary, DefaultSecondary},
		{"numeric junk rejected", "123456", "0.5", DefaultPrimary, DefaultSecondary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveBrandColors(tt.primary, tt.secondary)
			if got.Primary != tt.wantPrimary {
				t.Errorf("Primary = %q, want %q", got.Primary, tt.wantPrimary)
			}
			if got.Secondary != tt.wantSecondary {
				t.Errorf("Secondary = %q, want %q", got.Secondary, tt.wantSecondary)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// Fetcher
// -----------------------------------------------------------------------------

func TestFetcher_Success(t *testing.T) {
	body := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "logo.png")
	f := NewFetcher()

	got, err := f.Fetch(context.Background(), srv.URL, dest)
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if got != dest {
		t.Errorf("Fetch() = %q, want %q", got, dest)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != string(body) {
		t.Error("downloaded body does not match served body")
	}
}

func TestFetcher_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "logo.png")
	f := NewFetcher()

	got, err := f.Fetch(context.Background(), srv.URL, dest)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if got != "" {
		t.Errorf("Fetch() = %q, want empty path on failure", got)
	}
	if !errors.Is(err, apperrors.New(apperrors.ErrAssetFetchFailed, apperrors.CategoryAsset, "")) {
		t.Errorf("error code = %q, want ASSET_FETCH_FAILED", apperrors.CodeOf(err))
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Error("destination file should not exist after failed fetch")
	}
}

func TestFetcher_UnreachableHost(t *testing.T) {
	// Reserve a port, then close it so the connection is refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	dest := filepath.Join(t.TempDir(), "logo.png")
	f := NewFetcher(WithTimeout(2 * time.Second))

	if _, err := f.Fetch(context.Background(), url, dest); err == nil {
		t.Fatal("expected error for unreachable host")
	}
}

func TestFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		srv.Close()
	}()

	dest := filepath.Join(t.TempDir(), "logo.png")
	f := NewFetcher(WithTimeout(50 * time.Millisecond))

	start := time.Now()
	_, err := f.Fetch(context.Background(), srv.URL, dest)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("timeout took %v, expected bounded wait", elapsed)
	}
}

func TestFetcher_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher()
	if _, err := f.Fetch(ctx, srv.URL, filepath.Join(t.TempDir(), "l.png")); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
