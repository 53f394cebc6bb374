
package crawler

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestFetchHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("<html><title>x</title></html>"))
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1024)
	rc, final, ct, dur, err := client.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetch err: %v", err)
	}
	defer rc.Close()
	if final == "" || ct == "" || dur == 0 {
		t.Fatal("unexpected empty values")
	}
}

func TestFetchCapsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write(bytes.Repeat([]byte("a"), 4096))
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 100)
	rc, _, _, _, err := client.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetch err: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if len(data) != 100 {
		t.Fatalf("want 100 bytes, got %d", len(data))
	}
}

func TestFetchGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("<h1>zipped</h1>"))
	_ = gz.Close()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1024)
	rc, _, _, _, err := client.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("fetch err: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "<h1>zipped</h1>" {
		t.Fatalf("unexpected body %q", data)
	}
}

func TestRejectNonHTML(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(200)
		w.Write([]byte("{}"))
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1024)
	_, _, _, _, err := client.Fetch(context.Background(), ts.URL)
	if !errors.Is(err, ErrNonHTML) {
		t.Fatalf("expected ErrNonHTML, got %v", err)
	}
}

func TestRejectErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1024)
	if _, _, _, _, err := client.Fetch(context.Background(), ts.URL); err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestRejectInvalidURL(t *testing.T) {
	client := NewHTTPClient(5*time.Second, 2*time.Second, 1024)
	for _, u := range []string{"", "example.com", "ftp://example.com/x", "://"} {
		if _, _, _, _, err := client.Fetch(context.Background(), u); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("%q: expected ErrInvalidURL, got %v", u, err)
		}
	}
}

func TestRateLimitHonoursContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
	}))
	defer ts.Close()

	client := NewHTTPClient(5*time.Second, 2*time.Second, 1024, WithRateLimit(0.001))
	rc, _, _, _, err := client.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("first fetch should use the burst: %v", err)
	}
	rc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, _, _, _, err := client.Fetch(ctx, ts.URL); err == nil {
		t.Fatal("expected limiter wait to fail before the deadline")
	}
}
