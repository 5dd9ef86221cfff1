package insight

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); !strings.Contains(got, "Mozilla") {
			t.Errorf("User-Agent = %q, want a browser string", got)
		}
		_, _ = io.WriteString(w, "<html><body>hello</body></html>")
	}))
	defer srv.Close()

	body, status, err := NewHTTPClient().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer func() { _ = body.Close() }()

	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	content, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if !strings.Contains(string(content), "hello") {
		t.Errorf("body = %q", content)
	}
}

func TestHTTPClient_FetchReturnsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	body, status, err := NewHTTPClient().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	defer func() { _ = body.Close() }()

	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestHTTPClient_RedirectLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/again", http.StatusFound)
	}))
	defer srv.Close()

	_, _, err := NewHTTPClient().Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("Fetch should fail on an endless redirect chain")
	}
	if !strings.Contains(err.Error(), "too many redirects") {
		t.Errorf("error = %v, want redirect limit", err)
	}
}

func TestHTTPClient_UnreachableHost(t *testing.T) {
	_, _, err := NewHTTPClient().Fetch(context.Background(), "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("Fetch should fail for an unreachable host")
	}
}
