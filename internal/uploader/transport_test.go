package uploader

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPTransportUploadsBodyWithContentType(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	data := bytes.Repeat([]byte("x"), 10_000)
	var progress []int
	err := NewHTTPTransport().Upload(context.Background(), srv.URL, bytes.NewReader(data), int64(len(data)), "image/png",
		func(p int) { progress = append(progress, p) })
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	if gotContentType != "image/png" {
		t.Errorf("content type %q, want image/png", gotContentType)
	}
	if !bytes.Equal(gotBody, data) {
		t.Errorf("server received %d bytes, want %d", len(gotBody), len(data))
	}

	if len(progress) == 0 {
		t.Fatal("expected progress callbacks for a known-size body")
	}
	for i := 1; i < len(progress); i++ {
		if progress[i] <= progress[i-1] {
			t.Fatalf("progress not strictly increasing: %v", progress)
		}
	}
	if last := progress[len(progress)-1]; last != 100 {
		t.Errorf("final progress %d, want 100", last)
	}
}

func TestHTTPTransportFailsOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "expired", http.StatusForbidden)
	}))
	defer srv.Close()

	data := []byte("payload")
	err := NewHTTPTransport().Upload(context.Background(), srv.URL, bytes.NewReader(data), int64(len(data)), "image/jpeg", nil)
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
}

func TestHTTPTransportOmitsProgressForUnknownSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var calls int
	err := NewHTTPTransport().Upload(context.Background(), srv.URL, bytes.NewReader([]byte("data")), 0, "image/jpeg",
		func(int) { calls++ })
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no progress callbacks when size is unknown, got %d", calls)
	}
}
