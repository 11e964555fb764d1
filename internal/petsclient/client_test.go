package petsclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNew_RejectsBadURL(t *testing.T) {
	if _, err := New("not a url", 0); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDo_DecodesAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":400,"message":"validation failed","field_errors":{"name":"pet name is required"}}`))
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/", 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, _, err = c.Create(context.Background(), PetInput{})
	he, ok := err.(*HTTPError)
	if !ok {
		t.Fatalf("expected *HTTPError, got %T (%v)", err, err)
	}
	if he.StatusCode != 400 || he.Fields["name"] == "" {
		t.Fatalf("unexpected error %+v", he)
	}
	if IsNotFound(err) {
		t.Fatalf("400 is not a 404")
	}
}

func TestDo_PlainTextError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	c, _ := New(ts.URL, 0)
	_, err := c.Get(context.Background(), 1)
	if !IsNotFound(err) {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestNilClient(t *testing.T) {
	var c *Client
	if _, err := c.List(context.Background()); err == nil {
		t.Fatalf("expected error on nil client")
	}
}
