package foursquare_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"truffle_shuffle/internal/adapters/foursquare"
	"truffle_shuffle/internal/domain"
)

func TestNew_MissingCredentials(t *testing.T) {
	if _, err := foursquare.New("", "", "secret", ""); !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := foursquare.New("", "id", "", ""); !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestClient_SearchVenues_SendsQueryAndDecodes(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.WriteHeader(200)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"meta": map[string]any{"code": 200},
			"response": map[string]any{"venues": []any{
				map[string]any{"id": "v1", "name": "Ramen Yokocho"},
			}},
		})
	}))
	defer ts.Close()

	cl, err := foursquare.New(ts.URL, "id-1", "secret-1", "")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	q, _ := domain.NewSearchQuery(37.7853, -122.4306, 2000)
	venues, err := cl.SearchVenues(ctx, q)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(venues) != 1 || venues[0]["id"] != "v1" {
		t.Fatalf("unexpected venues: %+v", venues)
	}
	if gotPath != "/venues/search" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	want := map[string]string{
		"ll":            "37.7853,-122.4306",
		"radius":        "2000",
		"limit":         "50",
		"client_id":     "id-1",
		"client_secret": "secret-1",
		"v":             foursquare.DefaultVersion,
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Fatalf("param %s = %q, want %q", k, gotQuery[k], v)
		}
	}
	if n := len(strings.Split(gotQuery["categoryId"], ",")); n != 5 {
		t.Fatalf("expected 5 category ids, got %d", n)
	}
}

func TestClient_SearchVenues_NoRetryOn5xx(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("down"))
	}))
	defer ts.Close()

	cl, _ := foursquare.New(ts.URL, "id", "secret", "")
	_, err := cl.SearchVenues(context.Background(), domain.DefaultSearchQuery())
	if err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected 503 error, got %v", err)
	}
	if atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("expected exactly 1 call, got %d", hits)
	}
}

func TestClient_SearchVenues_Unauthorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	cl, _ := foursquare.New(ts.URL, "id", "secret", "")
	_, err := cl.SearchVenues(context.Background(), domain.DefaultSearchQuery())
	if !errors.Is(err, foursquare.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_SearchVenues_MetaError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"meta":{"code":429,"errorType":"quota_exceeded","errorDetail":"Quota exceeded"}}`))
	}))
	defer ts.Close()

	cl, _ := foursquare.New(ts.URL, "id", "secret", "")
	_, err := cl.SearchVenues(context.Background(), domain.DefaultSearchQuery())
	if err == nil || !strings.Contains(err.Error(), "quota_exceeded") {
		t.Fatalf("expected meta error, got %v", err)
	}
}

func TestClient_SearchVenues_ErrorHidesSecret(t *testing.T) {
	cl, _ := foursquare.New("http://127.0.0.1:1", "id", "very-secret", "")
	_, err := cl.SearchVenues(context.Background(), domain.DefaultSearchQuery())
	if err == nil {
		t.Fatalf("expected connection error")
	}
	if strings.Contains(err.Error(), "very-secret") {
		t.Fatalf("error leaks client secret: %v", err)
	}
}
