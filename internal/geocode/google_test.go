package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/rs/zerolog"
)

func newTestGoogle(t *testing.T, handler http.HandlerFunc) *GoogleClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewGoogleClient("test-key", zerolog.Nop())
	client.endpoint = server.URL
	return client
}

func TestGoogleResolve(t *testing.T) {
	var query url.Values
	client := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Write([]byte(`{"status":"OK","results":[{"formatted_address":"日本、兵庫県西宮市甲子園町1-2-3","geometry":{"location":{"lat":34.72,"lng":135.36}}}]}`))
	})

	got := client.Resolve(context.Background(), "西宮市甲子園町1-2-3")
	if got == nil {
		t.Fatal("expected result")
	}
	if got.Lat != 34.72 || got.Lng != 135.36 {
		t.Errorf("coords = (%v, %v)", got.Lat, got.Lng)
	}
	if got.DisplayName != "日本、兵庫県西宮市甲子園町1-2-3" {
		t.Errorf("DisplayName = %q", got.DisplayName)
	}
	if got.Estimated {
		t.Error("provider hit must not be estimated")
	}

	if query.Get("key") != "test-key" {
		t.Errorf("key = %q", query.Get("key"))
	}
	if query.Get("language") != "ja" || query.Get("region") != "jp" {
		t.Errorf("localization params = %q / %q", query.Get("language"), query.Get("region"))
	}
}

func TestGoogleZeroResults(t *testing.T) {
	client := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	if got := client.Resolve(context.Background(), "存在しない住所"); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestGoogleProviderError(t *testing.T) {
	client := newTestGoogle(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if got := client.Resolve(context.Background(), "西宮市"); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}
