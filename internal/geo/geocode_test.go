package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestFormatCoordinates(t *testing.T) {
	tests := []struct {
		lat, lng float64
		want     string
	}{
		{55.755826, 37.6173, "55.755826, 37.6173"},
		{-33.8688, 151.2093, "-33.8688, 151.2093"},
		{0, 0, "0, 0"},
	}
	for _, tt := range tests {
		if got := FormatCoordinates(tt.lat, tt.lng); got != tt.want {
			t.Errorf("FormatCoordinates(%v, %v) = %q, want %q", tt.lat, tt.lng, got, tt.want)
		}
	}
}

func TestAssembleAddress(t *testing.T) {
	tests := []struct {
		name string
		resp nominatimResponse
		want string
	}{
		{
			name: "street with house number and city",
			resp: nominatimResponse{Address: nominatimAddress{
				Road: "Тверская улица", HouseNumber: "7", City: "Москва",
			}},
			want: "Тверская улица, 7, Москва",
		},
		{
			name: "pedestrian way, town",
			resp: nominatimResponse{Address: nominatimAddress{
				Pedestrian: "Арбат", Town: "Клин",
			}},
			want: "Арбат, Клин",
		},
		{
			name: "city only",
			resp: nominatimResponse{Address: nominatimAddress{Village: "Горки"}},
			want: "Горки",
		},
		{
			name: "nothing usable falls back to display name",
			resp: nominatimResponse{DisplayName: "somewhere far away"},
			want: "somewhere far away",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := assembleAddress(&tt.resp); got != tt.want {
				t.Errorf("assembleAddress() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReverseFallsBackOnUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL, "ru", time.Second, nil)
	got := g.Reverse(context.Background(), 55.755826, 37.6173)
	if got != "55.755826, 37.6173" {
		t.Errorf("Reverse() = %q, want coordinate fallback", got)
	}
}

func TestReverseParsesUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "json" {
			t.Errorf("missing format=json, query = %v", r.URL.RawQuery)
		}
		if r.URL.Query().Get("accept-language") != "ru" {
			t.Errorf("missing accept-language, query = %v", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"display_name":"x","address":{"road":"Ленина","house_number":"1","city":"Тула"}}`))
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL, "ru", time.Second, nil)
	got := g.Reverse(context.Background(), 54.19, 37.61)
	if got != "Ленина, 1, Тула" {
		t.Errorf("Reverse() = %q, want %q", got, "Ленина, 1, Тула")
	}
}

type mapCache struct {
	mu sync.Mutex
	m  map[string]string
}

func (c *mapCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key, val string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = val
}

func TestReverseUsesCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"address":{"city":"Тверь"}}`))
	}))
	defer srv.Close()

	g := NewGeocoder(srv.URL, "ru", time.Second, &mapCache{m: map[string]string{}})

	first := g.Reverse(context.Background(), 56.86, 35.9)
	second := g.Reverse(context.Background(), 56.86, 35.9)
	if first != "Тверь" || second != "Тверь" {
		t.Fatalf("Reverse() = %q then %q, want Тверь twice", first, second)
	}
	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1 (second served from cache)", calls)
	}
}
