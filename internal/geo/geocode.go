package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/myville/backend/internal/metrics"
)

// Geocoder resolves coordinates to a short human-readable address via a
// Nominatim-compatible endpoint. Lookups are best-effort: any failure falls
// back to the raw coordinate pair and never blocks the caller.
type Geocoder struct {
	baseURL string
	lang    string
	client  *http.Client
	cache   Cache // optional
}

func NewGeocoder(baseURL, lang string, timeout time.Duration, cache Cache) *Geocoder {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Geocoder{
		baseURL: baseURL,
		lang:    lang,
		client:  &http.Client{Timeout: timeout},
		cache:   cache,
	}
}

type nominatimAddress struct {
	Road         string `json:"road"`
	Pedestrian   string `json:"pedestrian"`
	Footway      string `json:"footway"`
	Path         string `json:"path"`
	HouseNumber  string `json:"house_number"`
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
}

type nominatimResponse struct {
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
}

// Reverse returns a display address for the coordinates. It never fails:
// upstream errors degrade to FormatCoordinates(lat, lng).
func (g *Geocoder) Reverse(ctx context.Context, lat, lng float64) string {
	key := cacheKey(lat, lng)
	if g.cache != nil {
		if addr, ok := g.cache.Get(ctx, key); ok {
			metrics.GeocodeLookupsTotal.WithLabelValues("cache_hit").Inc()
			return addr
		}
	}

	addr, err := g.lookup(ctx, lat, lng)
	if err != nil {
		slog.Warn("reverse geocode failed", "error", err)
		metrics.GeocodeLookupsTotal.WithLabelValues("fallback").Inc()
		return FormatCoordinates(lat, lng)
	}

	metrics.GeocodeLookupsTotal.WithLabelValues("ok").Inc()
	if g.cache != nil {
		g.cache.Set(ctx, key, addr)
	}
	return addr
}

func (g *Geocoder) lookup(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "json")
	if g.lang != "" {
		q.Set("accept-language", g.lang)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "MyVilleBackend/1.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder status %d", resp.StatusCode)
	}

	var nr nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return "", err
	}

	if addr := assembleAddress(&nr); addr != "" {
		return addr, nil
	}
	return FormatCoordinates(lat, lng), nil
}

// assembleAddress builds "street, house number, city" from whichever parts
// are present, preferring named ways over display_name.
func assembleAddress(nr *nominatimResponse) string {
	a := nr.Address

	street := firstNonEmpty(a.Road, a.Pedestrian, a.Footway, a.Path)
	streetPart := street
	if street != "" && a.HouseNumber != "" {
		streetPart = street + ", " + a.HouseNumber
	}

	city := firstNonEmpty(a.City, a.Town, a.Village, a.Municipality)

	switch {
	case streetPart != "" && city != "":
		return streetPart + ", " + city
	case streetPart != "":
		return streetPart
	case city != "":
		return city
	}
	return nr.DisplayName
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// FormatCoordinates is the fallback address representation.
func FormatCoordinates(lat, lng float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + ", " + strconv.FormatFloat(lng, 'f', -1, 64)
}

func cacheKey(lat, lng float64) string {
	// 5 decimals (~1m) so nearby fixes share entries.
	return fmt.Sprintf("geocode:%.5f:%.5f", lat, lng)
}
