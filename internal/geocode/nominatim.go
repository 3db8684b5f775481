package geocode

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultNominatimBase = "https://nominatim.openstreetmap.org"

	// Nominatim's usage policy allows one request per second; failed
	// query variants are spaced out accordingly.
	retryDelay = 300 * time.Millisecond

	countrySuffix = ", 日本"
	numberMarker  = "番"
)

// FallbackCentroid is the approximate position substituted for
// addresses the provider cannot resolve but that name a known city.
type FallbackCentroid struct {
	City        string
	Lat         float64
	Lng         float64
	DisplayName string
}

// NishinomiyaCentroid is the deployment default.
var NishinomiyaCentroid = FallbackCentroid{
	City:        "西宮市",
	Lat:         34.7377,
	Lng:         135.3416,
	DisplayName: "西宮市中心部（推定位置）",
}

// NominatimClient queries the free OpenStreetMap geocoder. It tries up
// to three query variants per address and falls back to a jittered city
// centroid when all of them come back empty.
type NominatimClient struct {
	baseURL   string
	userAgent string
	fallback  FallbackCentroid
	client    *http.Client
	log       zerolog.Logger

	// sleep and jitter are injectable for tests.
	sleep  func(time.Duration)
	jitter func() float64
}

func NewNominatimClient(baseURL, userAgent string, fallback FallbackCentroid, log zerolog.Logger) *NominatimClient {
	if baseURL == "" {
		baseURL = defaultNominatimBase
	}
	if fallback.DisplayName == "" && fallback.City != "" {
		fallback.DisplayName = fallback.City + "中心部（推定位置）"
	}
	return &NominatimClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		fallback:  fallback,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log,
		sleep:     time.Sleep,
		// Offsets markers by up to ~500m so unresolved addresses in the
		// same city do not stack on one point.
		jitter: func() float64 { return (rand.Float64() - 0.5) * 0.005 },
	}
}

type nominatimHit struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (n *NominatimClient) Resolve(ctx context.Context, address string) *Result {
	normalized := NormalizeAddress(address)

	variants := []string{
		normalized + countrySuffix,
		normalized,
		strings.ReplaceAll(normalized, "-", numberMarker) + countrySuffix,
	}

	for i, variant := range variants {
		last := i == len(variants)-1

		hits, status, err := n.search(ctx, variant)
		if err != nil {
			n.log.Error().Err(err).Str("query", variant).Msg("geocode: nominatim request failed")
			if status == http.StatusForbidden {
				n.log.Warn().Msg("geocode: nominatim rate limit hit (1 request/second allowed)")
			}
			if last {
				return nil
			}
			n.sleep(retryDelay)
			continue
		}

		if len(hits) > 0 {
			lat, latErr := strconv.ParseFloat(hits[0].Lat, 64)
			lng, lngErr := strconv.ParseFloat(hits[0].Lon, 64)
			if latErr != nil || lngErr != nil {
				n.log.Error().Str("query", variant).Msg("geocode: malformed coordinates in response")
				return nil
			}
			return &Result{Lat: lat, Lng: lng, DisplayName: hits[0].DisplayName}
		}

		n.log.Warn().Str("query", variant).Msg("geocode: no results for variant")
		if !last {
			n.sleep(retryDelay)
		}
	}

	if n.fallback.City != "" && strings.Contains(normalized, n.fallback.City) {
		n.log.Warn().
			Str("address", address).
			Str("city", n.fallback.City).
			Msg("geocode: falling back to city centroid")
		return &Result{
			Lat:         n.fallback.Lat + n.jitter(),
			Lng:         n.fallback.Lng + n.jitter(),
			DisplayName: n.fallback.DisplayName,
			Estimated:   true,
		}
	}

	n.log.Warn().Str("address", address).Msg("geocode: address not resolved")
	return nil
}

func (n *NominatimClient) search(ctx context.Context, query string) ([]nominatimHit, int, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", "1")
	params.Set("accept-language", "ja")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, &providerError{status: resp.StatusCode}
	}

	var hits []nominatimHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, resp.StatusCode, err
	}
	return hits, resp.StatusCode, nil
}

type providerError struct {
	status int
}

func (e *providerError) Error() string {
	return "nominatim returned HTTP " + strconv.Itoa(e.status)
}
