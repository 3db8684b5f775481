package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const googleEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleClient queries the Google Maps Geocoding API with results
// localized to Japan. One request per address, no retries.
type GoogleClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
	log      zerolog.Logger
}

func NewGoogleClient(apiKey string, log zerolog.Logger) *GoogleClient {
	return &GoogleClient{
		apiKey:   apiKey,
		endpoint: googleEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

type googleResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (g *GoogleClient) Resolve(ctx context.Context, address string) *Result {
	query := url.Values{}
	query.Set("address", address)
	query.Set("key", g.apiKey)
	query.Set("language", "ja")
	query.Set("region", "jp")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		g.log.Error().Err(err).Str("address", address).Msg("geocode: build request failed")
		return nil
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error().Err(err).Str("address", address).Msg("geocode: request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.log.Error().Int("status", resp.StatusCode).Str("address", address).Msg("geocode: provider error")
		return nil
	}

	var payload googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		g.log.Error().Err(err).Str("address", address).Msg("geocode: decode failed")
		return nil
	}

	if payload.Status != "OK" || len(payload.Results) == 0 {
		g.log.Warn().
			Str("address", address).
			Str("provider_status", payload.Status).
			Str("provider_error", payload.ErrorMessage).
			Msg("geocode: address not found")
		return nil
	}

	first := payload.Results[0]
	return &Result{
		Lat:         first.Geometry.Location.Lat,
		Lng:         first.Geometry.Location.Lng,
		DisplayName: first.FormattedAddress,
	}
}
