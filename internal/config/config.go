package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type GeocodingConfig struct {
	Provider         string // "google" or "nominatim"
	GoogleAPIKey     string
	NominatimBaseURL string
	UserAgent        string
	FallbackCity     string
	FallbackLat      float64
	FallbackLng      float64
	MarkerDelay      time.Duration
}

type PageConfig struct {
	Collections int
	Vehicles    int
	AreaRules   int
	WasteTypes  int
}

type PDFConfig struct {
	FontPath string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Geocoding   GeocodingConfig
	Pages       PageConfig
	PDF         PDFConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Geocoding: GeocodingConfig{
			Provider:         v.GetString("GEOCODING_PROVIDER"),
			GoogleAPIKey:     v.GetString("GOOGLE_MAPS_API_KEY"),
			NominatimBaseURL: v.GetString("NOMINATIM_BASE_URL"),
			UserAgent:        v.GetString("GEOCODING_USER_AGENT"),
			FallbackCity:     v.GetString("GEOCODING_FALLBACK_CITY"),
			FallbackLat:      v.GetFloat64("GEOCODING_FALLBACK_LAT"),
			FallbackLng:      v.GetFloat64("GEOCODING_FALLBACK_LNG"),
			MarkerDelay:      v.GetDuration("GEOCODING_MARKER_DELAY"),
		},
		Pages: PageConfig{
			Collections: v.GetInt("PAGE_CAP_COLLECTIONS"),
			Vehicles:    v.GetInt("PAGE_CAP_VEHICLES"),
			AreaRules:   v.GetInt("PAGE_CAP_AREA_RULES"),
			WasteTypes:  v.GetInt("PAGE_CAP_WASTE_TYPES"),
		},
		PDF: PDFConfig{
			FontPath: v.GetString("PDF_FONT_PATH"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.Geocoding.Provider == "" {
		cfg.Geocoding.Provider = "nominatim"
	}
	if cfg.Geocoding.UserAgent == "" {
		cfg.Geocoding.UserAgent = "NikoyakaCollectionApp/1.0"
	}
	if cfg.Geocoding.FallbackCity == "" {
		cfg.Geocoding.FallbackCity = "西宮市"
		cfg.Geocoding.FallbackLat = 34.7377
		cfg.Geocoding.FallbackLng = 135.3416
	}
	if cfg.Geocoding.MarkerDelay == 0 {
		cfg.Geocoding.MarkerDelay = 100 * time.Millisecond
	}
	if cfg.Pages.Collections == 0 {
		cfg.Pages.Collections = 1000
	}
	if cfg.Pages.Vehicles == 0 {
		cfg.Pages.Vehicles = 100
	}
	if cfg.Pages.AreaRules == 0 {
		cfg.Pages.AreaRules = 100
	}
	if cfg.Pages.WasteTypes == 0 {
		cfg.Pages.WasteTypes = 100
	}
	if cfg.PDF.FontPath == "" {
		cfg.PDF.FontPath = "./fonts/NotoSansJP-Regular.ttf"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	switch cfg.Geocoding.Provider {
	case "google":
		if cfg.Geocoding.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_MAPS_API_KEY is required when GEOCODING_PROVIDER=google")
		}
	case "nominatim":
	default:
		return fmt.Errorf("GEOCODING_PROVIDER must be google or nominatim, got %q", cfg.Geocoding.Provider)
	}
	return nil
}
