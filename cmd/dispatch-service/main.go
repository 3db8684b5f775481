package main

import (
	"fmt"
	"os"

	"github.com/nikoyaka/dispatch-service/internal/config"
	"github.com/nikoyaka/dispatch-service/internal/db"
	"github.com/nikoyaka/dispatch-service/internal/excel"
	"github.com/nikoyaka/dispatch-service/internal/extract"
	"github.com/nikoyaka/dispatch-service/internal/geocode"
	httphandler "github.com/nikoyaka/dispatch-service/internal/http"
	"github.com/nikoyaka/dispatch-service/internal/logger"
	"github.com/nikoyaka/dispatch-service/internal/pdf"
	"github.com/nikoyaka/dispatch-service/internal/repository"
	"github.com/nikoyaka/dispatch-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	collectionRepo := repository.NewCollectionRepository(database, cfg.Pages.Collections)
	vehicleRepo := repository.NewVehicleRepository(database, cfg.Pages.Vehicles)
	areaRuleRepo := repository.NewAreaRuleRepository(database, cfg.Pages.AreaRules)
	wasteTypeRepo := repository.NewWasteTypeRepository(database, cfg.Pages.WasteTypes)

	var geocoder geocode.Client
	switch cfg.Geocoding.Provider {
	case "google":
		geocoder = geocode.NewGoogleClient(cfg.Geocoding.GoogleAPIKey, log)
	default:
		geocoder = geocode.NewNominatimClient(
			cfg.Geocoding.NominatimBaseURL,
			cfg.Geocoding.UserAgent,
			geocode.FallbackCentroid{
				City: cfg.Geocoding.FallbackCity,
				Lat:  cfg.Geocoding.FallbackLat,
				Lng:  cfg.Geocoding.FallbackLng,
			},
			log,
		)
	}

	pdfGenerator, err := pdf.NewGenerator(cfg.PDF.FontPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init pdf generator")
	}

	collectionService := service.NewCollectionService(
		collectionRepo,
		vehicleRepo,
		areaRuleRepo,
		wasteTypeRepo,
		extract.New(log),
		geocoder,
		excel.NewGenerator(),
		cfg.Geocoding.MarkerDelay,
		log,
	)
	vehicleService := service.NewVehicleService(vehicleRepo, collectionRepo, pdfGenerator, log)
	areaRuleService := service.NewAreaRuleService(areaRuleRepo)
	wasteTypeService := service.NewWasteTypeService(wasteTypeRepo)

	handler := httphandler.NewHandler(collectionService, vehicleService, areaRuleService, wasteTypeService, log)
	router := httphandler.NewRouter(handler, cfg.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Str("geocoder", cfg.Geocoding.Provider).Msg("starting dispatch service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
