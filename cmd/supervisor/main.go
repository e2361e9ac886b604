package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jmas/supervisor-core/internal/connection"
	"github.com/jmas/supervisor-core/internal/events"
	"github.com/jmas/supervisor-core/internal/models"
	"github.com/jmas/supervisor-core/internal/monitor"
	"github.com/jmas/supervisor-core/internal/registry"
	"github.com/jmas/supervisor-core/internal/utils"
	"github.com/jmas/supervisor-core/pkg/file"
	"github.com/jmas/supervisor-core/pkg/geocode"
	"github.com/jmas/supervisor-core/pkg/mqtt"
)

func main() {
	// Set up structured logging with JSON output
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "supervisor-core").Logger()

	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	// Load configuration from file
	fileClient := file.NewFileService()
	config, err := utils.LoadConfig(configPath, fileClient)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Reverse geocoding is optional; without it the core falls back to
	// raw coordinates.
	var provider geocode.Provider
	if config.Geocode.Enabled && config.Geocode.MapsAPIKey != "" {
		googleProvider, err := geocode.NewGoogleProvider(config.Geocode.MapsAPIKey)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize geocoding provider, using raw coordinates")
		} else {
			provider = googleProvider
		}
	}

	pool := utils.NewWorkerPool(config.Geocode.Workers)
	resolver := geocode.NewResolver(provider, pool,
		time.Duration(config.Geocode.RequestTimeout)*time.Second, logger)

	deviceRegistry := registry.New(logger)

	// The sink is where the presentation layer would plug in; this
	// binary just logs every event.
	sink := &events.Sink{
		OnLocationUpdate: func(d models.Device) {
			logger.Info().
				Str("tablet_id", d.ID).
				Float64("lat", d.Latitude).
				Float64("lon", d.Longitude).
				Str("status", d.Status).
				Msg("Location update")
		},
		OnAlertReceived: func(a models.AlertReport) {
			logger.Warn().
				Str("tablet_id", a.TabletID).
				Str("type", a.Type).
				Str("message", a.Message).
				Msg("Alert received")
		},
		OnConnectionChanged: func(connected bool) {
			logger.Info().Bool("connected", connected).Msg("Broker connection changed")
		},
	}

	healthMonitor := monitor.New(
		time.Duration(config.Monitor.Interval)*time.Second,
		time.Duration(config.Monitor.Timeout)*time.Second,
		time.Duration(config.Monitor.StationaryAfter)*time.Second,
		config.Monitor.MovementThresholdM,
		deviceRegistry,
		sink,
		logger,
	)

	manager := connection.NewManager(connection.Options{
		Broker:         config.MQTT.Broker,
		ClientIDPrefix: config.MQTT.ClientID,
		QOS:            config.MQTT.QOS,
		CleanSession:   config.MQTT.CleanSession,
		ConnectTimeout: time.Duration(config.MQTT.ConnectTimeout) * time.Second,
		RetryDelay:     time.Duration(config.MQTT.RetryDelay) * time.Second,
		LocationTopic:  config.MQTT.LocationTopic,
		AlertTopic:     config.MQTT.AlertTopic,
	}, mqtt.NewPahoClient, deviceRegistry, healthMonitor, resolver, sink, logger)

	manager.Connect()
	logger.Info().Str("broker", config.MQTT.Broker).Msg("Supervisor core started")

	// Handle graceful shutdown
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)
	<-stopCh

	logger.Info().Msg("Shutting down gracefully...")
	manager.Disconnect()
	pool.Shutdown()
}
