package main

import (
	"clubcal/cmd/internal/config"
	"clubcal/cmd/internal/domain/sqlite"
	"clubcal/cmd/internal/domain/sqlite/repository"
	"clubcal/cmd/internal/ical"
	"clubcal/cmd/internal/metrics"
	"clubcal/cmd/internal/routes"
	"clubcal/cmd/internal/service"
	"clubcal/cmd/internal/utils/validators"
	"flag"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to the YAML config file (optional)")
	flag.Parse()

	validate := validator.New()
	validators.Register(validate)

	conf, err := config.Load(*configPath, validate)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}
	log.SetLevel(parseLevel(conf.LogLevel))

	// Init SQLite
	db, err := sqlite.Init(conf.DatabasePath)
	if err != nil {
		log.Fatal("failed to initialize database: ", err)
	}

	// Getting repositories
	userRepo := repository.NewUserRepository(db)
	apptRepo := repository.NewAppointmentRepository(db)

	// Calendar rendering
	generator := ical.NewGenerator(conf.ProductID, time.Now)
	generator.LegacyTimestamps = conf.LegacyTimestamps

	// Getting services
	feedService := service.NewFeedService(apptRepo, userRepo, generator)
	prefsService := service.NewPreferencesService(userRepo, validate, conf.PublicOrigin)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	router := &routes.Router{
		Feed:        routes.NewFeedDefault(feedService, conf.ProductID, m),
		Preferences: routes.NewPreferencesDefault(prefsService),
		Metrics:     m,
		Gatherer:    registry,
		JWTSecret:   []byte(conf.JWTSecret),
	}

	e := router.Echo()
	e.Logger.SetLevel(parseLevel(conf.LogLevel))

	log.Infof("serving calendar feeds on %s", conf.Listen)
	err = e.Start(conf.Listen)
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func parseLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
