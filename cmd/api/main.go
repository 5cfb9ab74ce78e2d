package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/akarlsen/connwatch/internal/config"
	"github.com/akarlsen/connwatch/internal/domain"
	"github.com/akarlsen/connwatch/internal/httpapi"
	"github.com/akarlsen/connwatch/internal/logging"
	"github.com/akarlsen/connwatch/internal/notify"
	"github.com/akarlsen/connwatch/internal/repo"
	"github.com/akarlsen/connwatch/internal/repo/csvfile"
	"github.com/akarlsen/connwatch/internal/repo/memory"
	"github.com/akarlsen/connwatch/internal/repo/postgres"
	"github.com/akarlsen/connwatch/internal/watch"
)

func main() {
	cfgPath := flag.String("config", "", "path to monitor_config.ini (searches the working directory when empty)")
	source := flag.String("source", "auto", "record source: auto, csv, postgres or none (empty in-memory store)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(cfg.Monitor.LogDir, cfg.Logging.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	meta := domain.Metadata{Location: cfg.Monitor.LocationName, Timezone: cfg.Monitor.Timezone}

	kind := *source
	if kind == "auto" {
		kind = "csv"
		if cfg.Server.DatabaseURL != "" {
			kind = "postgres"
		}
	}

	var (
		records repo.RecordSource
		metaSrc repo.MetadataSource
	)
	switch kind {
	case "postgres":
		if cfg.Server.DatabaseURL == "" {
			log.Fatal("-source postgres needs server.database_url")
		}
		pg, err := postgres.New(context.Background(), cfg.Server.DatabaseURL, meta, logger)
		if err != nil {
			logger.Fatal("postgres_connect_failed", zap.Error(err))
		}
		defer pg.Close()
		records, metaSrc = pg, pg
		logger.Info("record_source", zap.String("kind", "postgres"))
	case "csv":
		cs := csvfile.New(cfg.Monitor.LogDir, meta, logger)
		records, metaSrc = cs, cs
		logger.Info("record_source",
			zap.String("kind", "csv"), zap.String("dir", cfg.Monitor.LogDir))
	case "none":
		mem := memory.New()
		mem.SetMetadata(meta)
		records, metaSrc = mem, mem
		logger.Info("record_source", zap.String("kind", "memory"))
	default:
		log.Fatalf("unknown -source %q (auto, csv, postgres, none)", kind)
	}

	if hook := cfg.Server.SlackWebhook; hook != "" {
		w := watch.New(logger, records, notify.Multi{notify.NewSlack(hook)},
			cfg.Monitor.LocationName, cfg.Server.NotifyPoll, cfg.Server.NotifyCooldown)
		go w.Run(context.Background())
	}

	api := httpapi.NewServer(logger, records, metaSrc)
	api.PushInterval = cfg.Server.PushInterval

	handler := api.Router(httpapi.RouterOptions{
		APIKeys:        cfg.Server.APIKeys,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimitRPM:   cfg.Server.RateLimitRPM,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	logger.Info("api_listen", zap.String("addr", cfg.Server.Addr))
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		log.Fatal(err)
	}
}
