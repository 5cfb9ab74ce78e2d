package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/multierr"

	"github.com/akarlsen/connwatch/internal/config"
	"github.com/akarlsen/connwatch/internal/domain"
	"github.com/akarlsen/connwatch/internal/logging"
	"github.com/akarlsen/connwatch/internal/repo"
	"github.com/akarlsen/connwatch/internal/repo/csvfile"
	"github.com/akarlsen/connwatch/internal/repo/postgres"
	"github.com/akarlsen/connwatch/internal/report"
	"github.com/akarlsen/connwatch/internal/stats"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "path to monitor_config.ini (searches the working directory when empty)")
		hours   = flag.Int("hours", 24, "span of the hourly success-rate chart")
		outPath = flag.String("out", "", "report file (default: report_<timestamp>.txt in the log dir)")
		pngPath = flag.String("png", "", "also render an hourly success-rate chart to this PNG")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fatal("config:", err)
	}

	logger, err := logging.NewLogger(cfg.Monitor.LogDir, cfg.Logging.Level)
	if err != nil {
		fatal("logging:", err)
	}
	defer logger.Sync()

	meta := domain.Metadata{Location: cfg.Monitor.LocationName, Timezone: cfg.Monitor.Timezone}
	ctx := context.Background()

	var records repo.RecordSource
	if cfg.Server.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.Server.DatabaseURL, meta, logger)
		if err != nil {
			fatal("postgres:", err)
		}
		defer pg.Close()
		records = pg
	} else {
		records = csvfile.New(cfg.Monitor.LogDir, meta, logger)
	}

	conns, errConn := records.Connectivity(ctx)
	speeds, errSpeed := records.SpeedTests(ctx)
	events, errEvents := records.Events(ctx)
	if err := multierr.Combine(errConn, errSpeed, errEvents); err != nil {
		fatal("read records:", err)
	}

	now := time.Now()
	sum := report.Build(conns, speeds, events, cfg.Monitor.LocationName, now)

	path := *outPath
	if path == "" {
		path = filepath.Join(cfg.Monitor.LogDir, report.FileName(now))
	}
	f, err := os.Create(path)
	if err != nil {
		fatal("create report:", err)
	}
	if err := report.Render(f, sum); err != nil {
		f.Close()
		fatal("write report:", err)
	}
	if err := f.Close(); err != nil {
		fatal("write report:", err)
	}
	fmt.Println("Report written:", path)

	if *pngPath != "" {
		span := *hours
		if span > stats.MaxHourlySpan {
			span = stats.MaxHourlySpan
		}
		if err := report.Chart(*pngPath, stats.Hourly(conns, now, span)); err != nil {
			fatal("chart:", err)
		}
		fmt.Println("Chart written:", *pngPath)
	}
}

func fatal(prefix string, err error) {
	fmt.Fprintln(os.Stderr, prefix, err)
	os.Exit(1)
}
