// cmd/preflight/main.go
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/akarlsen/connwatch/internal/config"
)

func main() {
	cfgPath := flag.String("config", "", "path to monitor_config.ini (searches the working directory when empty)")
	flag.Parse()

	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fail("config: " + err.Error())
	}
	ok("config loaded")

	info, err := os.Stat(cfg.Monitor.LogDir)
	switch {
	case err != nil:
		warn("log dir " + cfg.Monitor.LogDir + " does not exist; has the prober run yet?")
	case !info.IsDir():
		fail("log dir " + cfg.Monitor.LogDir + " is a file, not a directory.")
	default:
		ok("log dir " + cfg.Monitor.LogDir)
	}

	if cfg.Server.DatabaseURL != "" {
		ok("database_url present; CSV files will be ignored")
	} else {
		for _, name := range []string{"connectivity.csv", "speedtest.csv", "events.csv"} {
			p := filepath.Join(cfg.Monitor.LogDir, name)
			if _, err := os.Stat(p); err != nil {
				warn(name + " missing; endpoints will report empty data until the prober writes it.")
			} else {
				ok(name + " present")
			}
		}
	}

	if len(cfg.Server.APIKeys) == 0 {
		warn("server.api_keys empty; the API will accept unauthenticated requests.")
	} else {
		ok(fmt.Sprintf("%d API key(s) configured", len(cfg.Server.APIKeys)))
	}

	if len(cfg.Server.AllowedOrigins) == 0 {
		warn("server.allowed_origins empty; CORS will allow any origin.")
	} else {
		ok("allowed_origins configured")
	}

	ok("listen addr " + cfg.Server.Addr)
	ok("preflight passed")
}
