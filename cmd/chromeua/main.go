// Command chromeua serves realistic Chrome request headers over HTTP.
//
// Configuration comes from the environment (and ./.env):
//
//	APP_ENV              development (text, debug logs) or production (json, info)
//	LOG_LEVEL            overrides the level implied by APP_ENV
//	LOG_FORMAT           overrides the format implied by APP_ENV: text or json
//	HTTP_ADDR            listen address, default :8080
//	HTTP_*_TIMEOUT       READ, WRITE, IDLE and SHUTDOWN server timeouts
//	CHROMEUA_DATA_FILE   optional YAML/JSON registry file
//	CHROMEUA_WATCH       reload CHROMEUA_DATA_FILE when it changes
//	CHROMEUA_CACHE_SIZE  header cache bound, default 1024
//	CHROMEUA_ALLOW_UPDATES  mount PUT /registry
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/macwinua/pkg/chromeua"
	"github.com/dmitrymomot/macwinua/pkg/config"
	"github.com/dmitrymomot/macwinua/pkg/httpserver"
	"github.com/dmitrymomot/macwinua/pkg/logger"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	LogLevel     string `env:"LOG_LEVEL"`
	LogFormat    string `env:"LOG_FORMAT"`
	AllowUpdates bool   `env:"CHROMEUA_ALLOW_UPDATES" envDefault:"false"`
	HTTP         httpserver.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	var uaCfg chromeua.Config
	config.MustLoad(&uaCfg, config.WithPrefix("CHROMEUA_"))

	logOpts := []logger.Option{logger.WithEnvironment(cfg.Env, "chromeua")}
	if cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevelName(cfg.LogLevel))
	}
	if cfg.LogFormat != "" {
		logOpts = append(logOpts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	log := logger.New(logOpts...)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, uaCfg, log); err != nil {
		log.Error("chromeua stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig, uaCfg chromeua.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ua, err := chromeua.NewFromConfig(uaCfg,
		chromeua.WithLogger(log.With(logger.Component("chromeua"))),
		chromeua.WithMetrics(chromeua.NewMetrics(reg)),
	)
	if err != nil {
		return err
	}

	if uaCfg.Watch && uaCfg.DataFile != "" {
		w, err := chromeua.NewWatcher(ua, uaCfg.DataFile)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	for _, f := range ua.Audit() {
		log.Warn("registry audit finding", slog.Int("index", f.Index), slog.String("problem", f.Problem))
	}
	log.Info("registry loaded",
		logger.Revision(ua.Revision()),
		logger.Count("agents", ua.Len()),
	)

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(ua, reg, cfg.AllowUpdates, log))
}

var errNoAgents = errors.New("registry has no agents")

func newRouter(ua *chromeua.ChromeUA, reg *prometheus.Registry, allowUpdates bool, log *slog.Logger) http.Handler {
	var opts []chromeua.HandlerOption
	if allowUpdates {
		opts = append(opts, chromeua.WithUpdateRoute())
	}

	r := chi.NewRouter()
	r.Get("/healthz", httpserver.HealthCheckHandler(log))
	r.Get("/readyz", httpserver.HealthCheckHandler(log, func(context.Context) error {
		if ua.Len() == 0 {
			return errNoAgents
		}
		return nil
	}))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Mount("/", chromeua.NewHandler(ua, opts...))
	return r
}
