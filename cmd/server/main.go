package main

import (
	"time"

	"sitesearch/internal/crawler"
	"sitesearch/internal/metrics"
	"sitesearch/internal/middleware"
	"sitesearch/internal/searchapi"
	"sitesearch/pkg/config"
	"sitesearch/pkg/logger"
	"sitesearch/pkg/server"
)

func main() {
	l := logger.NewWithService("search-backend")
	config.LoadEnv(l)

	fetchTimeout := config.GetEnvDuration("FETCH_TIMEOUT", 10*time.Second)
	client := crawler.NewHTTPClient(
		fetchTimeout,
		5*time.Second,
		config.GetEnvInt64("FETCH_MAX_BYTES", 5*1024*1024), // 5MB cap
		crawler.WithRateLimit(config.GetEnvFloat("FETCH_RATE_LIMIT", 0)),
	)

	reg := server.NewRegistry()
	router := server.NewRouter(l, "search-backend", reg)
	router.Use(middleware.CORS(config.GetEnv("SEARCH_ALLOWED_ORIGIN", "http://localhost:3000")))

	h := searchapi.NewHandler(client, config.GetEnvInt("SEARCH_RESULT_LIMIT", searchapi.DefaultLimit), fetchTimeout, l, metrics.NewBackend(reg))
	h.Register(router)

	if err := server.Run(server.DefaultConfig("search-backend", "8000"), router, l); err != nil {
		l.WithError(err).Fatal("server error")
	}
}
