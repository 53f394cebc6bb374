package main

import (
	"sitesearch/internal/metrics"
	"sitesearch/internal/searchclient"
	"sitesearch/internal/web"
	"sitesearch/pkg/config"
	"sitesearch/pkg/logger"
	"sitesearch/pkg/server"
)

func main() {
	l := logger.NewWithService("web")
	config.LoadEnv(l)

	backend := config.GetEnv("SEARCH_BACKEND_URL", searchclient.DefaultEndpoint)
	client := searchclient.New(backend, searchclient.WithLogger(l))

	reg := server.NewRegistry()
	router := server.NewRouter(l, "web", reg)
	web.NewHandler(client, l, metrics.NewWeb(reg)).Register(router)

	l.WithField("backend", backend).Info("search backend configured")
	if err := server.Run(server.DefaultConfig("web", "3000"), router, l); err != nil {
		l.WithError(err).Fatal("server error")
	}
}
