package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/salamraya/iqjan-bot/internal/api"
)

func setupRouter(handler api.ServerInterface) http.Handler {
	r := chi.NewRouter()

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Serve OpenAPI spec
	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, "api/openapi.yaml")
	})

	// Mount API routes
	r.Mount("/", api.Handler(handler))

	return r
}
