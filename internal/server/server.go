// Package server boots the application: config, database, cache, log sinks,
// and the HTTP kernel with its middleware chain.
package server

import (
	"net/http"
	"time"

	"github.com/vendora/vendora/app/repositories"
	"github.com/vendora/vendora/app/routes"
	"github.com/vendora/vendora/config"
	"github.com/vendora/vendora/pkg/cache"
	"github.com/vendora/vendora/pkg/database"
	"github.com/vendora/vendora/pkg/logger"
	"github.com/vendora/vendora/pkg/metrics"
	"github.com/vendora/vendora/pkg/middleware"
	"github.com/vendora/vendora/pkg/reqid"
	"github.com/vendora/vendora/pkg/router"
	"github.com/vendora/vendora/pkg/tenant"
	"gorm.io/gorm"
)

func Start() error {
	if err := config.Load(); err != nil {
		return err
	}

	if err := database.Connect(); err != nil {
		return err
	}

	// Cache and Mongo sink are optional: resolution falls back to the
	// database and logs still go to stdout.
	if err := cache.Connect(); err != nil {
		logger.Warn("cache unavailable, tenant lookups go straight to the database", "error", err.Error())
	}
	if uri := config.LogMongoURI(); uri != "" {
		mh, err := logger.EnableMongoSink(uri)
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err.Error())
		} else {
			defer mh.Close()
		}
	}

	addr := ":" + config.AppPort()
	logger.Info("vendora listening", "addr", addr, "env", config.AppEnv())

	srv := &http.Server{
		Addr:              addr,
		Handler:           Kernel(database.DB),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Kernel builds the router with the full middleware chain. Split out from
// Start so tests can exercise the whole HTTP surface via httptest.
func Kernel(db *gorm.DB) http.Handler {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))
	r.Use(tenant.Middleware(repositories.NewVendorRepository(db)))
	r.Use(middleware.Identity(repositories.NewUserRepository(db)))

	r.Get("/metrics", "metrics", metrics.Handler())

	routes.RegisterAPI(r, db)

	return r.Handler()
}

// Routes builds the route table without the middleware chain. Used by the
// route:list command.
func Routes(db *gorm.DB) []router.RouteInfo {
	r := router.New()
	routes.RegisterAPI(r, db)
	return r.Routes()
}
