package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/rentalbackend/catalog"
	"github.com/princinho/rentalbackend/config"
	"github.com/princinho/rentalbackend/controllers"
	"github.com/princinho/rentalbackend/database"
	"github.com/princinho/rentalbackend/middleware"
	"github.com/princinho/rentalbackend/storage"
	"github.com/princinho/rentalbackend/utils"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := config.NewLogger("info")

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}
	logger = config.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := database.Open(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open store")
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.WithError(err).Warn("Failed to close store")
		}
	}()

	if err := database.Seed(ctx, store, logger); err != nil {
		logger.WithError(err).Fatal("Failed to seed store")
	}
	//seeding admin user
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		logger.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
	} else if err := database.SeedAdminUser(ctx, store, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
		logger.WithError(err).Fatal("Failed to seed admin user")
	}

	table, err := catalog.LoadTable(cfg.VirtualGroupsFile)
	if err != nil {
		logger.WithError(err).Fatal("Failed to load virtual group table")
	}
	logger.WithFields(logrus.Fields{
		"version": table.Version,
		"groups":  len(table.Groups),
	}).Info("Virtual group table loaded")

	blobs, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open blob storage")
	}
	if closer, ok := blobs.(io.Closer); ok {
		defer closer.Close()
	}

	app := &controllers.App{
		Store:     store,
		Blobs:     blobs,
		Resolver:  catalog.NewResolver(table),
		Validator: utils.NewFileValidator(cfg.AllowedFileExtensions, cfg.AllowedFileMimeTypes, cfg.MaxUploadSizeMB),
		Log:       logger,
		Cfg:       cfg,
	}

	r := gin.New()

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	logger.WithField("origins", cfg.AllowedOrigins).Info("CORS configured")
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			allowed := allowedOrigins[origin]
			logger.WithFields(logrus.Fields{"origin": origin, "allowed": allowed}).Debug("CORS check")
			return allowed
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = int64(cfg.MaxUploadSizeMB) << 20

	if local, ok := blobs.(*storage.LocalStore); ok {
		r.Static(local.URLPrefix(), local.Dir())
	}

	app.RegisterRoutes(r)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		logger.WithField("port", cfg.Port).Info("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Graceful shutdown failed")
	}
}
