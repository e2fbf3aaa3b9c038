package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/Ubaid075/DOT-AI/internal/admin"
	"github.com/Ubaid075/DOT-AI/internal/config"
	"github.com/Ubaid075/DOT-AI/internal/feed"
	"github.com/Ubaid075/DOT-AI/internal/platform"
	"github.com/Ubaid075/DOT-AI/internal/provider"
	"github.com/Ubaid075/DOT-AI/internal/repository"
	"github.com/Ubaid075/DOT-AI/internal/storage"
	"github.com/Ubaid075/DOT-AI/internal/store"
	"github.com/Ubaid075/DOT-AI/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logr := logger.New(slog.LevelInfo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		durable store.Store
		changes platform.PubSub
	)
	switch cfg.StoreBackend {
	case "mysql":
		db, err := store.OpenMySQL(cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("mysql store: %v", err)
		}
		defer db.Close()
		durable = db
		changes = feed.NewBus()
	case "redis":
		client, err := store.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("redis connect: %v", err)
		}
		defer client.Close()
		durable = store.NewRedis(client)
		redisFeed := feed.NewRedis(client, logr)
		defer redisFeed.Close()
		changes = redisFeed
	default:
		files, err := store.NewFile(cfg.StoreDir)
		if err != nil {
			log.Fatalf("file store: %v", err)
		}
		durable = files
		changes = feed.NewBus()
	}

	core := platform.New(platform.Options{
		Durable:        durable,
		Session:        store.NewMemory(),
		Feed:           changes,
		Admin:          repository.BootstrapAdmin{Email: cfg.AdminEmail, Password: cfg.AdminPassword},
		SignupCredits:  cfg.SignupCredits,
		GenerationCost: cfg.CreditsPerGeneration,
		Latency:        cfg.SimulatedLatency,
		Log:            logr,
	})
	defer core.Close()

	// The ops surface acts through the platform as the bootstrap admin;
	// basic auth on the HTTP layer gates who reaches it.
	if _, err := core.Login(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("admin login: %v", err)
	}

	var images admin.Generator
	if cfg.ProviderAPIKey != "" {
		images = provider.NewClient(cfg.ProviderAPIKey, cfg.ProviderBaseURL, cfg.RequestTimeout, logr)
	} else {
		logr.Warn("PROVIDER_API_KEY not set, generation endpoint disabled")
	}

	var uploader *storage.Uploader
	if cfg.S3Configured() {
		uploader, err = storage.NewUploader(storage.Config{
			Endpoint:      cfg.S3Endpoint,
			Region:        cfg.S3Region,
			AccessKey:     cfg.S3AccessKey,
			SecretKey:     cfg.S3SecretKey,
			Bucket:        cfg.S3Bucket,
			PublicBaseURL: cfg.S3PublicBaseURL,
			UsePathStyle:  cfg.S3UsePathStyle,
			Prefix:        cfg.S3Prefix,
		})
		if err != nil {
			log.Fatalf("storage uploader: %v", err)
		}
	} else {
		logr.Info("object storage not configured, keeping provider urls")
	}

	server := admin.NewServer(cfg.ListenAddr, cfg.OpsUsername, cfg.OpsPassword, logr, core, images, uploader)
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logr.Error("ops server stopped", "err", err)
	}
}
