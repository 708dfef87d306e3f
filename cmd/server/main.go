package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/event"
	"github.com/khoahotran/portfolio/adapters/github_contents"
	httpAdapter "github.com/khoahotran/portfolio/adapters/http"
	"github.com/khoahotran/portfolio/adapters/media_storage"
	"github.com/khoahotran/portfolio/adapters/persistence"
	"github.com/khoahotran/portfolio/internal/application/service"
	authUC "github.com/khoahotran/portfolio/internal/application/usecase/auth"
	"github.com/khoahotran/portfolio/internal/application/usecase/backup"
	contactUC "github.com/khoahotran/portfolio/internal/application/usecase/contact"
	"github.com/khoahotran/portfolio/internal/application/usecase/editor"
	feedUC "github.com/khoahotran/portfolio/internal/application/usecase/feed"
	"github.com/khoahotran/portfolio/internal/application/usecase/history"
	mediaUC "github.com/khoahotran/portfolio/internal/application/usecase/media"
	"github.com/khoahotran/portfolio/internal/application/usecase/publish"
	"github.com/khoahotran/portfolio/internal/application/usecase/state"
	"github.com/khoahotran/portfolio/internal/codec"
	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/defaults"
	domainEvent "github.com/khoahotran/portfolio/internal/domain/event"
	"github.com/khoahotran/portfolio/internal/domain/storage"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
	"github.com/khoahotran/portfolio/pkg/tracing"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting portfolio API server...", zap.String("env", cfg.App.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	tp, err := tracing.NewTracerProvider(cfg, appLogger, "portfolio-api")
	if err != nil {
		appLogger.Fatal("Cannot init tracer provider", err)
	}
	if tp != nil {
		defer tp.Shutdown(context.Background())
	}

	// Database (optional; required for the postgres driver and for history)
	var dbPool *pgxpool.Pool
	if cfg.DB.DSN != "" {
		if err := persistence.RunMigrations(cfg.DB.Migrations, cfg.DB.DSN, appLogger); err != nil {
			appLogger.Fatal("Cannot run migrations", err)
		}
		dbPool, err = persistence.NewPostgresPool(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Postgres", err)
		}
		defer dbPool.Close()
	}

	// Storage
	contentStorage, closeStorage := newStorage(ctx, cfg, dbPool, appLogger)
	defer closeStorage()

	// Events
	var publisher domainEvent.Publisher = event.NewLogPublisher(appLogger)
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	// State
	store := state.NewStore(contentStorage, defaults.MustLoad(), publisher, appLogger.Named("store"))
	store.Init(ctx)

	// Services
	jwtSecret := cfg.Auth.JWTSecret
	if jwtSecret == "" {
		appLogger.Warn("JWT_SECRET is empty, tokens will not survive a restart")
		jwtSecret = uuid.NewString()
	}
	jwtSvc := auth.NewJWTService(jwtSecret, cfg.Auth.TokenLifespan)
	verifier := newVerifier(cfg, appLogger)
	uploader := newUploader(cfg, appLogger)
	exportCodec, err := codec.New(cfg.Publish.Format)
	if err != nil {
		appLogger.Fatal("Invalid publish format", err)
	}
	contents, err := github_contents.NewContentsClient(cfg.Publish.GitHubAPI, &http.Client{Timeout: 30 * time.Second})
	if err != nil {
		appLogger.Fatal("Cannot init GitHub client", err)
	}

	// Use Cases
	sessions := authUC.NewSessionRegistry(cfg.Auth.TokenLifespan)
	workspaces := editor.NewWorkspaces()
	go sessions.RunSweeper(ctx, time.Minute, workspaces)
	loginUseCase := authUC.NewLoginUseCase(verifier, sessions, jwtSvc, appLogger)
	logoutUseCase := authUC.NewLogoutUseCase(sessions, workspaces, appLogger)
	exportUseCase := publish.NewExportUseCase(store, exportCodec, nil)
	configUseCase := publish.NewConfigUseCase(contentStorage, cfg.Publish.DefaultPath, appLogger)
	publishUseCase := publish.NewPublishUseCase(exportUseCase, configUseCase, contents, publish.NewStatusTracker(), publisher, appLogger.Named("publish"), nil)
	uploadUseCase := mediaUC.NewUploadUseCase(store, uploader, cfg.Cloudinary.Folder, cfg.Media.MaxImageWidth, cfg.Media.MaxResumeSize, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Auth:        httpAdapter.NewAuthHandler(loginUseCase, logoutUseCase, sessions, appLogger),
		Portfolio:   httpAdapter.NewPortfolioHandler(store, exportUseCase, appLogger),
		Profile:     httpAdapter.NewProfileHandler(editor.NewProfileEditor(store, workspaces), appLogger),
		Projects:    httpAdapter.NewProjectHandler(editor.NewProjectEditor(store, workspaces, nil), appLogger),
		Experiences: httpAdapter.NewExperienceHandler(editor.NewExperienceEditor(store, workspaces, nil), appLogger),
		Skills:      httpAdapter.NewSkillHandler(editor.NewSkillsEditor(store, workspaces), appLogger),
		Publish:     httpAdapter.NewPublishHandler(configUseCase, publishUseCase, appLogger),
		Media:       httpAdapter.NewMediaHandler(uploadUseCase, maxUpload(cfg), appLogger),
		Contact:     httpAdapter.NewContactHandler(contactUC.NewContactUseCase(store)),
		Feed:        httpAdapter.NewFeedHandler(feedUC.NewProjectsFeedUseCase(store, cfg.App.SiteURL, appLogger, nil), appLogger),
	}
	if dbPool != nil {
		handlers.History = httpAdapter.NewHistoryHandler(history.NewListHistoryUseCase(persistence.NewPostgresEventRepo(dbPool, appLogger)))
	}
	if cfg.Backup.Enabled {
		backupUseCase := backup.NewBackupUseCase(exportUseCase, uploader, appLogger.Named("backup"))
		handlers.Backup = httpAdapter.NewBackupHandler(backupUseCase)
		if cfg.Backup.Interval > 0 {
			go backupUseCase.RunEvery(ctx, cfg.Backup.Interval)
		}
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpAdapter.NewRouter(handlers, jwtSvc, sessions, appLogger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}
}

func newStorage(ctx context.Context, cfg config.Config, dbPool *pgxpool.Pool, log logger.Logger) (storage.Storage, func()) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		client, err := persistence.NewRedisClient(cfg, log)
		if err != nil {
			log.Fatal("Cannot connect Redis", err)
		}
		return persistence.NewRedisStorage(client, cfg.Redis.Namespace), func() { client.Close() }
	case config.StoragePostgres:
		if dbPool == nil {
			log.Fatal("Postgres storage needs DB_DSN", nil)
		}
		return persistence.NewPostgresStorage(dbPool), func() {}
	case config.StorageSQLite:
		db, err := persistence.NewSQLiteDB(cfg.Storage.SQLitePath, log)
		if err != nil {
			log.Fatal("Cannot open SQLite", err)
		}
		st, err := persistence.NewSQLiteStorage(ctx, db)
		if err != nil {
			log.Fatal("Cannot prepare SQLite storage", err)
		}
		return st, func() { db.Close() }
	case config.StorageMemory, "":
		log.Warn("Using in-memory storage, edits are lost on restart")
		return persistence.NewMemoryStorage(), func() {}
	}
	log.Fatal("Unknown storage driver", nil, zap.String("driver", cfg.Storage.Driver))
	return nil, nil
}

func newVerifier(cfg config.Config, log logger.Logger) service.CredentialVerifier {
	if cfg.Auth.PasswordHash != "" {
		return auth.NewHashVerifier(cfg.Auth.PasswordHash)
	}
	if cfg.Auth.Password == "" {
		log.Warn("No admin password configured, login is disabled")
	}
	return auth.NewStaticVerifier(cfg.Auth.Password)
}

func newUploader(cfg config.Config, log logger.Logger) service.Uploader {
	if cfg.Media.Uploader == "cloudinary" {
		u, err := media_storage.NewCloudinaryAdapter(cfg, log)
		if err != nil {
			log.Fatal("Failed to initialize uploader", err)
		}
		return u
	}
	return media_storage.NewDataURLAdapter()
}

// maxUpload is the largest body the media handler reads: enough for a large
// photo, and at least the resume limit.
func maxUpload(cfg config.Config) int64 {
	const photo = 20 << 20
	if cfg.Media.MaxResumeSize > photo {
		return cfg.Media.MaxResumeSize
	}
	return photo
}
