// Command server runs the training-center site API: public content,
// certificate verification and downloads, and the admin panel API.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"sanad/internal/admin"
	"sanad/internal/auth"
	"sanad/internal/blob"
	"sanad/internal/certificate"
	contenthandler "sanad/internal/content/handler"
	contentmodels "sanad/internal/content/models"
	contentservice "sanad/internal/content/service"
	contentstore "sanad/internal/content/store"
	httpapi "sanad/internal/http"
	"sanad/internal/platform/config"
	"sanad/internal/platform/httpserver"
	"sanad/internal/platform/logger"
	"sanad/internal/platform/metrics"
	platformredis "sanad/internal/platform/redis"
	"sanad/internal/ratelimit"
	settingshandler "sanad/internal/settings/handler"
	settingsservice "sanad/internal/settings/service"
	settingsstore "sanad/internal/settings/store"
	studenthandler "sanad/internal/student/handler"
	studentservice "sanad/internal/student/service"
	studentstore "sanad/internal/student/store"
	"sanad/internal/verification"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.IsProduction())

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	m := metrics.New()
	health := map[string]httpapi.HealthChecker{}

	stores, db, uploadsDir, blobs, err := buildStorage(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		health["postgres"] = dbHealth{db}
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	var bucketStore ratelimit.BucketStore = ratelimit.NewInMemoryBucketStore()
	if redisClient != nil {
		defer redisClient.Close()
		health["redis"] = redisClient
		bucketStore = ratelimit.NewRedisBucketStore(redisClient)
	}
	verifyLimiter := ratelimit.Middleware(bucketStore, cfg.VerifyRateLimitPerMin, time.Minute, log)

	jwtService := auth.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.AccessTTL)
	authService := auth.New(cfg.AdminEmail, cfg.AdminPassword, jwtService, auth.WithLogger(log))

	studentService := studentservice.New(stores.students, blobs,
		studentservice.WithLogger(log),
		studentservice.WithMetrics(m),
	)
	settingsService := settingsservice.New(stores.settings, settingsservice.WithLogger(log))
	verifyService := verification.New(studentService,
		verification.WithLogger(log),
		verification.WithMetrics(m),
	)

	fetcher := certificate.NewAssetFetcher(blobs)
	composer := certificate.NewComposer(fetcher, cfg.BaseURL,
		certificate.WithLogger(log),
		certificate.WithMetrics(m),
		certificate.WithFontPath(cfg.FontPath),
	)
	certService := certificate.NewService(studentService, settingsService, composer, fetcher,
		certificate.WithServiceLogger(log),
		certificate.WithServiceMetrics(m),
	)

	slides := contentservice.New("slides", stores.slides, log)
	notices := contentservice.New("notices", stores.notices, log)
	trainers := contentservice.New("trainers", stores.trainers, log)
	courses := contentservice.New("courses", stores.courses, log)
	gallery := contentservice.New("gallery", stores.gallery, log)
	videos := contentservice.New("videos", stores.videos, log)
	trainings := contentservice.New("trainings", stores.trainings, log)

	dashboard := admin.NewDashboard(map[string]admin.Counter{
		"students":  studentService,
		"slides":    slides,
		"notices":   notices,
		"trainers":  trainers,
		"courses":   courses,
		"gallery":   gallery,
		"videos":    videos,
		"trainings": trainings,
	}, log)

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:        log,
		Auth:          auth.NewHandler(authService, log),
		Verification:  verification.NewHandler(verifyService, log),
		Certificates:  certificate.NewHandler(certService, log),
		Students:      studenthandler.New(studentService, log),
		Settings:      settingshandler.New(settingsService, log),
		Dashboard:     dashboard,
		TokenVerifier: jwtService,
		VerifyLimiter: verifyLimiter,
		UploadsDir:    uploadsDir,
		HealthChecks:  health,
		Collections: []httpapi.CollectionHandler{
			contenthandler.New[contentmodels.Slide]("slides", slides, log),
			contenthandler.New[contentmodels.Notice]("notices", notices, log),
			contenthandler.New[contentmodels.Trainer]("trainers", trainers, log),
			contenthandler.New[contentmodels.Course]("courses", courses, log),
			contenthandler.New[contentmodels.GalleryItem]("gallery", gallery, log),
			contenthandler.New[contentmodels.Video]("videos", videos, log),
			contenthandler.New[contentmodels.TrainingItem]("trainings", trainings, log),
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting server",
		"addr", cfg.Addr,
		"env", cfg.Env,
		"storage", cfg.StorageBackend,
		"redis", redisClient != nil,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// storeSet bundles one store per persisted collection, all on the same
// backend.
type storeSet struct {
	students studentservice.StudentStore
	settings settingsservice.SettingsStore

	slides    contentstore.Store[contentmodels.Slide]
	notices   contentstore.Store[contentmodels.Notice]
	trainers  contentstore.Store[contentmodels.Trainer]
	courses   contentstore.Store[contentmodels.Course]
	gallery   contentstore.Store[contentmodels.GalleryItem]
	videos    contentstore.Store[contentmodels.Video]
	trainings contentstore.Store[contentmodels.TrainingItem]
}

// buildStorage selects the persistence backend. The returned *sql.DB is nil
// unless the backend is postgres; uploadsDir is empty when uploads are not
// file-backed.
func buildStorage(cfg config.Server) (*storeSet, *sql.DB, string, blob.Store, error) {
	switch cfg.StorageBackend {
	case "memory":
		return &storeSet{
			students:  studentstore.NewInMemoryStore(),
			settings:  settingsstore.NewInMemoryStore(),
			slides:    contentstore.NewInMemoryStore[contentmodels.Slide](),
			notices:   contentstore.NewInMemoryStore[contentmodels.Notice](),
			trainers:  contentstore.NewInMemoryStore[contentmodels.Trainer](),
			courses:   contentstore.NewInMemoryStore[contentmodels.Course](),
			gallery:   contentstore.NewInMemoryStore[contentmodels.GalleryItem](),
			videos:    contentstore.NewInMemoryStore[contentmodels.Video](),
			trainings: contentstore.NewInMemoryStore[contentmodels.TrainingItem](),
		}, nil, "", blob.NewDataURIStore(), nil

	case "file":
		students, err := studentstore.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, "", nil, err
		}
		settings, err := settingsstore.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, "", nil, err
		}
		set := &storeSet{students: students, settings: settings}
		if set.slides, err = contentstore.NewFileStore[contentmodels.Slide](cfg.DataDir, "slides"); err != nil {
			return nil, nil, "", nil, err
		}
		if set.notices, err = contentstore.NewFileStore[contentmodels.Notice](cfg.DataDir, "notices"); err != nil {
			return nil, nil, "", nil, err
		}
		if set.trainers, err = contentstore.NewFileStore[contentmodels.Trainer](cfg.DataDir, "trainers"); err != nil {
			return nil, nil, "", nil, err
		}
		if set.courses, err = contentstore.NewFileStore[contentmodels.Course](cfg.DataDir, "courses"); err != nil {
			return nil, nil, "", nil, err
		}
		if set.gallery, err = contentstore.NewFileStore[contentmodels.GalleryItem](cfg.DataDir, "gallery"); err != nil {
			return nil, nil, "", nil, err
		}
		if set.videos, err = contentstore.NewFileStore[contentmodels.Video](cfg.DataDir, "videos"); err != nil {
			return nil, nil, "", nil, err
		}
		if set.trainings, err = contentstore.NewFileStore[contentmodels.TrainingItem](cfg.DataDir, "trainings"); err != nil {
			return nil, nil, "", nil, err
		}
		blobs, err := blob.NewLocalStore(cfg.DataDir)
		if err != nil {
			return nil, nil, "", nil, err
		}
		return set, nil, blobs.Dir(), blobs, nil

	case "postgres":
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			return nil, nil, "", nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, nil, "", nil, err
		}
		blobs, err := blob.NewLocalStore(cfg.DataDir)
		if err != nil {
			return nil, nil, "", nil, err
		}
		return &storeSet{
			students:  studentstore.NewPostgresStore(db),
			settings:  settingsstore.NewPostgresStore(db),
			slides:    contentstore.NewPostgresStore[contentmodels.Slide](db, "slides"),
			notices:   contentstore.NewPostgresStore[contentmodels.Notice](db, "notices"),
			trainers:  contentstore.NewPostgresStore[contentmodels.Trainer](db, "trainers"),
			courses:   contentstore.NewPostgresStore[contentmodels.Course](db, "courses"),
			gallery:   contentstore.NewPostgresStore[contentmodels.GalleryItem](db, "gallery"),
			videos:    contentstore.NewPostgresStore[contentmodels.Video](db, "videos"),
			trainings: contentstore.NewPostgresStore[contentmodels.TrainingItem](db, "trainings"),
		}, db, blobs.Dir(), blobs, nil

	default:
		return nil, nil, "", nil, errors.New("unknown storage backend: " + cfg.StorageBackend)
	}
}

type dbHealth struct {
	db *sql.DB
}

func (h dbHealth) Health(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
