package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	api "github.com/mind-engage/imuno/internal/api/http"
	"github.com/mind-engage/imuno/internal/bank"
	"github.com/mind-engage/imuno/internal/config"
	"github.com/mind-engage/imuno/internal/content"
	"github.com/mind-engage/imuno/internal/db"
	"github.com/mind-engage/imuno/internal/exam"
	"github.com/mind-engage/imuno/internal/grading"
	"github.com/mind-engage/imuno/internal/session"
	"github.com/mind-engage/imuno/internal/storage"
)

func main() {
	if err := godotenv.Load(); err != nil {
		config.Logger.Debug("no .env file found, relying on environment")
	}
	cfg := config.FromEnv()
	config.InitLogger(cfg)
	log := config.Logger

	// --- Content source ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		src storage.Source
		dbh *sql.DB
		err error
	)
	switch cfg.ContentSource {
	case config.SourceHTTP:
		src = storage.NewHTTPSource(cfg.ContentBaseURL, &http.Client{Timeout: cfg.FetchTimeout})
	case config.SourceSQL:
		dbh, err = db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
		if err != nil {
			log.Fatalf("db open failed: %v", err)
		}
		defer dbh.Close()
		src = storage.NewSQLSource(dbh)
	default:
		src, err = storage.NewFSSource(cfg.ContentDir)
		if err != nil {
			log.Fatalf("content dir: %v", err)
		}
	}

	var cache api.Invalidator
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Warn("redis unreachable, cache will fall through to the content source")
		}
		rc := storage.NewRedisCache(rdb, src, cfg.CacheTTL)
		src, cache = rc, rc
	}

	// --- Question bank ---
	repo := bank.NewRepository()
	loader := content.NewLoader(src)
	if err := loader.LoadBank(ctx, repo); err != nil {
		if cfg.RequireBank {
			log.Fatalf("question bank: %v", err)
		}
		log.WithError(err).Error("question bank not loaded; exams stay empty until POST /bank/reload")
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	sessions := session.NewInMemoryStore(grading.NewDefaultGrader(),
		session.WithTTL(cfg.SessionTTL),
		session.WithMaxSessions(cfg.MaxSessions),
	)
	api.Mount(r, api.Deps{
		Bank:     repo,
		Source:   src,
		Loader:   loader,
		Builder:  exam.NewBuilder(nil),
		Sessions: sessions,
		Cache:    cache,
		ExamSize: cfg.ExamSize,
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	log.Infof("listening on %s (source=%s, questions=%d)", cfg.HTTPAddr, cfg.ContentSource, repo.Len())
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
