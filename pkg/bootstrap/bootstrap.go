// Package bootstrap turns a config.Config into connected, ready-to-run
// components. Both the scheduled entry point and hackathonctl use it.
package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hackathon-radar/pkg/config"
	"hackathon-radar/pkg/db"
	"hackathon-radar/pkg/extraction"
	"hackathon-radar/pkg/logger"
	"hackathon-radar/pkg/normalize"
	"hackathon-radar/pkg/pipeline"
	"hackathon-radar/pkg/publish"
	"hackathon-radar/pkg/sources"
	"hackathon-radar/pkg/store"
)

// Store backends accepted by STORE_BACKEND and hackathonctl replicate.
const (
	BackendFile     = "file"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

var Backends = []string{BackendFile, BackendMongo, BackendPostgres, BackendSupabase, BackendSQLite, BackendRedis}

const connectTimeout = 30 * time.Second

// OpenStore connects the named backend. The returned close function is
// never nil.
func OpenStore(ctx context.Context, cfg config.Config, backend string, log *logger.Logger) (store.Store, func(), error) {
	noop := func() {}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch strings.ToLower(backend) {
	case BackendFile, "":
		return store.NewFileStore(cfg.DataPath), noop, nil

	case BackendMongo:
		client := db.NewMongoClient(db.MongoConfig{URI: cfg.MongoURI, Database: cfg.MongoDB, Collection: cfg.MongoCollection})
		if err := client.Connect(ctx); err != nil {
			return nil, noop, err
		}
		closeFn := func() { _ = client.Close(context.Background()) }
		s, err := store.NewMongoStore(client.Collection())
		if err != nil {
			closeFn()
			return nil, noop, err
		}
		return s, closeFn, nil

	case BackendPostgres:
		client := db.NewPostgresClient(db.PostgresConfig{DSN: cfg.PostgresDSN})
		if err := client.Connect(ctx); err != nil {
			return nil, noop, err
		}
		return sqlStore(client, "hackathons", BackendPostgres, func() { _ = client.Close() })

	case BackendSQLite:
		client := db.NewSQLiteClient(cfg.SQLitePath)
		if err := client.Connect(ctx); err != nil {
			return nil, noop, err
		}
		return sqlStore(client, "hackathons", BackendSQLite, func() { _ = client.Close() })

	case BackendSupabase:
		client := db.NewSupabaseClient(db.SupabaseConfig{
			SupabaseURL: cfg.SupabaseURL,
			SupabaseKey: cfg.SupabaseKey,
			Password:    cfg.SupabasePass,
		})
		if err := client.Connect(ctx); err != nil {
			return nil, noop, err
		}
		closeFn := func() { _ = client.Close() }
		if client.HasDirectDB() {
			return sqlStore(client, cfg.SupabaseTable, BackendSupabase, closeFn)
		}
		log.Info("supabase direct connection unavailable, using REST")
		s, err := store.NewSupabaseRESTStore(client.SDK(), cfg.SupabaseTable)
		if err != nil {
			closeFn()
			return nil, noop, err
		}
		return s, closeFn, nil

	case BackendRedis:
		client := db.NewRedisClient(db.RedisConfig{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err := client.Connect(ctx); err != nil {
			return nil, noop, err
		}
		closeFn := func() { _ = client.Close() }
		s, err := store.NewRedisStore(client.Client(), cfg.RedisKey, log)
		if err != nil {
			closeFn()
			return nil, noop, err
		}
		return s, closeFn, nil
	}
	return nil, noop, fmt.Errorf("unknown store backend %q (want one of %s)", backend, strings.Join(Backends, ", "))
}

func sqlStore(provider db.DBProvider, table, name string, closeFn func()) (store.Store, func(), error) {
	s, err := store.NewSQLStore(provider, table, name)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return s, closeFn, nil
}

// Extractor builds the configured extraction backend, or extraction.Disabled
// when its credential is missing.
func Extractor(ctx context.Context, cfg config.Config) (extraction.Extractor, error) {
	return extraction.New(ctx, extraction.Options{
		Provider:      cfg.AIProvider,
		OpenAIKey:     cfg.OpenAIKey,
		OpenAIBaseURL: cfg.OpenAIBaseURL,
		OpenAIModel:   cfg.OpenAIModel,
		GeminiKey:     cfg.GeminiKey,
		GeminiModel:   cfg.GeminiModel,
		Timeout:       cfg.ExtractTimeout,
	})
}

// Publishers returns the post-save publishers. The display file is written
// by a snapshot unless it already is the primary store.
func Publishers(cfg config.Config, backend string, log *logger.Logger) []pipeline.Publisher {
	var out []pipeline.Publisher
	if b := strings.ToLower(backend); b != BackendFile && b != "" {
		out = append(out, publish.NewSnapshot(cfg.DataPath))
	}
	if cfg.SFTPEnabled() {
		out = append(out, publish.NewSFTP(publish.SFTPConfig{
			Host:       cfg.SFTPHost,
			Port:       cfg.SFTPPort,
			User:       cfg.SFTPUser,
			Pass:       cfg.SFTPPass,
			RemoteDir:  cfg.SFTPRemoteDir,
			FileName:   cfg.SFTPFileName,
			KnownHosts: cfg.SFTPKnownHosts,
		}, log))
	}
	return out
}

// Orchestrator wires a full ingestion run from cfg. The close function
// releases the store connection. Catalog entries that fail validation or
// cannot be built are logged and left out of the run.
func Orchestrator(ctx context.Context, cfg config.Config, log *logger.Logger) (*pipeline.Orchestrator, func(), error) {
	catalog, err := config.LoadCatalog(cfg.SourcesFile)
	if catalog == nil {
		return nil, func() {}, err
	}
	if err != nil {
		log.Warn("skipping invalid catalog entries", "error", err)
	}
	srcs, err := sources.Build(catalog, cfg.ManualInputsFile, log)
	if err != nil {
		log.Warn("skipping sources that could not be built", "error", err)
	}
	log.Info("sources ready", "count", len(srcs))

	ext, err := Extractor(ctx, cfg)
	if err != nil {
		return nil, func() {}, fmt.Errorf("extraction: %w", err)
	}
	if d, ok := ext.(extraction.Disabled); ok {
		log.Warn("AI extraction disabled", "reason", d.Reason)
	}

	st, closeFn, err := OpenStore(ctx, cfg, cfg.StoreBackend, log)
	if err != nil {
		return nil, func() {}, fmt.Errorf("open %s store: %w", cfg.StoreBackend, err)
	}

	orch := pipeline.New(pipeline.Config{
		Store:              st,
		Sources:            srcs,
		Extractor:          ext,
		Normalizer:         normalize.New(time.Now),
		Publishers:         Publishers(cfg, cfg.StoreBackend, log),
		Logger:             log,
		RunTimeout:         cfg.RunTimeout,
		AdapterTimeout:     cfg.AdapterTimeout,
		ExtractTimeout:     cfg.ExtractTimeout,
		AdapterConcurrency: cfg.AdapterConcurrency,
		ExtractWorkers:     cfg.ExtractWorkers,
	})
	return orch, closeFn, nil
}
