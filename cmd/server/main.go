package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"investconnect/internal/app"
	"investconnect/internal/auth"
	"investconnect/internal/config"
	"investconnect/internal/db"
	"investconnect/internal/handlers"
	"investconnect/internal/metrics"
	"investconnect/internal/mock"
	"investconnect/internal/persist"
	"investconnect/internal/store"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("unknown log level, using info")
	}

	kv, closeKV, err := openKV(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("open persistence backend")
	}
	defer closeKV()

	s := store.New(log)

	var saver app.Saver
	if kv != nil {
		p := persist.New(kv)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		ok, err := p.Rehydrate(ctx, s)
		cancel()
		switch {
		case err != nil:
			log.WithError(err).Warn("persisted state ignored")
		case ok:
			log.Info("state restored")
		}
		saver = p
	}

	data := mock.New(time.Now())
	accounts, err := auth.NewManager(data.Accounts(), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("seed accounts")
	}

	a := app.New(s, data, accounts, saver, log, app.Options{
		Delay:    cfg.MockDelay,
		PageSize: cfg.PageSize,
	})

	m := metrics.New()
	s.Subscribe(m.Observe)

	mux := handlers.New(a, log).Routes()
	mux.Handle("GET /metrics", m.Handler())

	log.WithField("addr", cfg.Addr).Info("listening")
	// Panics in handlers become 500s instead of killing the process.
	if err := http.ListenAndServe(cfg.Addr, handlers.WithRecover(mux, log)); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// openKV returns a nil KV when persistence is disabled.
func openKV(cfg config.Config, log logrus.FieldLogger) (persist.KV, func(), error) {
	switch cfg.PersistBackend {
	case config.BackendNone:
		return nil, func() {}, nil
	case config.BackendRedis:
		rdb := db.RedisClient(cfg.RedisAddr)
		log.WithField("addr", cfg.RedisAddr).Info("persisting to redis")
		return db.NewRedisKV(rdb, "investconnect:"), func() { _ = rdb.Close() }, nil
	default:
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, nil, err
		}
		path := filepath.Join(cfg.DataDir, "investconnect.db")
		dbc, err := db.Open(path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(dbc); err != nil {
			dbc.Close()
			return nil, nil, err
		}
		log.WithField("path", path).Info("persisting to sqlite")
		return db.NewSQLiteKV(dbc), func() { _ = dbc.Close() }, nil
	}
}
