package repository

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	entsql "entgo.io/ent/dialect/sql"
)

const defaultMongoDatabase = "form_intake"

// Open picks a backend from the DSN scheme, connects, prepares the schema
// where one is needed, and returns the store.
//
//	postgres://, postgresql://   Postgres through pgx
//	sqlite://<path>, file:<path> sqlite through modernc.org/sqlite
//	mongodb://, mongodb+srv://   MongoDB, database taken from the URL path
//	firestore://<project>[/<collection>]
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (FormRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dsn := strings.TrimSpace(cfg.DSN)
	scheme := ""
	if i := strings.Index(dsn, ":"); i > 0 {
		scheme = strings.ToLower(dsn[:i])
	}

	switch scheme {
	case "postgres", "postgresql":
		drv, pool, err := OpenPostgres(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := HealthCheck(ctx, pool, dialTimeout(cfg), logger); err != nil {
			pool.Close()
			return nil, err
		}
		repo, err := migrated(ctx, drv, cfg, logger)
		if err != nil {
			pool.Close()
			return nil, err
		}
		repo.closers = append(repo.closers, pool.Close)
		return repo, nil

	case "sqlite", "file":
		drv, err := OpenSQLite(ctx, sqliteDSN(dsn), logger)
		if err != nil {
			return nil, err
		}
		return migrated(ctx, drv, cfg, logger)

	case "mongodb", "mongodb+srv":
		u, err := url.Parse(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse mongodb url: %w", err)
		}
		db := strings.Trim(u.Path, "/")
		if db == "" {
			db = defaultMongoDatabase
		}
		return OpenMongo(ctx, dsn, db, cfg.QueryTimeout, logger)

	case "firestore":
		u, err := url.Parse(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse firestore url: %w", err)
		}
		return OpenFirestore(ctx, u.Host, strings.Trim(u.Path, "/"), cfg.QueryTimeout, logger)

	default:
		return nil, fmt.Errorf("unsupported database url scheme %q", scheme)
	}
}

func migrated(ctx context.Context, drv *entsql.Driver, cfg Config, logger *slog.Logger) (*sqlFormRepository, error) {
	if err := Migrate(ctx, drv); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		_ = drv.Close()
		return nil, err
	}
	return newSQLFormRepository(drv, cfg.QueryTimeout, logger), nil
}

// sqliteDSN maps sqlite://<path> onto the file: form modernc expects.
func sqliteDSN(dsn string) string {
	if rest, ok := strings.CutPrefix(dsn, "sqlite://"); ok {
		if rest == "" || rest == ":memory:" {
			return "file::memory:"
		}
		return "file:" + rest
	}
	return dsn
}
