package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/form-intake/internal/common"
	"github.com/joseph-ayodele/form-intake/internal/entity"
)

type sqlFormRepository struct {
	drv     *entsql.Driver
	closers []func()
	timeout time.Duration
	logger  *slog.Logger
}

// NewSQLFormRepository builds a FormRepository over an ent SQL driver.
// The forms table must already exist (see Migrate).
func NewSQLFormRepository(drv *entsql.Driver, timeout time.Duration, logger *slog.Logger) FormRepository {
	return newSQLFormRepository(drv, timeout, logger)
}

func newSQLFormRepository(drv *entsql.Driver, timeout time.Duration, logger *slog.Logger) *sqlFormRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &sqlFormRepository{drv: drv, timeout: timeout, logger: logger}
}

func (r *sqlFormRepository) Insert(ctx context.Context, name, email, extractedText string) (*entity.Form, error) {
	if err := checkPresence(name, email, extractedText); err != nil {
		return nil, err
	}
	ctx, cancel := common.WithTimeout(ctx, r.timeout)
	defer cancel()

	f := &entity.Form{
		ID:            uuid.New(),
		Name:          name,
		Email:         email,
		ExtractedText: extractedText,
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	query, args := entsql.Dialect(r.drv.Dialect()).
		Insert(formsTable).
		Columns(formColumns...).
		Values(f.ID, f.Name, f.Email, f.ExtractedText, f.CreatedAt).
		Query()
	if _, err := r.drv.DB().ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("failed to insert form", "form_id", f.ID, "error", err)
		return nil, common.PersistenceError("insert form", err)
	}
	return f, nil
}

func (r *sqlFormRepository) ListAll(ctx context.Context) ([]*entity.Form, error) {
	ctx, cancel := common.WithTimeout(ctx, r.timeout)
	defer cancel()

	query, args := entsql.Dialect(r.drv.Dialect()).
		Select(formColumns...).
		From(entsql.Table(formsTable)).
		OrderBy(colCreatedAt).
		Query()
	rows, err := r.drv.DB().QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list forms", "error", err)
		return nil, common.PersistenceError("list forms", err)
	}
	defer rows.Close()

	out := make([]*entity.Form, 0)
	for rows.Next() {
		f, err := scanForm(rows)
		if err != nil {
			r.logger.Error("failed to scan form", "error", err)
			return nil, common.PersistenceError("scan form", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("failed to iterate forms", "error", err)
		return nil, common.PersistenceError("list forms", err)
	}
	return out, nil
}

func (r *sqlFormRepository) Ping(ctx context.Context) error {
	ctx, cancel := common.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.drv.DB().PingContext(ctx); err != nil {
		return common.PersistenceError("ping database", err)
	}
	return nil
}

func (r *sqlFormRepository) Close(context.Context) error {
	r.logger.Info("closing database connections")
	err := r.drv.Close()
	for _, c := range r.closers {
		c()
	}
	if err != nil {
		r.logger.Error("failed to close ent driver", "error", err)
		return err
	}
	r.logger.Info("database connections closed")
	return nil
}

func scanForm(rows *sql.Rows) (*entity.Form, error) {
	var f entity.Form
	if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.ExtractedText, &f.CreatedAt); err != nil {
		return nil, err
	}
	f.CreatedAt = f.CreatedAt.UTC()
	return &f, nil
}
