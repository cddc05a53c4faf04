package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/joseph-ayodele/form-intake/internal/common"
	"github.com/joseph-ayodele/form-intake/internal/entity"
)

type firestoreFormRepository struct {
	client     *firestore.Client
	collection string
	timeout    time.Duration
	logger     *slog.Logger
}

// OpenFirestore creates a Firestore client for projectID and returns a
// FormRepository backed by collection.
func OpenFirestore(ctx context.Context, projectID, collection string, timeout time.Duration, logger *slog.Logger) (FormRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}
	if collection == "" {
		collection = formsTable
	}
	logger.Info("connecting to database", "driver", "firestore", "project", projectID, "collection", collection)
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		logger.Error("failed to create firestore client", "error", err)
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return &firestoreFormRepository{client: client, collection: collection, timeout: timeout, logger: logger}, nil
}

func (r *firestoreFormRepository) Insert(ctx context.Context, name, email, extractedText string) (*entity.Form, error) {
	if err := checkPresence(name, email, extractedText); err != nil {
		return nil, err
	}
	ctx, cancel := common.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := newFormDocument(name, email, extractedText)
	if _, err := r.client.Collection(r.collection).Doc(doc.ID).Create(ctx, doc); err != nil {
		r.logger.Error("failed to insert form", "form_id", doc.ID, "error", err)
		return nil, common.PersistenceError("insert form", err)
	}
	return doc.toEntity()
}

func (r *firestoreFormRepository) ListAll(ctx context.Context) ([]*entity.Form, error) {
	ctx, cancel := common.WithTimeout(ctx, r.timeout)
	defer cancel()

	snaps, err := r.client.Collection(r.collection).Documents(ctx).GetAll()
	if err != nil {
		r.logger.Error("failed to list forms", "error", err)
		return nil, common.PersistenceError("list forms", err)
	}
	out := make([]*entity.Form, 0, len(snaps))
	for _, s := range snaps {
		var d formDocument
		if err := s.DataTo(&d); err != nil {
			r.logger.Error("failed to decode form", "doc_id", s.Ref.ID, "error", err)
			return nil, common.PersistenceError("decode forms", err)
		}
		f, err := d.toEntity()
		if err != nil {
			return nil, common.PersistenceError("decode forms", err)
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *firestoreFormRepository) Ping(ctx context.Context) error {
	ctx, cancel := common.WithTimeout(ctx, r.timeout)
	defer cancel()
	if _, err := r.client.Collection(r.collection).Limit(1).Documents(ctx).GetAll(); err != nil {
		return common.PersistenceError("ping database", err)
	}
	return nil
}

func (r *firestoreFormRepository) Close(context.Context) error {
	r.logger.Info("closing database connections")
	if err := r.client.Close(); err != nil {
		r.logger.Error("failed to close firestore client", "error", err)
		return err
	}
	r.logger.Info("database connections closed")
	return nil
}
