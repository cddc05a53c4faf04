package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/joseph-ayodele/form-intake/internal/common"
	"github.com/joseph-ayodele/form-intake/internal/entity"
)

// formDocument is the stored shape of a form in document databases.
type formDocument struct {
	ID            string    `bson:"_id" firestore:"id"`
	Name          string    `bson:"name" firestore:"name"`
	Email         string    `bson:"email" firestore:"email"`
	ExtractedText string    `bson:"extracted_text" firestore:"extracted_text"`
	CreatedAt     time.Time `bson:"created_at" firestore:"created_at"`
}

func newFormDocument(name, email, extractedText string) formDocument {
	return formDocument{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         email,
		ExtractedText: extractedText,
		// Millisecond precision survives a BSON round trip.
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

func (d formDocument) toEntity() (*entity.Form, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("form id %q: %w", d.ID, err)
	}
	return &entity.Form{
		ID:            id,
		Name:          d.Name,
		Email:         d.Email,
		ExtractedText: d.ExtractedText,
		CreatedAt:     d.CreatedAt.UTC(),
	}, nil
}

type mongoFormRepository struct {
	client  *mongo.Client
	coll    *mongo.Collection
	timeout time.Duration
	logger  *slog.Logger
}

// OpenMongo connects to MongoDB and returns a FormRepository backed by the
// "forms" collection of database.
func OpenMongo(ctx context.Context, uri, database string, timeout time.Duration, logger *slog.Logger) (FormRepository, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("connecting to database", "driver", "mongodb", "database", database)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}
	return newMongoFormRepository(client, client.Database(database).Collection(formsTable), timeout, logger), nil
}

func newMongoFormRepository(client *mongo.Client, coll *mongo.Collection, timeout time.Duration, logger *slog.Logger) *mongoFormRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &mongoFormRepository{client: client, coll: coll, timeout: timeout, logger: logger}
}

func (r *mongoFormRepository) Insert(ctx context.Context, name, email, extractedText string) (*entity.Form, error) {
	if err := checkPresence(name, email, extractedText); err != nil {
		return nil, err
	}
	ctx, cancel := common.WithTimeout(ctx, r.timeout)
	defer cancel()

	doc := newFormDocument(name, email, extractedText)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		r.logger.Error("failed to insert form", "form_id", doc.ID, "error", err)
		return nil, common.PersistenceError("insert form", err)
	}
	return doc.toEntity()
}

func (r *mongoFormRepository) ListAll(ctx context.Context) ([]*entity.Form, error) {
	ctx, cancel := common.WithTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		r.logger.Error("failed to list forms", "error", err)
		return nil, common.PersistenceError("list forms", err)
	}
	var docs []formDocument
	if err := cur.All(ctx, &docs); err != nil {
		r.logger.Error("failed to decode forms", "error", err)
		return nil, common.PersistenceError("decode forms", err)
	}
	out := make([]*entity.Form, 0, len(docs))
	for _, d := range docs {
		f, err := d.toEntity()
		if err != nil {
			return nil, common.PersistenceError("decode forms", err)
		}
		out = append(out, f)
	}
	return out, nil
}

func (r *mongoFormRepository) Ping(ctx context.Context) error {
	ctx, cancel := common.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.client.Ping(ctx, readpref.Primary()); err != nil {
		return common.PersistenceError("ping database", err)
	}
	return nil
}

func (r *mongoFormRepository) Close(ctx context.Context) error {
	r.logger.Info("closing database connections")
	if err := r.client.Disconnect(ctx); err != nil {
		r.logger.Error("failed to disconnect mongo client", "error", err)
		return err
	}
	r.logger.Info("database connections closed")
	return nil
}
