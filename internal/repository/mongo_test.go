package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/joseph-ayodele/form-intake/internal/common"
)

func mockRepo(mt *mtest.T) *mongoFormRepository {
	return newMongoFormRepository(mt.Client, mt.Coll, 5*time.Second, nil)
}

func TestMongoFormRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert returns stored form", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		f, err := mockRepo(mt).Insert(context.Background(), "Jane Doe", "jane@example.com", "Name: Jane Doe\nEmail: jane@example.com")
		require.NoError(mt, err)
		assert.NotEqual(mt, uuid.Nil, f.ID)
		_, err = uuid.Parse(f.ID.String())
		assert.NoError(mt, err)
		assert.Equal(mt, "Jane Doe", f.Name)
		assert.Equal(mt, "jane@example.com", f.Email)
		assert.Equal(mt, time.UTC, f.CreatedAt.Location())
	})

	mt.Run("insert error is a persistence error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		f, err := mockRepo(mt).Insert(context.Background(), "Jane Doe", "jane@example.com", "text")
		require.Error(mt, err)
		assert.Nil(mt, f)
		assert.Equal(mt, common.CodePersistence, common.CodeOf(err))
		assert.ErrorIs(mt, err, common.ErrPersistence)
		assert.Contains(mt, err.Error(), "duplicate key error")
	})

	mt.Run("insert rejects empty fields before the server", func(mt *mtest.T) {
		_, err := mockRepo(mt).Insert(context.Background(), "Jane Doe", "", "text")
		require.Error(mt, err)
		assert.ErrorIs(mt, err, common.ErrPersistence)
	})

	mt.Run("list all decodes documents", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		created := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
		first := uuid.NewString()
		second := uuid.NewString()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: first},
				{Key: "name", Value: "Jane Doe"},
				{Key: "email", Value: "jane@example.com"},
				{Key: "extracted_text", Value: "Name: Jane Doe"},
				{Key: "created_at", Value: created},
			},
			bson.D{
				{Key: "_id", Value: second},
				{Key: "name", Value: "John Roe"},
				{Key: "email", Value: "john@example.com"},
				{Key: "extracted_text", Value: "Name: John Roe"},
				{Key: "created_at", Value: created.Add(time.Minute)},
			},
		))

		forms, err := mockRepo(mt).ListAll(context.Background())
		require.NoError(mt, err)
		require.Len(mt, forms, 2)
		assert.Equal(mt, first, forms[0].ID.String())
		assert.Equal(mt, "Jane Doe", forms[0].Name)
		assert.Equal(mt, "jane@example.com", forms[0].Email)
		assert.Equal(mt, "Name: Jane Doe", forms[0].ExtractedText)
		assert.True(mt, created.Equal(forms[0].CreatedAt))
		assert.Equal(mt, second, forms[1].ID.String())
	})

	mt.Run("list all empty collection", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		forms, err := mockRepo(mt).ListAll(context.Background())
		require.NoError(mt, err)
		require.NotNil(mt, forms)
		assert.Empty(mt, forms)
	})

	mt.Run("list all with a corrupt id fails", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "not-a-uuid"}, {Key: "name", Value: "x"}},
		))

		_, err := mockRepo(mt).ListAll(context.Background())
		assert.ErrorIs(mt, err, common.ErrPersistence)
	})

	mt.Run("find error is a persistence error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		_, err := mockRepo(mt).ListAll(context.Background())
		require.Error(mt, err)
		assert.Equal(mt, common.CodePersistence, common.CodeOf(err))
	})

	mt.Run("ping", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, mockRepo(mt).Ping(context.Background()))

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 8, Name: "UnknownError", Message: "ping failed"}))
		assert.ErrorIs(mt, mockRepo(mt).Ping(context.Background()), common.ErrPersistence)
	})
}
