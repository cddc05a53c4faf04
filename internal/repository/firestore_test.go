package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/form-intake/internal/common"
)

// Runs against the Firestore emulator, e.g.
// gcloud emulators firestore start --host-port=localhost:8080
func TestFirestoreFormRepository(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	ctx := context.Background()
	collection := "forms_" + uuid.NewString()[:8]

	repo, err := OpenFirestore(ctx, "form-intake-test", collection, 10*time.Second, nil)
	require.NoError(t, err)
	defer repo.Close(ctx)

	require.NoError(t, repo.Ping(ctx))

	empty, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Empty(t, empty)

	f, err := repo.Insert(ctx, "Jane Doe", "jane@example.com", "Name: Jane Doe\nEmail: jane@example.com")
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, f.ID, all[0].ID)
	assert.Equal(t, "Jane Doe", all[0].Name)
	assert.Equal(t, f.ExtractedText, all[0].ExtractedText)
	assert.True(t, f.CreatedAt.Equal(all[0].CreatedAt))

	_, err = repo.Insert(ctx, "", "jane@example.com", "text")
	assert.ErrorIs(t, err, common.ErrPersistence)
}

func TestOpenFirestoreRequiresProject(t *testing.T) {
	_, err := Open(context.Background(), Config{DSN: "firestore:///forms"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projectID")
}
