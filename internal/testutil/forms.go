package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/form-intake/internal/common"
	"github.com/joseph-ayodele/form-intake/internal/entity"
)

// MemoryForms is an in-memory FormRepository. Set Err to make every call fail.
type MemoryForms struct {
	mu    sync.Mutex
	forms []*entity.Form
	Err   error
}

func (m *MemoryForms) Insert(_ context.Context, name, email, extractedText string) (*entity.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, common.PersistenceError("insert form", m.Err)
	}
	f := &entity.Form{
		ID:            uuid.New(),
		Name:          name,
		Email:         email,
		ExtractedText: extractedText,
		CreatedAt:     time.Now().UTC(),
	}
	m.forms = append(m.forms, f)
	return f, nil
}

func (m *MemoryForms) ListAll(context.Context) ([]*entity.Form, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, common.PersistenceError("list forms", m.Err)
	}
	out := make([]*entity.Form, len(m.forms))
	copy(out, m.forms)
	return out, nil
}

func (m *MemoryForms) Ping(context.Context) error  { return m.Err }
func (m *MemoryForms) Close(context.Context) error { return nil }

// Len reports how many forms have been stored.
func (m *MemoryForms) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.forms)
}
