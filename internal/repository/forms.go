package repository

import (
	"context"
	"fmt"

	"github.com/joseph-ayodele/form-intake/internal/common"
	"github.com/joseph-ayodele/form-intake/internal/entity"
)

// FormRepository is the append-only record store for processed forms.
// There is deliberately no update or delete.
type FormRepository interface {
	// Insert persists a new form and returns it with its assigned ID and timestamp.
	Insert(ctx context.Context, name, email, extractedText string) (*entity.Form, error)
	// ListAll returns every stored form. Callers must not rely on ordering.
	ListAll(ctx context.Context) ([]*entity.Form, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// checkPresence enforces the required fields before anything reaches a backend.
func checkPresence(name, email, extractedText string) error {
	v := common.NewValidator().
		Field("name", name, common.Required).
		Field("email", email, common.Required).
		Field("extractedText", extractedText, common.Required)
	if v.HasErrors() {
		return common.PersistenceError("form failed validation", fmt.Errorf("%s", v.ErrorMessage()))
	}
	return nil
}
