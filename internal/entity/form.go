package entity

import (
	"time"

	"github.com/google/uuid"
)

// Form represents one successfully processed submission for data transfer between layers.
type Form struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	ExtractedText string    `json:"extractedText"`
	CreatedAt     time.Time `json:"createdAt"`
}
