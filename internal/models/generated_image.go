package models

import (
	"time"

	"github.com/google/uuid"
)

// GeneratedImage is the immutable record of one successful try-on
// generation. ProductID is null when the garment was supplied directly
// instead of picked from the catalog.
type GeneratedImage struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	ProductID         uuid.NullUUID
	OriginalImageURL  string
	GeneratedImageURL string
	PromptUsed        string
	CreatedAt         time.Time
}
