package models

import (
	"time"

	"github.com/google/uuid"
)

// Prompt is a try-on instruction template. The content carries the
// {user_image} and {clothing_image} placeholders substituted at generation
// time. At most one row is active at a time.
type Prompt struct {
	ID        uuid.UUID
	Name      string
	Content   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
