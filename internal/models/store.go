package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Store struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description sql.NullString
	LogoURL     sql.NullString
	WebsiteURL  sql.NullString
	IsActive    bool
	CreatedAt   time.Time
}
