package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	Name        string
	Description sql.NullString
	ImageURL    string
	ProductURL  sql.NullString
	Category    sql.NullString
	Size        sql.NullString
	Color       sql.NullString
	Style       sql.NullString
	CreatedAt   time.Time
}
