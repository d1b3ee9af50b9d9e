package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Roles assigned to accounts. Stored as plain text in the users table.
const (
	RoleClient = "client"
	RoleStore  = "store"
	RoleAdmin  = "admin"
)

// ProfilePhotoCost is the credit price of changing the profile photo.
const ProfilePhotoCost = 5

func ValidRole(role string) bool {
	return role == RoleClient || role == RoleStore || role == RoleAdmin
}

type User struct {
	ID               uuid.UUID
	Email            string
	Name             string
	Role             string
	Credits          int
	ProfileImageURL  sql.NullString
	StripeCustomerID sql.NullString
	CreatedAt        time.Time
}
