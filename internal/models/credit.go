package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type CreditPackage struct {
	ID           uuid.UUID
	Name         string
	Description  sql.NullString
	Credits      int
	PriceInCents int64
	IsActive     bool
	CreatedAt    time.Time
}

// CreditPurchase is an immutable receipt. StripeSessionID is unique so a
// redelivered checkout notification cannot grant twice; admin manual grants
// use a synthetic "manual_" session id and a zero amount.
type CreditPurchase struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Credits         int
	AmountPaid      int64
	Status          string
	StripeSessionID string
	CreatedAt       time.Time
}
