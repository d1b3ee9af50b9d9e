package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"estiloplus-backend/internal/models"
)

const purchaseColumns = "id, user_id, credits, amount_paid, status, stripe_session_id, created_at"

func scanPurchase(row interface{ Scan(...interface{}) error }, p *models.CreditPurchase) error {
	return row.Scan(&p.ID, &p.UserID, &p.Credits, &p.AmountPaid, &p.Status, &p.StripeSessionID, &p.CreatedAt)
}

func (d *DatabaseClient) GetCredits(userID uuid.UUID) (int, error) {
	var credits int
	err := d.db.QueryRow(`
		SELECT credits FROM users WHERE id = $1
	`, userID).Scan(&credits)
	if err != nil {
		return 0, fmt.Errorf("failed to get credits: %w", err)
	}
	return credits, nil
}

// DebitCredits charges the account in a single conditional update. The
// balance check lives in the WHERE clause, so two concurrent debits cannot
// both succeed on a balance that covers only one. Zero affected rows means
// either a short balance or a missing account; the re-check tells them apart.
func (d *DatabaseClient) DebitCredits(userID uuid.UUID, amount int) (int, error) {
	var remaining int
	err := d.db.QueryRow(`
		UPDATE users
		SET credits = credits - $2
		WHERE id = $1 AND credits >= $2
		RETURNING credits
	`, userID, amount).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if checkErr := d.db.QueryRow(`
			SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
		`, userID).Scan(&exists); checkErr != nil {
			return 0, fmt.Errorf("failed to debit credits: %w", checkErr)
		}
		if !exists {
			return 0, fmt.Errorf("failed to debit credits: %w", sql.ErrNoRows)
		}
		return 0, ErrInsufficientCredits
	}
	if err != nil {
		return 0, fmt.Errorf("failed to debit credits: %w", err)
	}

	return remaining, nil
}

// AdjustCredits applies a signed admin adjustment, clamped at a zero floor.
// Positive adjustments write a zero-paid manual receipt in the same
// transaction, so a granted balance can never exist without its receipt.
func (d *DatabaseClient) AdjustCredits(userID uuid.UUID, amount int) (*models.User, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var user models.User
	err = scanUser(tx.QueryRow(`
		UPDATE users
		SET credits = GREATEST(0, credits + $2)
		WHERE id = $1
		RETURNING `+userColumns+`
	`, userID, amount), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust credits: %w", err)
	}

	if amount > 0 {
		if _, err := tx.Exec(`
			INSERT INTO credit_purchases (user_id, credits, amount_paid, status, stripe_session_id)
			VALUES ($1, $2, 0, 'completed', $3)
		`, userID, amount, fmt.Sprintf("manual_%s", uuid.New())); err != nil {
			return nil, fmt.Errorf("failed to record manual grant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit adjustment: %w", err)
	}

	return &user, nil
}

// GrantPurchase credits a completed checkout exactly once. The receipt
// insert is keyed on the Stripe session id; when the row already exists the
// whole grant is a no-op, so webhook redelivery cannot double-credit.
func (d *DatabaseClient) GrantPurchase(userID uuid.UUID, credits int, amountPaid int64, sessionID string) (bool, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO credit_purchases (user_id, credits, amount_paid, status, stripe_session_id)
		VALUES ($1, $2, $3, 'completed', $4)
		ON CONFLICT (stripe_session_id) DO NOTHING
	`, userID, credits, amountPaid, sessionID)
	if err != nil {
		return false, fmt.Errorf("failed to insert purchase: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	if inserted == 0 {
		return false, nil
	}

	if _, err := tx.Exec(`
		UPDATE users
		SET credits = credits + $2
		WHERE id = $1
	`, userID, credits); err != nil {
		return false, fmt.Errorf("failed to credit user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit purchase: %w", err)
	}

	return true, nil
}

func (d *DatabaseClient) ListPurchases(userID uuid.UUID) ([]models.CreditPurchase, error) {
	rows, err := d.db.Query(`
		SELECT `+purchaseColumns+`
		FROM credit_purchases
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	defer rows.Close()

	var purchases []models.CreditPurchase
	for rows.Next() {
		var purchase models.CreditPurchase
		if err := scanPurchase(rows, &purchase); err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		purchases = append(purchases, purchase)
	}

	return purchases, nil
}
