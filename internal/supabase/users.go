package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"estiloplus-backend/internal/models"
)

const userColumns = "id, email, name, role, credits, profile_image_url, stripe_customer_id, created_at"

func scanUser(row interface{ Scan(...interface{}) error }, u *models.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.Name, &u.Role, &u.Credits,
		&u.ProfileImageURL, &u.StripeCustomerID, &u.CreatedAt,
	)
}

func (d *DatabaseClient) GetUser(userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := scanUser(d.db.QueryRow(`
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, userID), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (d *DatabaseClient) GetUserRole(userID uuid.UUID) (string, error) {
	var role string
	err := d.db.QueryRow(`
		SELECT role FROM users WHERE id = $1
	`, userID).Scan(&role)
	if err != nil {
		return "", fmt.Errorf("failed to get user role: %w", err)
	}
	return role, nil
}

func (d *DatabaseClient) ListUsers() ([]models.User, error) {
	rows, err := d.db.Query(`
		SELECT ` + userColumns + `
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := scanUser(rows, &user); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, nil
}

// UpdateUser applies the admin's partial edit. Credits set this way are an
// absolute non-negative value, not a ledger adjustment.
func (d *DatabaseClient) UpdateUser(userID uuid.UUID, name, role *string, credits *int) (*models.User, error) {
	var user models.User
	err := scanUser(d.db.QueryRow(`
		UPDATE users
		SET name = COALESCE($2, name),
		    role = COALESCE($3, role),
		    credits = COALESCE($4, credits)
		WHERE id = $1
		RETURNING `+userColumns+`
	`, userID, name, role, credits), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}

func (d *DatabaseClient) DeleteUser(userID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM users
		WHERE id = $1
	`, userID)
	return err
}

func (d *DatabaseClient) SetStripeCustomerID(userID uuid.UUID, customerID string) error {
	_, err := d.db.Exec(`
		UPDATE users
		SET stripe_customer_id = $2
		WHERE id = $1
	`, userID, customerID)
	return err
}

// SetProfilePhoto stores the new photo reference and debits its credit cost
// in one conditional statement. Zero affected rows with an existing user
// means the balance was short.
func (d *DatabaseClient) SetProfilePhoto(userID uuid.UUID, imageURL string) (int, error) {
	var remaining int
	err := d.db.QueryRow(`
		UPDATE users
		SET profile_image_url = $2, credits = credits - $3
		WHERE id = $1 AND credits >= $3
		RETURNING credits
	`, userID, imageURL, models.ProfilePhotoCost).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrInsufficientCredits
	}
	if err != nil {
		return 0, fmt.Errorf("failed to set profile photo: %w", err)
	}

	return remaining, nil
}
