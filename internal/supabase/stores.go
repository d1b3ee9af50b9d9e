package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"estiloplus-backend/internal/models"
)

const storeColumns = "id, user_id, name, description, logo_url, website_url, is_active, created_at"

func scanStore(row interface{ Scan(...interface{}) error }, s *models.Store) error {
	return row.Scan(
		&s.ID, &s.UserID, &s.Name, &s.Description,
		&s.LogoURL, &s.WebsiteURL, &s.IsActive, &s.CreatedAt,
	)
}

// UpsertStore creates the account's store on first submission and updates it
// afterwards. Each account owns at most one store.
func (d *DatabaseClient) UpsertStore(userID uuid.UUID, name, description, logoURL, websiteURL string) (*models.Store, error) {
	var store models.Store
	err := scanStore(d.db.QueryRow(`
		INSERT INTO stores (user_id, name, description, logo_url, website_url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name,
		    description = EXCLUDED.description,
		    logo_url = EXCLUDED.logo_url,
		    website_url = EXCLUDED.website_url
		RETURNING `+storeColumns+`
	`, userID, name, description, logoURL, websiteURL), &store)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert store: %w", err)
	}

	return &store, nil
}

func (d *DatabaseClient) GetStoreByUserID(userID uuid.UUID) (*models.Store, error) {
	var store models.Store
	err := scanStore(d.db.QueryRow(`
		SELECT `+storeColumns+`
		FROM stores
		WHERE user_id = $1
	`, userID), &store)
	if err != nil {
		return nil, fmt.Errorf("failed to get store: %w", err)
	}

	return &store, nil
}

func (d *DatabaseClient) UpdateStore(storeID uuid.UUID, req models.UpdateStoreRequest) (*models.Store, error) {
	var store models.Store
	err := scanStore(d.db.QueryRow(`
		UPDATE stores
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    logo_url = COALESCE($4, logo_url),
		    website_url = COALESCE($5, website_url),
		    is_active = COALESCE($6, is_active)
		WHERE id = $1
		RETURNING `+storeColumns+`
	`, storeID, req.Name, req.Description, req.LogoURL, req.WebsiteURL, req.IsActive), &store)
	if err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	return &store, nil
}

func (d *DatabaseClient) ListStores() ([]models.Store, error) {
	rows, err := d.db.Query(`
		SELECT ` + storeColumns + `
		FROM stores
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	var stores []models.Store
	for rows.Next() {
		var store models.Store
		if err := scanStore(rows, &store); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, store)
	}

	return stores, nil
}

func (d *DatabaseClient) DeleteStore(storeID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM stores
		WHERE id = $1
	`, storeID)
	return err
}
