package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"estiloplus-backend/internal/models"
)

const packageColumns = "id, name, description, credits, price_in_cents, is_active, created_at"

func scanPackage(row interface{ Scan(...interface{}) error }, p *models.CreditPackage) error {
	return row.Scan(&p.ID, &p.Name, &p.Description, &p.Credits, &p.PriceInCents, &p.IsActive, &p.CreatedAt)
}

// ListActivePackages returns purchasable packages, cheapest first.
func (d *DatabaseClient) ListActivePackages() ([]models.CreditPackage, error) {
	return d.listPackages(`
		SELECT ` + packageColumns + `
		FROM credit_packages
		WHERE is_active = TRUE
		ORDER BY price_in_cents ASC
	`)
}

func (d *DatabaseClient) ListPackages() ([]models.CreditPackage, error) {
	return d.listPackages(`
		SELECT ` + packageColumns + `
		FROM credit_packages
		ORDER BY price_in_cents ASC
	`)
}

func (d *DatabaseClient) listPackages(query string) ([]models.CreditPackage, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	defer rows.Close()

	var packages []models.CreditPackage
	for rows.Next() {
		var pkg models.CreditPackage
		if err := scanPackage(rows, &pkg); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, pkg)
	}

	return packages, nil
}

func (d *DatabaseClient) GetPackage(packageID uuid.UUID) (*models.CreditPackage, error) {
	var pkg models.CreditPackage
	err := scanPackage(d.db.QueryRow(`
		SELECT `+packageColumns+`
		FROM credit_packages
		WHERE id = $1
	`, packageID), &pkg)
	if err != nil {
		return nil, fmt.Errorf("failed to get package: %w", err)
	}

	return &pkg, nil
}

func (d *DatabaseClient) CreatePackage(req models.CreatePackageRequest) (*models.CreditPackage, error) {
	var pkg models.CreditPackage
	err := scanPackage(d.db.QueryRow(`
		INSERT INTO credit_packages (name, description, credits, price_in_cents, is_active)
		VALUES ($1, NULLIF($2, ''), $3, $4, TRUE)
		RETURNING `+packageColumns+`
	`, req.Name, req.Description, req.Credits, req.PriceInCents), &pkg)
	if err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	return &pkg, nil
}

func (d *DatabaseClient) UpdatePackage(packageID uuid.UUID, req models.UpdatePackageRequest) (*models.CreditPackage, error) {
	var pkg models.CreditPackage
	err := scanPackage(d.db.QueryRow(`
		UPDATE credit_packages
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    credits = COALESCE($4, credits),
		    price_in_cents = COALESCE($5, price_in_cents),
		    is_active = COALESCE($6, is_active)
		WHERE id = $1
		RETURNING `+packageColumns+`
	`, packageID, req.Name, req.Description, req.Credits, req.PriceInCents, req.IsActive), &pkg)
	if err != nil {
		return nil, fmt.Errorf("failed to update package: %w", err)
	}

	return &pkg, nil
}

func (d *DatabaseClient) DeletePackage(packageID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM credit_packages
		WHERE id = $1
	`, packageID)
	return err
}
