package supabase

import (
	"fmt"

	"github.com/google/uuid"
	"estiloplus-backend/internal/models"
)

const productColumns = "id, store_id, name, description, image_url, product_url, category, size, color, style, created_at"

func scanProduct(row interface{ Scan(...interface{}) error }, p *models.Product) error {
	return row.Scan(
		&p.ID, &p.StoreID, &p.Name, &p.Description, &p.ImageURL,
		&p.ProductURL, &p.Category, &p.Size, &p.Color, &p.Style, &p.CreatedAt,
	)
}

func (d *DatabaseClient) CreateProduct(storeID uuid.UUID, req models.CreateProductRequest) (*models.Product, error) {
	var product models.Product
	err := scanProduct(d.db.QueryRow(`
		INSERT INTO products (store_id, name, description, image_url, product_url, category, size, color, style)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))
		RETURNING `+productColumns+`
	`, storeID, req.Name, req.Description, req.ImageURL, req.ProductURL,
		req.Category, req.Size, req.Color, req.Style), &product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, nil
}

func (d *DatabaseClient) GetProduct(productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := scanProduct(d.db.QueryRow(`
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, productID), &product)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

// ListProducts returns the whole catalog, newest first, with the owning
// store joined in for display.
func (d *DatabaseClient) ListProducts() ([]models.Product, map[uuid.UUID]models.Store, error) {
	rows, err := d.db.Query(`
		SELECT p.id, p.store_id, p.name, p.description, p.image_url, p.product_url,
		       p.category, p.size, p.color, p.style, p.created_at,
		       s.id, s.user_id, s.name, s.description, s.logo_url, s.website_url, s.is_active, s.created_at
		FROM products p
		JOIN stores s ON s.id = p.store_id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	stores := make(map[uuid.UUID]models.Store)
	for rows.Next() {
		var p models.Product
		var s models.Store
		err := rows.Scan(
			&p.ID, &p.StoreID, &p.Name, &p.Description, &p.ImageURL, &p.ProductURL,
			&p.Category, &p.Size, &p.Color, &p.Style, &p.CreatedAt,
			&s.ID, &s.UserID, &s.Name, &s.Description, &s.LogoURL, &s.WebsiteURL, &s.IsActive, &s.CreatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
		stores[s.ID] = s
	}

	return products, stores, nil
}

func (d *DatabaseClient) UpdateProduct(productID uuid.UUID, req models.UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	err := scanProduct(d.db.QueryRow(`
		UPDATE products
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    image_url = COALESCE($4, image_url),
		    product_url = COALESCE($5, product_url),
		    category = COALESCE($6, category),
		    size = COALESCE($7, size),
		    color = COALESCE($8, color),
		    style = COALESCE($9, style)
		WHERE id = $1
		RETURNING `+productColumns+`
	`, productID, req.Name, req.Description, req.ImageURL, req.ProductURL,
		req.Category, req.Size, req.Color, req.Style), &product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

func (d *DatabaseClient) DeleteProduct(productID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM products
		WHERE id = $1
	`, productID)
	return err
}
