package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"estiloplus-backend/internal/models"
)

// CreateGeneratedImage records the artifact of one successful generation.
// Rows are never updated afterwards.
func (d *DatabaseClient) CreateGeneratedImage(img *models.GeneratedImage) error {
	err := d.db.QueryRow(`
		INSERT INTO generated_images (user_id, product_id, original_image_url, generated_image_url, prompt_used)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, img.UserID, img.ProductID, img.OriginalImageURL, img.GeneratedImageURL, img.PromptUsed).
		Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create generated image: %w", err)
	}

	return nil
}

// ListGeneratedImages returns the account's artifacts, newest first, with
// the source product joined in when it still exists. Artifacts whose product
// was deleted come back with a null product.
func (d *DatabaseClient) ListGeneratedImages(userID uuid.UUID) ([]models.GeneratedImage, map[uuid.UUID]models.Product, error) {
	rows, err := d.db.Query(`
		SELECT g.id, g.user_id, g.product_id, g.original_image_url, g.generated_image_url, g.prompt_used, g.created_at,
		       p.id, p.store_id, p.name, p.description, p.image_url, p.product_url,
		       p.category, p.size, p.color, p.style, p.created_at
		FROM generated_images g
		LEFT JOIN products p ON p.id = g.product_id
		WHERE g.user_id = $1
		ORDER BY g.created_at DESC
	`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list generated images: %w", err)
	}
	defer rows.Close()

	var images []models.GeneratedImage
	products := make(map[uuid.UUID]models.Product)
	for rows.Next() {
		var img models.GeneratedImage
		var pID, pStoreID uuid.NullUUID
		var pName, pImageURL sql.NullString
		var pDesc, pProductURL, pCategory, pSize, pColor, pStyle sql.NullString
		var pCreatedAt sql.NullTime

		err := rows.Scan(
			&img.ID, &img.UserID, &img.ProductID, &img.OriginalImageURL, &img.GeneratedImageURL, &img.PromptUsed, &img.CreatedAt,
			&pID, &pStoreID, &pName, &pDesc, &pImageURL, &pProductURL,
			&pCategory, &pSize, &pColor, &pStyle, &pCreatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan generated image: %w", err)
		}
		images = append(images, img)

		if pID.Valid {
			products[pID.UUID] = models.Product{
				ID:          pID.UUID,
				StoreID:     pStoreID.UUID,
				Name:        pName.String,
				Description: pDesc,
				ImageURL:    pImageURL.String,
				ProductURL:  pProductURL,
				Category:    pCategory,
				Size:        pSize,
				Color:       pColor,
				Style:       pStyle,
				CreatedAt:   pCreatedAt.Time,
			}
		}
	}

	return images, products, nil
}
