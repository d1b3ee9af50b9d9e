package supabase

import (
	"fmt"

	"estiloplus-backend/internal/models"
)

// GetStats aggregates the operator dashboard counters in one round trip.
func (d *DatabaseClient) GetStats() (*models.StatsResponse, error) {
	var stats models.StatsResponse
	err := d.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role = 'client'),
			(SELECT COUNT(*) FROM users WHERE role = 'store'),
			(SELECT COUNT(*) FROM users WHERE role = 'admin'),
			(SELECT COUNT(*) FROM stores),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM generated_images),
			(SELECT COALESCE(SUM(credits), 0) FROM users)
	`).Scan(
		&stats.TotalUsers, &stats.ClientCount, &stats.StoreCount, &stats.AdminCount,
		&stats.TotalStores, &stats.TotalProducts, &stats.TotalGeneratedImages,
		&stats.TotalCreditsInCirculation,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &stats, nil
}
