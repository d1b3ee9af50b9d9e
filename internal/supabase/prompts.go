package supabase

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"estiloplus-backend/internal/models"
)

const promptColumns = "id, name, content, is_active, created_at, updated_at"

func scanPrompt(row interface{ Scan(...interface{}) error }, p *models.Prompt) error {
	return row.Scan(&p.ID, &p.Name, &p.Content, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
}

// GetActivePrompt returns the newest active template, or nil when none is
// active. The caller falls back to the built-in default in that case.
func (d *DatabaseClient) GetActivePrompt() (*models.Prompt, error) {
	var prompt models.Prompt
	err := scanPrompt(d.db.QueryRow(`
		SELECT `+promptColumns+`
		FROM prompts
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT 1
	`), &prompt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active prompt: %w", err)
	}

	return &prompt, nil
}

func (d *DatabaseClient) ListPrompts() ([]models.Prompt, error) {
	rows, err := d.db.Query(`
		SELECT ` + promptColumns + `
		FROM prompts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []models.Prompt
	for rows.Next() {
		var prompt models.Prompt
		if err := scanPrompt(rows, &prompt); err != nil {
			return nil, fmt.Errorf("failed to scan prompt: %w", err)
		}
		prompts = append(prompts, prompt)
	}

	return prompts, nil
}

// CreatePrompt inserts a template. Activating it deactivates every other
// template in the same transaction, keeping at most one active row.
func (d *DatabaseClient) CreatePrompt(name, content string, isActive bool) (*models.Prompt, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if isActive {
		if _, err := tx.Exec(`UPDATE prompts SET is_active = FALSE WHERE is_active = TRUE`); err != nil {
			return nil, fmt.Errorf("failed to deactivate prompts: %w", err)
		}
	}

	var prompt models.Prompt
	err = scanPrompt(tx.QueryRow(`
		INSERT INTO prompts (name, content, is_active)
		VALUES ($1, $2, $3)
		RETURNING `+promptColumns+`
	`, name, content, isActive), &prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit prompt: %w", err)
	}

	return &prompt, nil
}

func (d *DatabaseClient) UpdatePrompt(promptID uuid.UUID, req models.UpdatePromptRequest) (*models.Prompt, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if req.IsActive != nil && *req.IsActive {
		if _, err := tx.Exec(`UPDATE prompts SET is_active = FALSE WHERE is_active = TRUE AND id <> $1`, promptID); err != nil {
			return nil, fmt.Errorf("failed to deactivate prompts: %w", err)
		}
	}

	var prompt models.Prompt
	err = scanPrompt(tx.QueryRow(`
		UPDATE prompts
		SET name = COALESCE($2, name),
		    content = COALESCE($3, content),
		    is_active = COALESCE($4, is_active),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+promptColumns+`
	`, promptID, req.Name, req.Content, req.IsActive), &prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to update prompt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit prompt: %w", err)
	}

	return &prompt, nil
}

func (d *DatabaseClient) DeletePrompt(promptID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM prompts
		WHERE id = $1
	`, promptID)
	return err
}
