package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Letter Template Methods
// -----------------------------------------------------------------------------

const templateColumns = `id, name, category, subject, body, variables,
	fixed_pdf, file_path, locked, created_at, updated_at`

// CreateTemplate stores a new letter template and returns the full row.
func (db *DB) CreateTemplate(ctx context.Context, t *LetterTemplate) (*LetterTemplate, error) {
	if t.FixedPDF && t.Body != "" {
		return nil, fmt.Errorf("fixed-pdf template cannot carry body markup")
	}
	if !t.FixedPDF && t.FilePath != "" {
		return nil, fmt.Errorf("markup template cannot carry a stored file path")
	}

	var out LetterTemplate
	err := db.pool.QueryRow(ctx,
		`INSERT INTO letter_templates (name, category, subject, body, variables, fixed_pdf, file_path, locked)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+templateColumns,
		t.Name, t.Category, t.Subject, t.Body, t.Variables, t.FixedPDF, t.FilePath, t.Locked,
	).Scan(templateFields(&out)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create template: %w", err)
	}
	return &out, nil
}

// GetTemplate retrieves a template by id, or nil when it does not exist.
func (db *DB) GetTemplate(ctx context.Context, id uuid.UUID) (*LetterTemplate, error) {
	var t LetterTemplate
	err := db.pool.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM letter_templates WHERE id = $1`, id,
	).Scan(templateFields(&t)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &t, nil
}

// ListTemplates returns all templates ordered by name.
func (db *DB) ListTemplates(ctx context.Context) ([]LetterTemplate, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+templateColumns+` FROM letter_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	var templates []LetterTemplate
	for rows.Next() {
		var t LetterTemplate
		if err := rows.Scan(templateFields(&t)...); err != nil {
			return nil, fmt.Errorf("failed to scan template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// UpdateTemplate edits a stored template's authored fields.
func (db *DB) UpdateTemplate(ctx context.Context, t *LetterTemplate) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE letter_templates SET
			name = $1, category = $2, subject = $3, body = $4, variables = $5,
			locked = $6, updated_at = NOW()
		 WHERE id = $7`,
		t.Name, t.Category, t.Subject, t.Body, t.Variables, t.Locked, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template not found: %s", t.ID)
	}
	return nil
}

// SetTemplateFile attaches a stored PDF to a template, converting it to a
// fixed-pdf template. Any authored body markup is cleared.
func (db *DB) SetTemplateFile(ctx context.Context, id uuid.UUID, filePath string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE letter_templates SET
			fixed_pdf = TRUE, file_path = $1, body = '', updated_at = NOW()
		 WHERE id = $2`,
		filePath, id,
	)
	if err != nil {
		return fmt.Errorf("failed to attach template file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("template not found: %s", id)
	}
	return nil
}

// DeleteTemplate removes a template and returns its stored file path so the
// caller can delete the file of a fixed-pdf template.
func (db *DB) DeleteTemplate(ctx context.Context, id uuid.UUID) (string, error) {
	var filePath string
	err := db.pool.QueryRow(ctx,
		`DELETE FROM letter_templates WHERE id = $1 RETURNING file_path`, id,
	).Scan(&filePath)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", fmt.Errorf("template not found: %s", id)
		}
		return "", fmt.Errorf("failed to delete template: %w", err)
	}
	return filePath, nil
}

func templateFields(t *LetterTemplate) []any {
	return []any{
		&t.ID, &t.Name, &t.Category, &t.Subject, &t.Body, &t.Variables,
		&t.FixedPDF, &t.FilePath, &t.Locked, &t.CreatedAt, &t.UpdatedAt,
	}
}
