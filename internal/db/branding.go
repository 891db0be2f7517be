package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Default page geometry: US Letter in PDF points with one-inch margins.
const (
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
	DefaultMargin     = 72.0
)

// -----------------------------------------------------------------------------
// Branding Profile Methods
// -----------------------------------------------------------------------------

const brandingColumns = `id, company_name, company_address, contact_lines,
	logo_url, signature_url, letterhead_url, letterhead_active,
	page_width, page_height, margin_top, margin_bottom, margin_left, margin_right,
	safe_x, safe_y, safe_width, safe_height, created_at, updated_at`

// GetOrCreateBranding returns the singleton branding profile, creating it with
// default page geometry on first read.
func (db *DB) GetOrCreateBranding(ctx context.Context) (*BrandingProfile, error) {
	profile, err := db.getBranding(ctx)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	seed := &BrandingProfile{
		PageWidth:    DefaultPageWidth,
		PageHeight:   DefaultPageHeight,
		MarginTop:    DefaultMargin,
		MarginBottom: DefaultMargin,
		MarginLeft:   DefaultMargin,
		MarginRight:  DefaultMargin,
	}
	seed.SafeArea = seed.ComputeSafeArea()

	var p BrandingProfile
	err = db.pool.QueryRow(ctx,
		`INSERT INTO branding_profiles
			(page_width, page_height, margin_top, margin_bottom, margin_left, margin_right,
			 safe_x, safe_y, safe_width, safe_height)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+brandingColumns,
		seed.PageWidth, seed.PageHeight, seed.MarginTop, seed.MarginBottom,
		seed.MarginLeft, seed.MarginRight,
		seed.SafeArea.X, seed.SafeArea.Y, seed.SafeArea.Width, seed.SafeArea.Height,
	).Scan(brandingFields(&p)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create branding profile: %w", err)
	}
	return &p, nil
}

// getBranding returns the profile row or nil when none exists yet.
func (db *DB) getBranding(ctx context.Context) (*BrandingProfile, error) {
	var p BrandingProfile
	err := db.pool.QueryRow(ctx,
		`SELECT `+brandingColumns+` FROM branding_profiles LIMIT 1`,
	).Scan(brandingFields(&p)...)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get branding profile: %w", err)
	}
	return &p, nil
}

// UpdateBranding updates the identity and asset fields of the profile. Layout
// fields are updated only through UpdateBrandingLayout so the safe area stays
// consistent.
func (db *DB) UpdateBranding(ctx context.Context, p *BrandingProfile) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE branding_profiles SET
			company_name = $1, company_address = $2, contact_lines = $3,
			logo_url = $4, signature_url = $5, letterhead_url = $6,
			letterhead_active = $7, updated_at = NOW()
		 WHERE id = $8`,
		p.CompanyName, p.CompanyAddress, p.ContactLines,
		p.LogoURL, p.SignatureURL, p.LetterheadURL, p.LetterheadActive, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update branding profile: %w", err)
	}
	return nil
}

// UpdateBrandingLayout sets page size and margins and recomputes the safe
// content area in the same statement, so the derived rectangle can never drift
// from its inputs.
func (db *DB) UpdateBrandingLayout(ctx context.Context, p *BrandingProfile) error {
	p.SafeArea = p.ComputeSafeArea()
	_, err := db.pool.Exec(ctx,
		`UPDATE branding_profiles SET
			page_width = $1, page_height = $2,
			margin_top = $3, margin_bottom = $4, margin_left = $5, margin_right = $6,
			safe_x = $7, safe_y = $8, safe_width = $9, safe_height = $10,
			updated_at = NOW()
		 WHERE id = $11`,
		p.PageWidth, p.PageHeight,
		p.MarginTop, p.MarginBottom, p.MarginLeft, p.MarginRight,
		p.SafeArea.X, p.SafeArea.Y, p.SafeArea.Width, p.SafeArea.Height, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update branding layout: %w", err)
	}
	return nil
}

// brandingFields returns scan destinations matching brandingColumns order.
func brandingFields(p *BrandingProfile) []any {
	return []any{
		&p.ID, &p.CompanyName, &p.CompanyAddress, &p.ContactLines,
		&p.LogoURL, &p.SignatureURL, &p.LetterheadURL, &p.LetterheadActive,
		&p.PageWidth, &p.PageHeight, &p.MarginTop, &p.MarginBottom,
		&p.MarginLeft, &p.MarginRight,
		&p.SafeArea.X, &p.SafeArea.Y, &p.SafeArea.Width, &p.SafeArea.Height,
		&p.CreatedAt, &p.UpdatedAt,
	}
}
