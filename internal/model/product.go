package model

import "time"

// Product is a catalog entry shown on the marketing site. Specs and images
// are stored as JSON text columns; the API accepts them as structured values
// and serializes at the handler boundary.
type Product struct {
	ID               string    `json:"id" db:"id"`
	Slug             string    `json:"slug" db:"slug"`
	Name             string    `json:"name" db:"name"`
	Category         string    `json:"category" db:"category"`
	ShortDescription string    `json:"short_description" db:"short_description"`
	Description      string    `json:"description" db:"description"`
	SpecsJSON        string    `json:"specs_json" db:"specs_json"`
	ImagesJSON       string    `json:"images_json" db:"images_json"`
	IsActive         bool      `json:"is_active" db:"is_active"`
	SortOrder        int       `json:"sort_order" db:"sort_order"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// ProductPatch is a partial update to a product. Nil fields are left
// unchanged.
type ProductPatch struct {
	Slug             *string
	Name             *string
	Category         *string
	ShortDescription *string
	Description      *string
	SpecsJSON        *string
	ImagesJSON       *string
	IsActive         *bool
	SortOrder        *int
}
