package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msfworks/showcase/internal/auth"
	"github.com/msfworks/showcase/internal/model"
)

type productRow struct {
	ID               string `db:"id"`
	Slug             string `db:"slug"`
	Name             string `db:"name"`
	Category         string `db:"category"`
	ShortDescription string `db:"short_description"`
	Description      string `db:"description"`
	SpecsJSON        string `db:"specs_json"`
	ImagesJSON       string `db:"images_json"`
	IsActive         int    `db:"is_active"` // INTEGER column; Postgres has no bool→int cast
	SortOrder        int    `db:"sort_order"`
	CreatedAt        int64  `db:"created_at"`
	UpdatedAt        int64  `db:"updated_at"`
}

func productRowFromModel(p *model.Product) productRow {
	return productRow{
		ID:               p.ID,
		Slug:             p.Slug,
		Name:             p.Name,
		Category:         p.Category,
		ShortDescription: p.ShortDescription,
		Description:      p.Description,
		SpecsJSON:        p.SpecsJSON,
		ImagesJSON:       p.ImagesJSON,
		IsActive:         boolToInt(p.IsActive),
		SortOrder:        p.SortOrder,
		CreatedAt:        p.CreatedAt.UnixMilli(),
		UpdatedAt:        p.UpdatedAt.UnixMilli(),
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r productRow) toModel() *model.Product {
	return &model.Product{
		ID:               r.ID,
		Slug:             r.Slug,
		Name:             r.Name,
		Category:         r.Category,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		SpecsJSON:        r.SpecsJSON,
		ImagesJSON:       r.ImagesJSON,
		IsActive:         r.IsActive != 0,
		SortOrder:        r.SortOrder,
		CreatedAt:        time.UnixMilli(r.CreatedAt),
		UpdatedAt:        time.UnixMilli(r.UpdatedAt),
	}
}

const productColumns = `id, slug, name, category, short_description, description,
	specs_json, images_json, is_active, sort_order, created_at, updated_at`

// ListProducts returns the catalog ordered by sort_order then recency.
// Public listings exclude inactive products; the admin panel includes them.
func (s *Store) ListProducts(ctx context.Context, includeInactive bool) ([]model.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products ORDER BY sort_order ASC, updated_at DESC`
	if !includeInactive {
		q = `SELECT ` + productColumns + ` FROM products WHERE is_active = 1 ORDER BY sort_order ASC, updated_at DESC`
	}

	var rows []productRow
	if err := s.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]model.Product, len(rows))
	for i, r := range rows {
		products[i] = *r.toModel()
	}
	return products, nil
}

// GetProductBySlug returns the product with the given slug, or ErrNotFound.
func (s *Store) GetProductBySlug(ctx context.Context, slug string, includeInactive bool) (*model.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE slug = ?`
	if !includeInactive {
		q += ` AND is_active = 1`
	}

	var row productRow
	if err := s.db.GetContext(ctx, &row, s.rebind(q), slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	return row.toModel(), nil
}

// GetProductByID returns the product with the given ID, or ErrNotFound.
func (s *Store) GetProductByID(ctx context.Context, id string) (*model.Product, error) {
	var row productRow
	q := s.rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?`)
	if err := s.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return row.toModel(), nil
}

// CreateProduct inserts a new product. An empty ID is assigned a random one;
// CreatedAt and UpdatedAt are set to now.
func (s *Store) CreateProduct(ctx context.Context, p *model.Product) error {
	if p.ID == "" {
		p.ID = auth.NewToken(auth.TokenLen)
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	row := productRowFromModel(p)
	q := `INSERT INTO products (` + productColumns + `)
		VALUES (:id, :slug, :name, :category, :short_description, :description,
			:specs_json, :images_json, :is_active, :sort_order, :created_at, :updated_at)`
	if _, err := s.db.NamedExecContext(ctx, q, row); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// UpdateProduct applies a partial patch to the product and returns the
// updated record, or ErrNotFound if no such product exists.
func (s *Store) UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	existing, err := s.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Slug != nil {
		existing.Slug = *patch.Slug
	}
	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Category != nil {
		existing.Category = *patch.Category
	}
	if patch.ShortDescription != nil {
		existing.ShortDescription = *patch.ShortDescription
	}
	if patch.Description != nil {
		existing.Description = *patch.Description
	}
	if patch.SpecsJSON != nil {
		existing.SpecsJSON = *patch.SpecsJSON
	}
	if patch.ImagesJSON != nil {
		existing.ImagesJSON = *patch.ImagesJSON
	}
	if patch.IsActive != nil {
		existing.IsActive = *patch.IsActive
	}
	if patch.SortOrder != nil {
		existing.SortOrder = *patch.SortOrder
	}
	existing.UpdatedAt = time.Now()

	row := productRowFromModel(existing)
	q := `UPDATE products SET
		slug = :slug, name = :name, category = :category,
		short_description = :short_description, description = :description,
		specs_json = :specs_json, images_json = :images_json,
		is_active = :is_active, sort_order = :sort_order, updated_at = :updated_at
		WHERE id = :id`
	if _, err := s.db.NamedExecContext(ctx, q, row); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return existing, nil
}

// DeleteProduct removes a product. Deleting a missing product is not an error.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	q := s.rebind(`DELETE FROM products WHERE id = ?`)
	if _, err := s.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
