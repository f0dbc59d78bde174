package store

import (
	"context"
	"errors"
	"testing"

	"github.com/msfworks/showcase/internal/model"
)

func seedProduct(t *testing.T, s *Store, slug string, active bool, sortOrder int) *model.Product {
	t.Helper()
	p := &model.Product{
		Slug:             slug,
		Name:             "Product " + slug,
		Category:         "widgets",
		ShortDescription: "A short description",
		Description:      "A much longer description of the product.",
		SpecsJSON:        `{"weight":"2kg"}`,
		ImagesJSON:       `["/img/one.jpg"]`,
		IsActive:         active,
		SortOrder:        sortOrder,
	}
	if err := s.CreateProduct(context.Background(), p); err != nil {
		t.Fatalf("CreateProduct(%q): %v", slug, err)
	}
	return p
}

func TestProductCRUD(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, "steel-bracket", true, 0)
	if p.ID == "" {
		t.Fatal("expected generated ID after create")
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("timestamps not set on create")
	}

	got, err := s.GetProductBySlug(ctx, "steel-bracket", false)
	if err != nil {
		t.Fatalf("GetProductBySlug: %v", err)
	}
	if got.Name != p.Name || got.SpecsJSON != p.SpecsJSON {
		t.Errorf("got %+v, want %+v", got, p)
	}

	got2, err := s.GetProductByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProductByID: %v", err)
	}
	if got2.Slug != "steel-bracket" {
		t.Errorf("got slug %q, want %q", got2.Slug, "steel-bracket")
	}

	name := "Renamed"
	active := false
	updated, err := s.UpdateProduct(ctx, p.ID, model.ProductPatch{Name: &name, IsActive: &active})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("got name %q, want %q", updated.Name, "Renamed")
	}
	if updated.IsActive {
		t.Error("IsActive not patched")
	}
	if updated.Category != "widgets" {
		t.Errorf("unpatched field changed: category = %q", updated.Category)
	}

	if err := s.DeleteProduct(ctx, p.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if _, err := s.GetProductByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProductByID after delete = %v, want ErrNotFound", err)
	}
	// Idempotent delete.
	if err := s.DeleteProduct(ctx, p.ID); err != nil {
		t.Errorf("DeleteProduct (second call): %v", err)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	s := newTestStore(t)
	name := "x"
	if _, err := s.UpdateProduct(context.Background(), "missing", model.ProductPatch{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateProduct on missing ID = %v, want ErrNotFound", err)
	}
}

func TestListProductsVisibilityAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedProduct(t, s, "third", true, 2)
	seedProduct(t, s, "first", true, 0)
	seedProduct(t, s, "hidden", false, 1)

	public, err := s.ListProducts(ctx, false)
	if err != nil {
		t.Fatalf("ListProducts(public): %v", err)
	}
	if len(public) != 2 {
		t.Fatalf("got %d public products, want 2", len(public))
	}
	if public[0].Slug != "first" || public[1].Slug != "third" {
		t.Errorf("public order = [%s, %s], want [first, third]", public[0].Slug, public[1].Slug)
	}

	all, err := s.ListProducts(ctx, true)
	if err != nil {
		t.Fatalf("ListProducts(admin): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d products for admin, want 3", len(all))
	}

	// Inactive products are invisible through the public slug lookup but
	// visible to the admin panel.
	if _, err := s.GetProductBySlug(ctx, "hidden", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("public lookup of inactive product = %v, want ErrNotFound", err)
	}
	if _, err := s.GetProductBySlug(ctx, "hidden", true); err != nil {
		t.Errorf("admin lookup of inactive product: %v", err)
	}
}

func TestProductRowActiveFlag(t *testing.T) {
	// The is_active column is INTEGER on every engine, and Postgres won't
	// coerce a Go bool into it. The row struct carries 0/1 and converts at
	// the boundary, both directions.
	for _, active := range []bool{true, false} {
		row := productRowFromModel(&model.Product{IsActive: active})
		want := 0
		if active {
			want = 1
		}
		if row.IsActive != want {
			t.Errorf("productRowFromModel(IsActive=%v).IsActive = %d, want %d", active, row.IsActive, want)
		}
		if got := row.toModel().IsActive; got != active {
			t.Errorf("round trip IsActive = %v, want %v", got, active)
		}
	}
}

func TestProductSlugUnique(t *testing.T) {
	s := newTestStore(t)
	seedProduct(t, s, "dup", true, 0)
	p := &model.Product{
		Slug:             "dup",
		Name:             "Another",
		Category:         "widgets",
		ShortDescription: "s",
		Description:      "d",
		SpecsJSON:        "{}",
		ImagesJSON:       "[]",
		IsActive:         true,
	}
	err := s.CreateProduct(context.Background(), p)
	if err == nil {
		t.Fatal("duplicate slug insert succeeded, want unique violation")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("IsUniqueViolation(%v) = false, want true", err)
	}
}
