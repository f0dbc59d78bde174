package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/msfworks/showcase/internal/model"
	"github.com/msfworks/showcase/internal/store"
)

// ProductHandler serves the public catalog and the admin CRUD endpoints.
// Admin routes are guarded by middleware; the handler itself doesn't check.
type ProductHandler struct {
	store *store.Store
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(st *store.Store) *ProductHandler {
	return &ProductHandler{store: st}
}

// ListPublic returns active products only, in display order.
// GET /api/v1/products
func (h *ProductHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context(), false)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}
	writeOK(w, http.StatusOK, map[string]interface{}{"products": products})
}

// GetPublic returns one active product by slug.
// GET /api/v1/products/{slug}
func (h *ProductHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	product, err := h.store.GetProductBySlug(r.Context(), slug, false)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	writeOK(w, http.StatusOK, map[string]interface{}{"product": product})
}

// ListAdmin returns the full catalog, inactive products included.
// GET /api/v1/admin/products
func (h *ProductHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context(), true)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list products")
		return
	}
	writeOK(w, http.StatusOK, map[string]interface{}{"products": products})
}

// GetAdmin returns one product by ID regardless of visibility.
// GET /api/v1/admin/products/{id}
func (h *ProductHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	product, err := h.store.GetProductByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	writeOK(w, http.StatusOK, map[string]interface{}{"product": product})
}

// createProductRequest is the payload for product creation. Specs and
// images arrive structured and are serialized to the JSON text columns here,
// at the boundary.
type createProductRequest struct {
	Slug             string                 `json:"slug"`
	Name             string                 `json:"name"`
	Category         string                 `json:"category"`
	ShortDescription string                 `json:"short_description"`
	Description      string                 `json:"description"`
	Specs            map[string]interface{} `json:"specs"`
	Images           []string               `json:"images"`
	IsActive         *bool                  `json:"is_active"`
	SortOrder        *int                   `json:"sort_order"`
}

// Create adds a product to the catalog.
// POST /api/v1/admin/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case !model.IsNonEmpty(req.Name, model.MaxNameLen):
		writeError(w, http.StatusBadRequest, "Missing name")
		return
	case !model.IsNonEmpty(req.Category, model.MaxCategoryLen):
		writeError(w, http.StatusBadRequest, "Missing category")
		return
	case !model.IsNonEmpty(req.ShortDescription, model.MaxShortDescriptionLen):
		writeError(w, http.StatusBadRequest, "Missing short_description")
		return
	case !model.IsNonEmpty(req.Description, model.MaxDescriptionLen):
		writeError(w, http.StatusBadRequest, "Missing description")
		return
	case !model.IsSlug(req.Slug):
		writeError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	product := &model.Product{
		Slug:             req.Slug,
		Name:             req.Name,
		Category:         req.Category,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		SpecsJSON:        "{}",
		ImagesJSON:       "[]",
		IsActive:         req.IsActive == nil || *req.IsActive,
		SortOrder:        0,
	}
	if req.Specs != nil {
		product.SpecsJSON = marshalJSON(req.Specs)
	}
	if req.Images != nil {
		product.ImagesJSON = marshalJSON(req.Images)
	}
	if req.SortOrder != nil {
		product.SortOrder = *req.SortOrder
	}

	if err := h.store.CreateProduct(r.Context(), product); err != nil {
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "Slug already in use")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}
	writeOK(w, http.StatusCreated, map[string]interface{}{"product": product})
}

// updateProductRequest is the payload for partial product updates. Absent
// fields are left untouched; present fields are validated like on create.
type updateProductRequest struct {
	Slug             *string                 `json:"slug"`
	Name             *string                 `json:"name"`
	Category         *string                 `json:"category"`
	ShortDescription *string                 `json:"short_description"`
	Description      *string                 `json:"description"`
	Specs            *map[string]interface{} `json:"specs"`
	Images           *[]string               `json:"images"`
	IsActive         *bool                   `json:"is_active"`
	SortOrder        *int                    `json:"sort_order"`
}

// Update applies a partial patch to a product.
// PATCH /api/v1/admin/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateProductRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var patch model.ProductPatch
	if req.Slug != nil {
		if !model.IsSlug(*req.Slug) {
			writeError(w, http.StatusBadRequest, "Invalid slug")
			return
		}
		patch.Slug = req.Slug
	}
	if req.Name != nil {
		if !model.IsNonEmpty(*req.Name, model.MaxNameLen) {
			writeError(w, http.StatusBadRequest, "Invalid name")
			return
		}
		patch.Name = req.Name
	}
	if req.Category != nil {
		if !model.IsNonEmpty(*req.Category, model.MaxCategoryLen) {
			writeError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		patch.Category = req.Category
	}
	if req.ShortDescription != nil {
		if !model.IsNonEmpty(*req.ShortDescription, model.MaxShortDescriptionLen) {
			writeError(w, http.StatusBadRequest, "Invalid short_description")
			return
		}
		patch.ShortDescription = req.ShortDescription
	}
	if req.Description != nil {
		if !model.IsNonEmpty(*req.Description, model.MaxDescriptionLen) {
			writeError(w, http.StatusBadRequest, "Invalid description")
			return
		}
		patch.Description = req.Description
	}
	if req.Specs != nil {
		specs := marshalJSON(*req.Specs)
		patch.SpecsJSON = &specs
	}
	if req.Images != nil {
		images := marshalJSON(*req.Images)
		patch.ImagesJSON = &images
	}
	patch.IsActive = req.IsActive
	patch.SortOrder = req.SortOrder

	product, err := h.store.UpdateProduct(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		if store.IsUniqueViolation(err) {
			writeError(w, http.StatusConflict, "Slug already in use")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	writeOK(w, http.StatusOK, map[string]interface{}{"product": product})
}

// Delete removes a product. Deleting a missing ID still returns success.
// DELETE /api/v1/admin/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	writeOK(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// marshalJSON serializes v, falling back to "null" — the columns are NOT
// NULL and the frontend treats "null" as empty.
func marshalJSON(v interface{}) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
