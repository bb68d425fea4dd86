package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vold333/kitchen-order-ticket/internal/database"
)

// CategoryStore defines the database methods needed by category handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]database.Category, error)
	GetActiveCategory(ctx context.Context, id uuid.UUID) (database.Category, error)
	CreateCategory(ctx context.Context, arg database.CreateCategoryParams) (database.Category, error)
	UpdateCategory(ctx context.Context, arg database.UpdateCategoryParams) (database.Category, error)
	SoftDeleteCategory(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// CategoryHandler handles menu category endpoints.
type CategoryHandler struct {
	store CategoryStore
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(store CategoryStore) *CategoryHandler {
	return &CategoryHandler{store: store}
}

// RegisterPublicRoutes registers the read endpoints used by the kiosk menu.
func (h *CategoryHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/categories", h.List)
	r.Get("/categories/{id}", h.Get)
}

// RegisterAdminRoutes registers the write endpoints.
func (h *CategoryHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/categories", h.Create)
	r.Put("/categories/{id}", h.Update)
	r.Delete("/categories/{id}", h.Delete)
}

// --- Request / Response types ---

type categoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

type categoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCategoryResponse(c database.Category) categoryResponse {
	return categoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: textPtr(c.Description),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// --- Handlers ---

// List returns all live categories ordered by name.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.store.ListCategories(r.Context())
	if err != nil {
		writeInternalError(w, "list categories", err)
		return
	}

	resp := make([]categoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one live category.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}

	category, err := h.store.GetActiveCategory(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return
		}
		writeInternalError(w, "get category", err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// Create adds a category. Names are unique.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.store.CreateCategory(r.Context(), database.CreateCategoryParams{
		Name:        req.Name,
		Description: textOrNull(req.Description),
	})
	if err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "category name already exists"})
			return
		}
		writeInternalError(w, "create category", err)
		return
	}

	writeJSON(w, http.StatusCreated, toCategoryResponse(category))
}

// Update replaces a live category's name and description.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}

	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category, err := h.store.UpdateCategory(r.Context(), database.UpdateCategoryParams{
		ID:          categoryID,
		Name:        req.Name,
		Description: textOrNull(req.Description),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return
		}
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "category name already exists"})
			return
		}
		writeInternalError(w, "update category", err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// Delete soft-deletes a category. Its items are not deleted, they are hidden
// from item listings while the category is deleted.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category ID"})
		return
	}

	if _, err := h.store.SoftDeleteCategory(r.Context(), categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "category not found"})
			return
		}
		writeInternalError(w, "delete category", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
