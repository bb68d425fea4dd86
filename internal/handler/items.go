package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/enum"
)

// ItemStore defines the database methods needed by menu item handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ItemStore interface {
	ListVisibleItems(ctx context.Context, arg database.ListVisibleItemsParams) ([]database.ListVisibleItemsRow, error)
	GetVisibleItem(ctx context.Context, id uuid.UUID) (database.Item, error)
	CreateItem(ctx context.Context, arg database.CreateItemParams) (database.Item, error)
	UpdateItem(ctx context.Context, arg database.UpdateItemParams) (database.Item, error)
	SoftDeleteItem(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	GetActiveCategory(ctx context.Context, id uuid.UUID) (database.Category, error)
}

// ItemHandler handles menu item endpoints.
type ItemHandler struct {
	store ItemStore
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(store ItemStore) *ItemHandler {
	return &ItemHandler{store: store}
}

// RegisterPublicRoutes registers item reads and the grouped menu.
func (h *ItemHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/items", h.List)
	r.Get("/items/{id}", h.Get)
	r.Get("/menu", h.Menu)
}

// RegisterAdminRoutes registers the write endpoints.
func (h *ItemHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/items", h.Create)
	r.Put("/items/{id}", h.Update)
	r.Delete("/items/{id}", h.Delete)
}

// --- Request / Response types ---

type itemRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
	Price       string `json:"price" validate:"required"`
	CategoryID  string `json:"category_id" validate:"required,uuid"`
	Image       string `json:"image"`
	Status      string `json:"status" validate:"omitempty,oneof=available unavailable"`
}

type itemResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Price        string    `json:"price"`
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Image        *string   `json:"image"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type menuCategoryResponse struct {
	CategoryID   uuid.UUID      `json:"category_id"`
	CategoryName string         `json:"category_name"`
	Items        []itemResponse `json:"items"`
}

func toItemResponse(i database.Item) itemResponse {
	return itemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: textPtr(i.Description),
		Price:       numericToString(i.Price),
		CategoryID:  i.CategoryID,
		Image:       textPtr(i.Image),
		Status:      i.Status,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// --- Handlers ---

// List returns visible items, optionally filtered by ?category_id= and ?status=.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	var params database.ListVisibleItemsParams
	if s := r.URL.Query().Get("category_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category_id"})
			return
		}
		params.CategoryID = pgtype.UUID{Bytes: id, Valid: true}
	}
	if s := r.URL.Query().Get("status"); s != "" {
		if !enum.IsItemStatus(s) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
			return
		}
		params.Status = pgtype.Text{String: s, Valid: true}
	}

	items, err := h.store.ListVisibleItems(r.Context(), params)
	if err != nil {
		writeInternalError(w, "list items", err)
		return
	}

	resp := make([]itemResponse, len(items))
	for i, it := range items {
		resp[i] = toItemResponse(it.Item)
		resp[i].CategoryName = it.CategoryName
	}
	writeJSON(w, http.StatusOK, resp)
}

// Menu returns available items grouped by category, categories in name order.
func (h *ItemHandler) Menu(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListVisibleItems(r.Context(), database.ListVisibleItemsParams{
		Status: pgtype.Text{String: enum.ItemStatusAvailable, Valid: true},
	})
	if err != nil {
		writeInternalError(w, "list menu", err)
		return
	}

	menu := []menuCategoryResponse{}
	index := make(map[uuid.UUID]int)
	for _, it := range items {
		pos, ok := index[it.CategoryID]
		if !ok {
			pos = len(menu)
			index[it.CategoryID] = pos
			menu = append(menu, menuCategoryResponse{
				CategoryID:   it.CategoryID,
				CategoryName: it.CategoryName,
			})
		}
		menu[pos].Items = append(menu[pos].Items, toItemResponse(it.Item))
	}
	writeJSON(w, http.StatusOK, menu)
}

// Get returns one visible item.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return
	}

	item, err := h.store.GetVisibleItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		writeInternalError(w, "get item", err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// Create adds an item to a live category.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params, ok := h.itemParams(w, r, req)
	if !ok {
		return
	}

	item, err := h.store.CreateItem(r.Context(), params)
	if err != nil {
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category_id must reference an active category"})
			return
		}
		writeInternalError(w, "create item", err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(item))
}

// Update replaces a live item's fields.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return
	}

	var req itemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	params, ok := h.itemParams(w, r, req)
	if !ok {
		return
	}

	item, err := h.store.UpdateItem(r.Context(), database.UpdateItemParams{
		ID:          itemID,
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		CategoryID:  params.CategoryID,
		Image:       params.Image,
		Status:      params.Status,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		if isForeignKeyViolation(err) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category_id must reference an active category"})
			return
		}
		writeInternalError(w, "update item", err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(item))
}

// Delete soft-deletes an item. Existing order lines keep referencing it.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid item ID"})
		return
	}

	if _, err := h.store.SoftDeleteItem(r.Context(), itemID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		writeInternalError(w, "delete item", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// itemParams validates price and category and builds the insert params.
// It writes the error response itself.
func (h *ItemHandler) itemParams(w http.ResponseWriter, r *http.Request, req itemRequest) (database.CreateItemParams, bool) {
	price, err := parsePrice(req.Price)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "price must be a non-negative amount"})
		return database.CreateItemParams{}, false
	}

	categoryID := uuid.MustParse(req.CategoryID) // validated by the uuid tag
	if _, err := h.store.GetActiveCategory(r.Context(), categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category_id must reference an active category"})
			return database.CreateItemParams{}, false
		}
		writeInternalError(w, "get category", err)
		return database.CreateItemParams{}, false
	}

	status := req.Status
	if status == "" {
		status = enum.ItemStatusAvailable
	}

	return database.CreateItemParams{
		Name:        req.Name,
		Description: textOrNull(req.Description),
		Price:       price,
		CategoryID:  categoryID,
		Image:       textOrNull(req.Image),
		Status:      status,
	}, true
}
