package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vold333/kitchen-order-ticket/internal/database"
)

// CookingCommentStore defines the database methods needed by cooking comment handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CookingCommentStore interface {
	ListCookingComments(ctx context.Context, categoryID pgtype.UUID) ([]database.CookingComment, error)
	GetCookingComment(ctx context.Context, id uuid.UUID) (database.CookingComment, error)
	CreateCookingComment(ctx context.Context, arg database.CreateCookingCommentParams) (database.CookingComment, error)
	UpdateCookingComment(ctx context.Context, arg database.UpdateCookingCommentParams) (database.CookingComment, error)
	SoftDeleteCookingComment(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	GetActiveCategory(ctx context.Context, id uuid.UUID) (database.Category, error)
}

// CookingCommentHandler handles the canned per-category notes a waiter can
// attach to a line item.
type CookingCommentHandler struct {
	store CookingCommentStore
}

// NewCookingCommentHandler creates a new CookingCommentHandler.
func NewCookingCommentHandler(store CookingCommentStore) *CookingCommentHandler {
	return &CookingCommentHandler{store: store}
}

func (h *CookingCommentHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/cooking-comments", h.List)
	r.Get("/cooking-comments/{id}", h.Get)
}

func (h *CookingCommentHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/cooking-comments", h.Create)
	r.Put("/cooking-comments/{id}", h.Update)
	r.Delete("/cooking-comments/{id}", h.Delete)
}

type cookingCommentRequest struct {
	CategoryID string `json:"category_id" validate:"required,uuid"`
	Comment    string `json:"comment" validate:"required,max=200"`
}

type cookingCommentResponse struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Comment    string    `json:"comment"`
}

func toCookingCommentResponse(c database.CookingComment) cookingCommentResponse {
	return cookingCommentResponse{ID: c.ID, CategoryID: c.CategoryID, Comment: c.Comment}
}

// List returns live comments, optionally for one ?category_id=.
func (h *CookingCommentHandler) List(w http.ResponseWriter, r *http.Request) {
	var categoryID pgtype.UUID
	if s := r.URL.Query().Get("category_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid category_id"})
			return
		}
		categoryID = pgtype.UUID{Bytes: id, Valid: true}
	}

	comments, err := h.store.ListCookingComments(r.Context(), categoryID)
	if err != nil {
		writeInternalError(w, "list cooking comments", err)
		return
	}

	resp := make([]cookingCommentResponse, len(comments))
	for i, c := range comments {
		resp[i] = toCookingCommentResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CookingCommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid cooking comment ID"})
		return
	}

	comment, err := h.store.GetCookingComment(r.Context(), commentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "cooking comment not found"})
			return
		}
		writeInternalError(w, "get cooking comment", err)
		return
	}

	writeJSON(w, http.StatusOK, toCookingCommentResponse(comment))
}

func (h *CookingCommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req cookingCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	categoryID, ok := h.activeCategory(w, r, req.CategoryID)
	if !ok {
		return
	}

	comment, err := h.store.CreateCookingComment(r.Context(), database.CreateCookingCommentParams{
		CategoryID: categoryID,
		Comment:    req.Comment,
	})
	if err != nil {
		writeInternalError(w, "create cooking comment", err)
		return
	}

	writeJSON(w, http.StatusCreated, toCookingCommentResponse(comment))
}

func (h *CookingCommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid cooking comment ID"})
		return
	}

	var req cookingCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	categoryID, ok := h.activeCategory(w, r, req.CategoryID)
	if !ok {
		return
	}

	comment, err := h.store.UpdateCookingComment(r.Context(), database.UpdateCookingCommentParams{
		ID:         commentID,
		CategoryID: categoryID,
		Comment:    req.Comment,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "cooking comment not found"})
			return
		}
		writeInternalError(w, "update cooking comment", err)
		return
	}

	writeJSON(w, http.StatusOK, toCookingCommentResponse(comment))
}

func (h *CookingCommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	commentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid cooking comment ID"})
		return
	}

	if _, err := h.store.SoftDeleteCookingComment(r.Context(), commentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "cooking comment not found"})
			return
		}
		writeInternalError(w, "delete cooking comment", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CookingCommentHandler) activeCategory(w http.ResponseWriter, r *http.Request, raw string) (uuid.UUID, bool) {
	id := uuid.MustParse(raw) // validated by the uuid tag
	if _, err := h.store.GetActiveCategory(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category_id must reference an active category"})
			return uuid.Nil, false
		}
		writeInternalError(w, "get category", err)
		return uuid.Nil, false
	}
	return id, true
}
