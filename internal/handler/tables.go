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

// TableStore defines the database methods needed by table handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type TableStore interface {
	ListTables(ctx context.Context) ([]database.ListTablesRow, error)
	GetTable(ctx context.Context, id uuid.UUID) (database.RestaurantTable, error)
	CreateTable(ctx context.Context, arg database.CreateTableParams) (database.RestaurantTable, error)
	UpdateTable(ctx context.Context, arg database.UpdateTableParams) (database.RestaurantTable, error)
	SoftDeleteTable(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	GetActiveUser(ctx context.Context, id uuid.UUID) (database.User, error)
}

// TableHandler handles restaurant table endpoints.
type TableHandler struct {
	store TableStore
}

// NewTableHandler creates a new TableHandler.
func NewTableHandler(store TableStore) *TableHandler {
	return &TableHandler{store: store}
}

// RegisterRoutes registers the read endpoints available to all staff.
func (h *TableHandler) RegisterRoutes(r chi.Router) {
	r.Get("/tables", h.List)
	r.Get("/tables/{id}", h.Get)
}

// RegisterAdminRoutes registers the write endpoints.
func (h *TableHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/tables", h.Create)
	r.Put("/tables/{id}", h.Update)
	r.Delete("/tables/{id}", h.Delete)
}

// --- Request / Response types ---

type tableRequest struct {
	TableNumber    int32  `json:"table_number" validate:"required,min=1"`
	Capacity       int32  `json:"capacity" validate:"required,min=1"`
	Status         string `json:"status" validate:"omitempty,oneof=available reserved occupied"`
	AssignedWaiter string `json:"assigned_waiter" validate:"omitempty,uuid"`
}

type tableWaiterResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type tableResponse struct {
	ID             uuid.UUID            `json:"id"`
	TableNumber    int32                `json:"table_number"`
	Capacity       int32                `json:"capacity"`
	Status         string               `json:"status"`
	AssignedWaiter *uuid.UUID           `json:"assigned_waiter"`
	Waiter         *tableWaiterResponse `json:"waiter,omitempty"`
	IsDeleted      bool                 `json:"is_deleted"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

func toTableResponse(t database.RestaurantTable) tableResponse {
	resp := tableResponse{
		ID:          t.ID,
		TableNumber: t.TableNumber,
		Capacity:    t.Capacity,
		Status:      t.Status,
		IsDeleted:   t.IsDeleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.AssignedWaiter.Valid {
		id := uuid.UUID(t.AssignedWaiter.Bytes)
		resp.AssignedWaiter = &id
	}
	return resp
}

// --- Handlers ---

// List returns live tables with their assigned waiter.
func (h *TableHandler) List(w http.ResponseWriter, r *http.Request) {
	tables, err := h.store.ListTables(r.Context())
	if err != nil {
		writeInternalError(w, "list tables", err)
		return
	}

	resp := make([]tableResponse, len(tables))
	for i, t := range tables {
		resp[i] = toTableResponse(t.RestaurantTable)
		if t.AssignedWaiter.Valid && t.WaiterName.Valid {
			resp[i].Waiter = &tableWaiterResponse{
				ID:   t.AssignedWaiter.Bytes,
				Name: t.WaiterName.String,
				Role: t.WaiterRole.String,
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns one table, including soft-deleted ones.
func (h *TableHandler) Get(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	table, err := h.store.GetTable(r.Context(), tableID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		writeInternalError(w, "get table", err)
		return
	}

	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// Create adds a table.
func (h *TableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tableRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	waiter, ok := h.resolveWaiter(w, r, req.AssignedWaiter)
	if !ok {
		return
	}

	status := req.Status
	if status == "" {
		status = enum.TableStatusAvailable
	}

	table, err := h.store.CreateTable(r.Context(), database.CreateTableParams{
		TableNumber:    req.TableNumber,
		Capacity:       req.Capacity,
		Status:         status,
		AssignedWaiter: waiter,
	})
	if err != nil {
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "table number already exists"})
			return
		}
		writeInternalError(w, "create table", err)
		return
	}

	writeJSON(w, http.StatusCreated, toTableResponse(table))
}

// Update replaces a live table's fields.
func (h *TableHandler) Update(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	var req tableRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	waiter, ok := h.resolveWaiter(w, r, req.AssignedWaiter)
	if !ok {
		return
	}

	status := req.Status
	if status == "" {
		status = enum.TableStatusAvailable
	}

	table, err := h.store.UpdateTable(r.Context(), database.UpdateTableParams{
		ID:             tableID,
		TableNumber:    req.TableNumber,
		Capacity:       req.Capacity,
		Status:         status,
		AssignedWaiter: waiter,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		if isUniqueViolation(err) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "table number already exists"})
			return
		}
		writeInternalError(w, "update table", err)
		return
	}

	writeJSON(w, http.StatusOK, toTableResponse(table))
}

// Delete soft-deletes a table.
func (h *TableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	tableID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid table ID"})
		return
	}

	if _, err := h.store.SoftDeleteTable(r.Context(), tableID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "table not found"})
			return
		}
		writeInternalError(w, "delete table", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// resolveWaiter checks that an assigned waiter, if given, is a live user with
// role waiter. It writes the error response itself.
func (h *TableHandler) resolveWaiter(w http.ResponseWriter, r *http.Request, raw string) (pgtype.UUID, bool) {
	if raw == "" {
		return pgtype.UUID{}, true
	}
	id := uuid.MustParse(raw) // validated by the uuid tag

	user, err := h.store.GetActiveUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "assigned_waiter must reference an active user with role waiter"})
			return pgtype.UUID{}, false
		}
		writeInternalError(w, "get waiter", err)
		return pgtype.UUID{}, false
	}
	if user.Role != enum.UserRoleWaiter {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "assigned_waiter must reference an active user with role waiter"})
		return pgtype.UUID{}, false
	}
	return pgtype.UUID{Bytes: id, Valid: true}, true
}
