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

// CustomerStore defines the database methods needed by customer handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type CustomerStore interface {
	ListCustomers(ctx context.Context, arg database.ListCustomersParams) ([]database.Customer, error)
	GetActiveCustomer(ctx context.Context, id uuid.UUID) (database.Customer, error)
	GetCustomerByPhone(ctx context.Context, phone string) (database.Customer, error)
	CreateCustomer(ctx context.Context, arg database.CreateCustomerParams) (database.Customer, error)
	UpdateCustomer(ctx context.Context, arg database.UpdateCustomerParams) (database.Customer, error)
	SoftDeleteCustomer(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}

// CustomerHandler handles customer endpoints.
type CustomerHandler struct {
	store CustomerStore
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(store CustomerStore) *CustomerHandler {
	return &CustomerHandler{store: store}
}

// RegisterPublicRoutes registers the kiosk self-service lookup.
func (h *CustomerHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/customers/lookup", h.Lookup)
}

// RegisterRoutes registers the staff customer endpoints.
func (h *CustomerHandler) RegisterRoutes(r chi.Router) {
	r.Get("/customers", h.List)
	r.Post("/customers", h.Create)
	r.Get("/customers/{id}", h.Get)
	r.Put("/customers/{id}", h.Update)
	r.Delete("/customers/{id}", h.Delete)
}

// --- Request / Response types ---

type customerRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"required,max=20"`
}

type customerResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCustomerResponse(c database.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// --- Handlers ---

// Lookup returns the live customer with the given phone, creating one when
// none exists. 200 for an existing customer, 201 for a new one.
func (h *CustomerHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	existing, err := h.store.GetCustomerByPhone(r.Context(), req.Phone)
	if err == nil {
		writeJSON(w, http.StatusOK, toCustomerResponse(existing))
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		writeInternalError(w, "lookup customer", err)
		return
	}

	h.create(w, r, req)
}

// List returns a page of live customers (?limit=, ?offset=).
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	customers, err := h.store.ListCustomers(r.Context(), database.ListCustomersParams{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeInternalError(w, "list customers", err)
		return
	}

	resp := make([]customerResponse, len(customers))
	for i, c := range customers {
		resp[i] = toCustomerResponse(c)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer ID"})
		return
	}

	customer, err := h.store.GetActiveCustomer(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
			return
		}
		writeInternalError(w, "get customer", err)
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req customerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.create(w, r, req)
}

func (h *CustomerHandler) create(w http.ResponseWriter, r *http.Request, req customerRequest) {
	customer, err := h.store.CreateCustomer(r.Context(), database.CreateCustomerParams{
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		writeInternalError(w, "create customer", err)
		return
	}

	writeJSON(w, http.StatusCreated, toCustomerResponse(customer))
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer ID"})
		return
	}

	var req customerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.store.UpdateCustomer(r.Context(), database.UpdateCustomerParams{
		ID:    customerID,
		Name:  req.Name,
		Phone: req.Phone,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
			return
		}
		writeInternalError(w, "update customer", err)
		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponse(customer))
}

// Delete soft-deletes a customer. Historical orders keep the reference.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid customer ID"})
		return
	}

	if _, err := h.store.SoftDeleteCustomer(r.Context(), customerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "customer not found"})
			return
		}
		writeInternalError(w, "delete customer", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
