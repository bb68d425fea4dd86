package handler_test

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/enum"
	"github.com/vold333/kitchen-order-ticket/internal/handler"
	"github.com/vold333/kitchen-order-ticket/internal/middleware"
)

type mockCustomerStore struct {
	customers map[uuid.UUID]database.Customer
	created   int
}

func newMockCustomerStore() *mockCustomerStore {
	return &mockCustomerStore{customers: make(map[uuid.UUID]database.Customer)}
}

func (m *mockCustomerStore) live() []database.Customer {
	result := []database.Customer{}
	for _, c := range m.customers {
		if !c.IsDeleted {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (m *mockCustomerStore) ListCustomers(_ context.Context, arg database.ListCustomersParams) ([]database.Customer, error) {
	live := m.live()
	start := int(arg.Offset)
	if start > len(live) {
		start = len(live)
	}
	end := start + int(arg.Limit)
	if end > len(live) {
		end = len(live)
	}
	return live[start:end], nil
}

func (m *mockCustomerStore) GetActiveCustomer(_ context.Context, id uuid.UUID) (database.Customer, error) {
	c, ok := m.customers[id]
	if !ok || c.IsDeleted {
		return database.Customer{}, pgx.ErrNoRows
	}
	return c, nil
}

func (m *mockCustomerStore) GetCustomerByPhone(_ context.Context, phone string) (database.Customer, error) {
	for _, c := range m.customers {
		if !c.IsDeleted && c.Phone == phone {
			return c, nil
		}
	}
	return database.Customer{}, pgx.ErrNoRows
}

func (m *mockCustomerStore) CreateCustomer(_ context.Context, arg database.CreateCustomerParams) (database.Customer, error) {
	c := database.Customer{ID: uuid.New(), Name: arg.Name, Phone: arg.Phone}
	m.customers[c.ID] = c
	m.created++
	return c, nil
}

func (m *mockCustomerStore) UpdateCustomer(_ context.Context, arg database.UpdateCustomerParams) (database.Customer, error) {
	c, ok := m.customers[arg.ID]
	if !ok || c.IsDeleted {
		return database.Customer{}, pgx.ErrNoRows
	}
	c.Name = arg.Name
	c.Phone = arg.Phone
	m.customers[c.ID] = c
	return c, nil
}

func (m *mockCustomerStore) SoftDeleteCustomer(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	c, ok := m.customers[id]
	if !ok || c.IsDeleted {
		return uuid.Nil, pgx.ErrNoRows
	}
	c.IsDeleted = true
	m.customers[id] = c
	return id, nil
}

func setupCustomerRouter(store *mockCustomerStore) *chi.Mux {
	h := handler.NewCustomerHandler(store)
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(testSecret))
		h.RegisterRoutes(r)
	})
	return r
}

func TestCustomerLookup_CreatesThenReuses(t *testing.T) {
	store := newMockCustomerStore()
	r := setupCustomerRouter(store)

	rr := postJSON(t, r, "/customers/lookup", map[string]string{"name": "Mei", "phone": "91234567"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("first lookup: got %d; body: %s", rr.Code, rr.Body.String())
	}
	first := decodeResponse(t, rr)

	rr = postJSON(t, r, "/customers/lookup", map[string]string{"name": "Mei Ling", "phone": "91234567"})
	if rr.Code != http.StatusOK {
		t.Fatalf("second lookup: got %d", rr.Code)
	}
	second := decodeResponse(t, rr)
	if second["id"] != first["id"] {
		t.Errorf("id: got %v, want %v", second["id"], first["id"])
	}
	if second["name"] != "Mei" {
		t.Errorf("existing customer must be returned unchanged, got name %v", second["name"])
	}
	if store.created != 1 {
		t.Errorf("created: got %d, want 1", store.created)
	}
}

func TestCustomerLookup_IgnoresDeleted(t *testing.T) {
	store := newMockCustomerStore()
	old := database.Customer{ID: uuid.New(), Name: "Old", Phone: "90000000", IsDeleted: true}
	store.customers[old.ID] = old
	r := setupCustomerRouter(store)

	rr := postJSON(t, r, "/customers/lookup", map[string]string{"name": "New", "phone": "90000000"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusCreated)
	}
	if resp := decodeResponse(t, rr); resp["id"] == old.ID.String() {
		t.Error("soft-deleted customer must not be reused")
	}
}

func TestCustomerLookup_Validation(t *testing.T) {
	r := setupCustomerRouter(newMockCustomerStore())

	rr := postJSON(t, r, "/customers/lookup", map[string]string{"name": "Mei"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
	if resp := decodeResponse(t, rr); resp["error"] != "phone is required" {
		t.Errorf("error: got %v", resp["error"])
	}
}

func TestCustomers_StaffCRUD(t *testing.T) {
	store := newMockCustomerStore()
	r := setupCustomerRouter(store)
	staff := tokenFor(t, enum.UserRoleReceptionist)

	if rr := doRequest(t, r, "GET", "/customers", nil, ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous list: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}

	for _, name := range []string{"Ann", "Ben", "Cai"} {
		rr := doRequest(t, r, "POST", "/customers", map[string]string{"name": name, "phone": "8" + name}, staff)
		if rr.Code != http.StatusCreated {
			t.Fatalf("create: got %d", rr.Code)
		}
	}

	page := decodeList(t, doRequest(t, r, "GET", "/customers?limit=2&offset=1", nil, staff))
	if len(page) != 2 || page[0]["name"] != "Ben" {
		t.Errorf("page: got %v", page)
	}

	id := page[0]["id"].(string)
	rr := doRequest(t, r, "PUT", "/customers/"+id, map[string]string{"name": "Benny", "phone": "8Ben"}, staff)
	if rr.Code != http.StatusOK {
		t.Fatalf("update: got %d", rr.Code)
	}

	if rr := doRequest(t, r, "DELETE", "/customers/"+id, nil, staff); rr.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d", rr.Code)
	}
	if rr := doRequest(t, r, "GET", "/customers/"+id, nil, staff); rr.Code != http.StatusNotFound {
		t.Errorf("get deleted: got %d, want %d", rr.Code, http.StatusNotFound)
	}
	if rr := doRequest(t, r, "GET", "/customers/not-a-uuid", nil, staff); rr.Code != http.StatusBadRequest {
		t.Errorf("bad id: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}
