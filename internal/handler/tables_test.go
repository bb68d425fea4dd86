package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/enum"
	"github.com/vold333/kitchen-order-ticket/internal/handler"
	"github.com/vold333/kitchen-order-ticket/internal/middleware"
)

// --- Mock store ---

type mockTableStore struct {
	tables map[uuid.UUID]database.RestaurantTable
	users  map[uuid.UUID]database.User
}

func newMockTableStore() *mockTableStore {
	return &mockTableStore{
		tables: make(map[uuid.UUID]database.RestaurantTable),
		users:  make(map[uuid.UUID]database.User),
	}
}

func (m *mockTableStore) ListTables(_ context.Context) ([]database.ListTablesRow, error) {
	var rows []database.ListTablesRow
	for _, t := range m.tables {
		if t.IsDeleted {
			continue
		}
		row := database.ListTablesRow{RestaurantTable: t}
		if t.AssignedWaiter.Valid {
			if u, ok := m.users[t.AssignedWaiter.Bytes]; ok {
				row.WaiterName = pgtype.Text{String: u.Name, Valid: true}
				row.WaiterRole = pgtype.Text{String: u.Role, Valid: true}
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *mockTableStore) GetTable(_ context.Context, id uuid.UUID) (database.RestaurantTable, error) {
	t, ok := m.tables[id]
	if !ok {
		return database.RestaurantTable{}, pgx.ErrNoRows
	}
	return t, nil
}

func (m *mockTableStore) numberTaken(number int32, except uuid.UUID) bool {
	for _, t := range m.tables {
		if !t.IsDeleted && t.TableNumber == number && t.ID != except {
			return true
		}
	}
	return false
}

func (m *mockTableStore) CreateTable(_ context.Context, arg database.CreateTableParams) (database.RestaurantTable, error) {
	if m.numberTaken(arg.TableNumber, uuid.Nil) {
		return database.RestaurantTable{}, &pgconn.PgError{Code: "23505"}
	}
	t := database.RestaurantTable{
		ID:             uuid.New(),
		TableNumber:    arg.TableNumber,
		Capacity:       arg.Capacity,
		Status:         arg.Status,
		AssignedWaiter: arg.AssignedWaiter,
	}
	m.tables[t.ID] = t
	return t, nil
}

func (m *mockTableStore) UpdateTable(_ context.Context, arg database.UpdateTableParams) (database.RestaurantTable, error) {
	t, ok := m.tables[arg.ID]
	if !ok || t.IsDeleted {
		return database.RestaurantTable{}, pgx.ErrNoRows
	}
	if m.numberTaken(arg.TableNumber, arg.ID) {
		return database.RestaurantTable{}, &pgconn.PgError{Code: "23505"}
	}
	t.TableNumber = arg.TableNumber
	t.Capacity = arg.Capacity
	t.Status = arg.Status
	t.AssignedWaiter = arg.AssignedWaiter
	m.tables[t.ID] = t
	return t, nil
}

func (m *mockTableStore) SoftDeleteTable(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	t, ok := m.tables[id]
	if !ok || t.IsDeleted {
		return uuid.Nil, pgx.ErrNoRows
	}
	t.IsDeleted = true
	m.tables[id] = t
	return id, nil
}

func (m *mockTableStore) GetActiveUser(_ context.Context, id uuid.UUID) (database.User, error) {
	u, ok := m.users[id]
	if !ok || u.IsDeleted {
		return database.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *mockTableStore) addUser(name, role string) uuid.UUID {
	u := database.User{ID: uuid.New(), Name: name, Role: role}
	m.users[u.ID] = u
	return u.ID
}

func setupTableRouter(store *mockTableStore) *chi.Mux {
	h := handler.NewTableHandler(store)
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(testSecret))
		h.RegisterRoutes(r)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enum.UserRoleAdmin))
			h.RegisterAdminRoutes(r)
		})
	})
	return r
}

// --- Tests ---

func TestCreateTable_WithWaiter(t *testing.T) {
	store := newMockTableStore()
	waiterID := store.addUser("ravi", enum.UserRoleWaiter)
	r := setupTableRouter(store)
	admin := tokenFor(t, enum.UserRoleAdmin)

	rr := doRequest(t, r, "POST", "/tables", map[string]interface{}{
		"table_number":    7,
		"capacity":        4,
		"assigned_waiter": waiterID.String(),
	}, admin)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusCreated, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	if resp["status"] != enum.TableStatusAvailable {
		t.Errorf("status: got %v, want default %s", resp["status"], enum.TableStatusAvailable)
	}
	if resp["assigned_waiter"] != waiterID.String() {
		t.Errorf("assigned_waiter: got %v", resp["assigned_waiter"])
	}

	rr = doRequest(t, r, "GET", "/tables", nil, tokenFor(t, enum.UserRoleReceptionist))
	if rr.Code != http.StatusOK {
		t.Fatalf("list status: got %d", rr.Code)
	}
	list := decodeList(t, rr)
	if len(list) != 1 {
		t.Fatalf("tables: got %d, want 1", len(list))
	}
	waiter, ok := list[0]["waiter"].(map[string]interface{})
	if !ok || waiter["name"] != "ravi" || waiter["role"] != enum.UserRoleWaiter {
		t.Errorf("waiter: got %v", list[0]["waiter"])
	}
}

func TestCreateTable_Validation(t *testing.T) {
	store := newMockTableStore()
	kitchenID := store.addUser("chef", enum.UserRoleKitchen)
	r := setupTableRouter(store)
	admin := tokenFor(t, enum.UserRoleAdmin)

	tests := []struct {
		name string
		body map[string]interface{}
		want string
	}{
		{"missing number", map[string]interface{}{"capacity": 2}, "table_number is required"},
		{"zero capacity", map[string]interface{}{"table_number": 1, "capacity": 0}, "capacity is required"},
		{"bad status", map[string]interface{}{"table_number": 1, "capacity": 2, "status": "broken"}, "status must be one of available, reserved, occupied"},
		{"bad waiter id", map[string]interface{}{"table_number": 1, "capacity": 2, "assigned_waiter": "abc"}, "assigned_waiter must be a valid id"},
		{"non waiter", map[string]interface{}{"table_number": 1, "capacity": 2, "assigned_waiter": kitchenID.String()}, "assigned_waiter must reference an active user with role waiter"},
		{"unknown waiter", map[string]interface{}{"table_number": 1, "capacity": 2, "assigned_waiter": uuid.New().String()}, "assigned_waiter must reference an active user with role waiter"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, r, "POST", "/tables", tc.body, admin)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want %d; body: %s", rr.Code, http.StatusBadRequest, rr.Body.String())
			}
			if resp := decodeResponse(t, rr); resp["error"] != tc.want {
				t.Errorf("error: got %v, want %q", resp["error"], tc.want)
			}
		})
	}
}

func TestCreateTable_DuplicateNumber(t *testing.T) {
	store := newMockTableStore()
	r := setupTableRouter(store)
	admin := tokenFor(t, enum.UserRoleAdmin)

	body := map[string]interface{}{"table_number": 3, "capacity": 2}
	if rr := doRequest(t, r, "POST", "/tables", body, admin); rr.Code != http.StatusCreated {
		t.Fatalf("first create: got %d", rr.Code)
	}
	rr := doRequest(t, r, "POST", "/tables", body, admin)
	if rr.Code != http.StatusConflict {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusConflict)
	}
}

func TestTables_WriteRequiresAdmin(t *testing.T) {
	r := setupTableRouter(newMockTableStore())

	rr := doRequest(t, r, "POST", "/tables", map[string]interface{}{"table_number": 1, "capacity": 2}, tokenFor(t, enum.UserRoleWaiter))
	if rr.Code != http.StatusForbidden {
		t.Errorf("status: got %d, want %d", rr.Code, http.StatusForbidden)
	}

	rr = doRequest(t, r, "GET", "/tables", nil, "")
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous list: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestUpdateTable_ReplacesFields(t *testing.T) {
	store := newMockTableStore()
	r := setupTableRouter(store)
	admin := tokenFor(t, enum.UserRoleAdmin)

	created := decodeResponse(t, doRequest(t, r, "POST", "/tables", map[string]interface{}{"table_number": 1, "capacity": 2}, admin))
	id := created["id"].(string)

	rr := doRequest(t, r, "PUT", "/tables/"+id, map[string]interface{}{
		"table_number": 1,
		"capacity":     6,
		"status":       enum.TableStatusOccupied,
	}, admin)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	if resp["capacity"] != float64(6) || resp["status"] != enum.TableStatusOccupied {
		t.Errorf("got %v", resp)
	}

	rr = doRequest(t, r, "PUT", "/tables/"+uuid.New().String(), map[string]interface{}{"table_number": 9, "capacity": 2}, admin)
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown table: got %d, want %d", rr.Code, http.StatusNotFound)
	}
}

func TestDeleteTable_StillReadableByID(t *testing.T) {
	store := newMockTableStore()
	r := setupTableRouter(store)
	admin := tokenFor(t, enum.UserRoleAdmin)

	created := decodeResponse(t, doRequest(t, r, "POST", "/tables", map[string]interface{}{"table_number": 5, "capacity": 2}, admin))
	id := created["id"].(string)

	if rr := doRequest(t, r, "DELETE", "/tables/"+id, nil, admin); rr.Code != http.StatusNoContent {
		t.Fatalf("delete: got %d", rr.Code)
	}
	if rr := doRequest(t, r, "DELETE", "/tables/"+id, nil, admin); rr.Code != http.StatusNotFound {
		t.Errorf("second delete: got %d, want %d", rr.Code, http.StatusNotFound)
	}

	rr := doRequest(t, r, "GET", "/tables/"+id, nil, admin)
	if rr.Code != http.StatusOK {
		t.Fatalf("get deleted: got %d", rr.Code)
	}
	if resp := decodeResponse(t, rr); resp["is_deleted"] != true {
		t.Errorf("is_deleted: got %v, want true", resp["is_deleted"])
	}

	if list := decodeList(t, doRequest(t, r, "GET", "/tables", nil, admin)); len(list) != 0 {
		t.Errorf("list after delete: got %d, want 0", len(list))
	}

	// number is free again once the old table is gone
	if rr := doRequest(t, r, "POST", "/tables", map[string]interface{}{"table_number": 5, "capacity": 2}, admin); rr.Code != http.StatusCreated {
		t.Errorf("reuse number: got %d, want %d", rr.Code, http.StatusCreated)
	}
}
