package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vold333/kitchen-order-ticket/internal/database"
	"github.com/vold333/kitchen-order-ticket/internal/enum"
	"github.com/vold333/kitchen-order-ticket/internal/handler"
	"github.com/vold333/kitchen-order-ticket/internal/middleware"
	"github.com/vold333/kitchen-order-ticket/internal/service"
)

// --- Mocks ---

type mockScheduleStore struct {
	overrides map[string]database.ScheduleOverride
	def       *database.DefaultSchedule
	lastFrom  time.Time
}

func newMockScheduleStore() *mockScheduleStore {
	return &mockScheduleStore{overrides: make(map[string]database.ScheduleOverride)}
}

func (m *mockScheduleStore) ListScheduleOverrides(_ context.Context, from pgtype.Date) ([]database.ScheduleOverride, error) {
	m.lastFrom = from.Time
	var result []database.ScheduleOverride
	for _, o := range m.overrides {
		if !o.Date.Time.Before(from.Time) {
			result = append(result, o)
		}
	}
	return result, nil
}

func (m *mockScheduleStore) UpsertScheduleOverride(_ context.Context, arg database.UpsertScheduleOverrideParams) (database.ScheduleOverride, error) {
	key := arg.Date.Time.Format("2006-01-02")
	o, ok := m.overrides[key]
	if !ok {
		o.ID = uuid.New()
	}
	o.Date = arg.Date
	o.OpeningTime = arg.OpeningTime
	o.ClosingTime = arg.ClosingTime
	o.IsHoliday = arg.IsHoliday
	m.overrides[key] = o
	return o, nil
}

func (m *mockScheduleStore) GetDefaultSchedule(_ context.Context) (database.DefaultSchedule, error) {
	if m.def == nil {
		return database.DefaultSchedule{}, pgx.ErrNoRows
	}
	return *m.def, nil
}

func (m *mockScheduleStore) UpsertDefaultSchedule(_ context.Context, arg database.UpsertDefaultScheduleParams) (database.DefaultSchedule, error) {
	d := database.DefaultSchedule{OpeningTime: arg.OpeningTime, ClosingTime: arg.ClosingTime}
	m.def = &d
	return d, nil
}

type mockGate struct {
	today    service.EffectiveSchedule
	decision service.Decision
	now      time.Time
}

func (g *mockGate) Today(context.Context) (service.EffectiveSchedule, error) { return g.today, nil }

func (g *mockGate) CanTakeOrders(context.Context) (service.Decision, error) { return g.decision, nil }

func (g *mockGate) Now() time.Time { return g.now }

func setupScheduleRouter(store *mockScheduleStore, gate *mockGate) *chi.Mux {
	h := handler.NewScheduleHandler(store, gate)
	r := chi.NewRouter()
	h.RegisterPublicRoutes(r)
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

// --- Public ---

func TestToday_OpenDay(t *testing.T) {
	gate := &mockGate{today: service.EffectiveSchedule{
		Date:    time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Source:  "default",
		Opening: 11 * time.Hour,
		Closing: 23*time.Hour + 30*time.Minute,
	}}
	router := setupScheduleRouter(newMockScheduleStore(), gate)

	rr := doRequest(t, router, "GET", "/schedule/today", nil, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	resp := decodeResponse(t, rr)
	want := map[string]interface{}{"date": "2026-03-02", "source": "default", "is_holiday": false, "opening_time": "11:00:00", "closing_time": "23:30:00"}
	for k, v := range want {
		if resp[k] != v {
			t.Errorf("%s: got %v, want %v", k, resp[k], v)
		}
	}
}

func TestToday_HolidayAndUnconfigured(t *testing.T) {
	tests := []struct {
		name       string
		sched      service.EffectiveSchedule
		wantSource interface{}
	}{
		{"holiday", service.EffectiveSchedule{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), Source: "override", IsHoliday: true}, "override"},
		{"unconfigured", service.EffectiveSchedule{Date: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := setupScheduleRouter(newMockScheduleStore(), &mockGate{today: tc.sched})
			resp := decodeResponse(t, doRequest(t, router, "GET", "/schedule/today", nil, ""))
			if resp["source"] != tc.wantSource {
				t.Errorf("source: got %v, want %v", resp["source"], tc.wantSource)
			}
			if resp["opening_time"] != nil || resp["closing_time"] != nil {
				t.Errorf("times: got %v and %v, want null", resp["opening_time"], resp["closing_time"])
			}
		})
	}
}

func TestCanTakeOrders(t *testing.T) {
	tests := []struct {
		name       string
		decision   service.Decision
		wantStatus int
	}{
		{"open", service.Decision{Allowed: true}, http.StatusOK},
		{"opening buffer", service.Decision{Reason: service.ReasonOpeningBuffer}, http.StatusForbidden},
		{"closed today", service.Decision{Reason: service.ReasonClosedToday}, http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := setupScheduleRouter(newMockScheduleStore(), &mockGate{decision: tc.decision})
			rr := doRequest(t, router, "GET", "/schedule/can-take-orders", nil, "")
			if rr.Code != tc.wantStatus {
				t.Fatalf("status: got %d, want %d", rr.Code, tc.wantStatus)
			}
			resp := decodeResponse(t, rr)
			if resp["allowed"] != tc.decision.Allowed || resp["reason"] != tc.decision.Reason {
				t.Errorf("decision: got %v", resp)
			}
		})
	}
}

// --- Overrides ---

func TestUpsertOverride_HolidayStoresNoTimes(t *testing.T) {
	store := newMockScheduleStore()
	router := setupScheduleRouter(store, &mockGate{})
	token := tokenFor(t, enum.UserRoleAdmin)

	rr := doRequest(t, router, "POST", "/schedule/overrides", map[string]interface{}{
		"date":         "2026-12-25",
		"opening_time": "10:00",
		"closing_time": "22:00",
		"is_holiday":   true,
	}, token)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	resp := decodeResponse(t, rr)
	if resp["is_holiday"] != true || resp["opening_time"] != nil || resp["closing_time"] != nil {
		t.Errorf("response: got %v", resp)
	}
	if o := store.overrides["2026-12-25"]; o.OpeningTime.Valid || o.ClosingTime.Valid {
		t.Errorf("stored times: got %+v", o)
	}
}

func TestUpsertOverride_ReplacesSameDate(t *testing.T) {
	store := newMockScheduleStore()
	router := setupScheduleRouter(store, &mockGate{})
	token := tokenFor(t, enum.UserRoleAdmin)

	first := decodeResponse(t, doRequest(t, router, "POST", "/schedule/overrides", map[string]interface{}{"date": "2026-04-01", "is_holiday": true}, token))
	rr := doRequest(t, router, "POST", "/schedule/overrides", map[string]interface{}{
		"date":         "2026-04-01",
		"opening_time": "12:00",
		"closing_time": "20:00",
	}, token)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d; body: %s", rr.Code, rr.Body.String())
	}
	second := decodeResponse(t, rr)
	if second["id"] != first["id"] {
		t.Errorf("id changed: %v then %v", first["id"], second["id"])
	}
	if second["is_holiday"] != false || second["opening_time"] != "12:00:00" || second["closing_time"] != "20:00:00" {
		t.Errorf("response: got %v", second)
	}
	if len(store.overrides) != 1 {
		t.Errorf("overrides: got %d, want 1", len(store.overrides))
	}
}

func TestUpsertOverride_Validation(t *testing.T) {
	router := setupScheduleRouter(newMockScheduleStore(), &mockGate{})
	token := tokenFor(t, enum.UserRoleAdmin)

	tests := []struct {
		name string
		body map[string]interface{}
		want string
	}{
		{"missing date", map[string]interface{}{"is_holiday": true}, "date is required"},
		{"bad date", map[string]interface{}{"date": "25/12/2026", "is_holiday": true}, "date must match 2006-01-02"},
		{"missing times", map[string]interface{}{"date": "2026-12-25", "opening_time": "10:00"}, "opening_time and closing_time are required unless is_holiday is set"},
		{"bad clock", map[string]interface{}{"date": "2026-12-25", "opening_time": "10am", "closing_time": "22:00"}, `opening_time: invalid time "10am", use HH:MM`},
		{"reversed", map[string]interface{}{"date": "2026-12-25", "opening_time": "22:00", "closing_time": "10:00"}, service.ErrInvalidScheduleTimes.Error()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, router, "POST", "/schedule/overrides", tc.body, token)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want %d", rr.Code, http.StatusBadRequest)
			}
			if resp := decodeResponse(t, rr); resp["error"] != tc.want {
				t.Errorf("error: got %v, want %q", resp["error"], tc.want)
			}
		})
	}
}

func TestListOverrides_DefaultsToToday(t *testing.T) {
	store := newMockScheduleStore()
	gate := &mockGate{now: time.Date(2026, 4, 2, 15, 0, 0, 0, testLocation)}
	router := setupScheduleRouter(store, gate)
	admin := tokenFor(t, enum.UserRoleAdmin)
	for _, d := range []string{"2026-04-01", "2026-04-02", "2026-04-10"} {
		doRequest(t, router, "POST", "/schedule/overrides", map[string]interface{}{"date": d, "is_holiday": true}, admin)
	}

	rr := doRequest(t, router, "GET", "/schedule/overrides", nil, tokenFor(t, enum.UserRoleReceptionist))
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if list := decodeList(t, rr); len(list) != 2 {
		t.Errorf("overrides: got %d, want 2", len(list))
	}
	if got := store.lastFrom.Format("2006-01-02"); got != "2026-04-02" {
		t.Errorf("from: got %s", got)
	}

	if rr := doRequest(t, router, "GET", "/schedule/overrides?from=2026-04-05", nil, admin); len(decodeList(t, rr)) != 1 {
		t.Error("from filter: want 1 override")
	}
	if rr := doRequest(t, router, "GET", "/schedule/overrides?from=tomorrow", nil, admin); rr.Code != http.StatusBadRequest {
		t.Errorf("bad from: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

// --- Default ---

func TestDefaultSchedule_GetAndPut(t *testing.T) {
	store := newMockScheduleStore()
	router := setupScheduleRouter(store, &mockGate{})
	admin := tokenFor(t, enum.UserRoleAdmin)

	if rr := doRequest(t, router, "GET", "/schedule/default", nil, admin); rr.Code != http.StatusNotFound {
		t.Errorf("unconfigured: got %d, want %d", rr.Code, http.StatusNotFound)
	}

	rr := doRequest(t, router, "PUT", "/schedule/default", map[string]string{"opening_time": "11:00", "closing_time": "23:30"}, admin)
	if rr.Code != http.StatusOK {
		t.Fatalf("put: got %d; body: %s", rr.Code, rr.Body.String())
	}

	resp := decodeResponse(t, doRequest(t, router, "GET", "/schedule/default", nil, tokenFor(t, enum.UserRoleWaiter)))
	if resp["opening_time"] != "11:00:00" || resp["closing_time"] != "23:30:00" {
		t.Errorf("default: got %v", resp)
	}

	if rr := doRequest(t, router, "PUT", "/schedule/default", map[string]string{"opening_time": "23:00", "closing_time": "11:00"}, admin); rr.Code != http.StatusBadRequest {
		t.Errorf("reversed: got %d, want %d", rr.Code, http.StatusBadRequest)
	}
}

func TestScheduleWrites_RequireAdmin(t *testing.T) {
	router := setupScheduleRouter(newMockScheduleStore(), &mockGate{})
	token := tokenFor(t, enum.UserRoleWaiter)

	if rr := doRequest(t, router, "PUT", "/schedule/default", map[string]string{"opening_time": "11:00", "closing_time": "23:00"}, token); rr.Code != http.StatusForbidden {
		t.Errorf("put default: got %d, want %d", rr.Code, http.StatusForbidden)
	}
	if rr := doRequest(t, router, "POST", "/schedule/overrides", map[string]interface{}{"date": "2026-12-25", "is_holiday": true}, token); rr.Code != http.StatusForbidden {
		t.Errorf("post override: got %d, want %d", rr.Code, http.StatusForbidden)
	}
	if rr := doRequest(t, router, "GET", "/schedule/default", nil, ""); rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous read: got %d, want %d", rr.Code, http.StatusUnauthorized)
	}
}
