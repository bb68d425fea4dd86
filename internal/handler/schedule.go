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
	"github.com/vold333/kitchen-order-ticket/internal/service"
)

const dateLayout = "2006-01-02"

// ScheduleStore defines the database methods needed by schedule handlers.
// Satisfied by *database.Queries; narrow interface for testability.
type ScheduleStore interface {
	ListScheduleOverrides(ctx context.Context, from pgtype.Date) ([]database.ScheduleOverride, error)
	UpsertScheduleOverride(ctx context.Context, arg database.UpsertScheduleOverrideParams) (database.ScheduleOverride, error)
	GetDefaultSchedule(ctx context.Context) (database.DefaultSchedule, error)
	UpsertDefaultSchedule(ctx context.Context, arg database.UpsertDefaultScheduleParams) (database.DefaultSchedule, error)
}

// ScheduleGater is satisfied by *service.ScheduleGate.
type ScheduleGater interface {
	Today(ctx context.Context) (service.EffectiveSchedule, error)
	CanTakeOrders(ctx context.Context) (service.Decision, error)
	Now() time.Time
}

// ScheduleHandler handles opening hours and the order gate.
type ScheduleHandler struct {
	store ScheduleStore
	gate  ScheduleGater
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(store ScheduleStore, gate ScheduleGater) *ScheduleHandler {
	return &ScheduleHandler{store: store, gate: gate}
}

// RegisterPublicRoutes registers the endpoints kiosks poll before ordering.
func (h *ScheduleHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/schedule/today", h.Today)
	r.Get("/schedule/can-take-orders", h.CanTakeOrders)
}

// RegisterRoutes registers the staff read endpoints.
func (h *ScheduleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/schedule/overrides", h.ListOverrides)
	r.Get("/schedule/default", h.GetDefault)
}

// RegisterAdminRoutes registers the write endpoints.
func (h *ScheduleHandler) RegisterAdminRoutes(r chi.Router) {
	r.Post("/schedule/overrides", h.UpsertOverride)
	r.Put("/schedule/default", h.UpsertDefault)
}

// --- Request / Response types ---

type overrideRequest struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
	IsHoliday   bool   `json:"is_holiday"`
}

type defaultScheduleRequest struct {
	OpeningTime string `json:"opening_time" validate:"required"`
	ClosingTime string `json:"closing_time" validate:"required"`
}

type overrideResponse struct {
	ID          uuid.UUID `json:"id"`
	Date        string    `json:"date"`
	OpeningTime *string   `json:"opening_time"`
	ClosingTime *string   `json:"closing_time"`
	IsHoliday   bool      `json:"is_holiday"`
}

type defaultScheduleResponse struct {
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

type todayResponse struct {
	Date        string  `json:"date"`
	Source      *string `json:"source"`
	IsHoliday   bool    `json:"is_holiday"`
	OpeningTime *string `json:"opening_time"`
	ClosingTime *string `json:"closing_time"`
}

func clockPtr(t pgtype.Time) *string {
	if !t.Valid {
		return nil
	}
	s := service.FormatClock(time.Duration(t.Microseconds) * time.Microsecond)
	return &s
}

func toOverrideResponse(o database.ScheduleOverride) overrideResponse {
	return overrideResponse{
		ID:          o.ID,
		Date:        o.Date.Time.Format(dateLayout),
		OpeningTime: clockPtr(o.OpeningTime),
		ClosingTime: clockPtr(o.ClosingTime),
		IsHoliday:   o.IsHoliday,
	}
}

func toDefaultScheduleResponse(d database.DefaultSchedule) defaultScheduleResponse {
	resp := defaultScheduleResponse{}
	if s := clockPtr(d.OpeningTime); s != nil {
		resp.OpeningTime = *s
	}
	if s := clockPtr(d.ClosingTime); s != nil {
		resp.ClosingTime = *s
	}
	return resp
}

// --- Handlers ---

// Today returns the schedule in effect for the current local date.
func (h *ScheduleHandler) Today(w http.ResponseWriter, r *http.Request) {
	sched, err := h.gate.Today(r.Context())
	if err != nil {
		writeInternalError(w, "resolve schedule", err)
		return
	}

	resp := todayResponse{
		Date:      sched.Date.Format(dateLayout),
		IsHoliday: sched.IsHoliday,
	}
	if sched.Configured() {
		source := sched.Source
		resp.Source = &source
		if !sched.IsHoliday {
			opening := service.FormatClock(sched.Opening)
			closing := service.FormatClock(sched.Closing)
			resp.OpeningTime = &opening
			resp.ClosingTime = &closing
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// CanTakeOrders reports the gate decision: 200 when allowed, 403 with the
// reason otherwise.
func (h *ScheduleHandler) CanTakeOrders(w http.ResponseWriter, r *http.Request) {
	decision, err := h.gate.CanTakeOrders(r.Context())
	if err != nil {
		writeInternalError(w, "check schedule", err)
		return
	}

	status := http.StatusOK
	if !decision.Allowed {
		status = http.StatusForbidden
	}
	writeJSON(w, status, decision)
}

// ListOverrides returns overrides dated on or after ?from= (default today).
func (h *ScheduleHandler) ListOverrides(w http.ResponseWriter, r *http.Request) {
	now := h.gate.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid from format, use YYYY-MM-DD"})
			return
		}
		from = t
	}

	overrides, err := h.store.ListScheduleOverrides(r.Context(), pgtype.Date{Time: from, Valid: true})
	if err != nil {
		writeInternalError(w, "list schedule overrides", err)
		return
	}

	resp := make([]overrideResponse, len(overrides))
	for i, o := range overrides {
		resp[i] = toOverrideResponse(o)
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpsertOverride sets the hours for one date. A holiday stores no times.
func (h *ScheduleHandler) UpsertOverride(w http.ResponseWriter, r *http.Request) {
	var req overrideRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, _ := time.Parse(dateLayout, req.Date) // validated by the datetime tag
	params := database.UpsertScheduleOverrideParams{
		Date:      pgtype.Date{Time: date, Valid: true},
		IsHoliday: req.IsHoliday,
	}

	if !req.IsHoliday {
		if req.OpeningTime == "" || req.ClosingTime == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "opening_time and closing_time are required unless is_holiday is set"})
			return
		}
		opening, closing, ok := parseHours(w, req.OpeningTime, req.ClosingTime)
		if !ok {
			return
		}
		params.OpeningTime = service.ClockTime(opening)
		params.ClosingTime = service.ClockTime(closing)
	}

	override, err := h.store.UpsertScheduleOverride(r.Context(), params)
	if err != nil {
		writeInternalError(w, "upsert schedule override", err)
		return
	}

	writeJSON(w, http.StatusOK, toOverrideResponse(override))
}

// GetDefault returns the default opening hours.
func (h *ScheduleHandler) GetDefault(w http.ResponseWriter, r *http.Request) {
	def, err := h.store.GetDefaultSchedule(r.Context())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "default schedule not configured"})
			return
		}
		writeInternalError(w, "get default schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, toDefaultScheduleResponse(def))
}

// UpsertDefault replaces the default opening hours.
func (h *ScheduleHandler) UpsertDefault(w http.ResponseWriter, r *http.Request) {
	var req defaultScheduleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	opening, closing, ok := parseHours(w, req.OpeningTime, req.ClosingTime)
	if !ok {
		return
	}

	def, err := h.store.UpsertDefaultSchedule(r.Context(), database.UpsertDefaultScheduleParams{
		OpeningTime: service.ClockTime(opening),
		ClosingTime: service.ClockTime(closing),
	})
	if err != nil {
		writeInternalError(w, "upsert default schedule", err)
		return
	}

	writeJSON(w, http.StatusOK, toDefaultScheduleResponse(def))
}

// parseHours parses both clock times and requires opening before closing.
// It writes the error response itself.
func parseHours(w http.ResponseWriter, openingRaw, closingRaw string) (time.Duration, time.Duration, bool) {
	opening, err := service.ParseClock(openingRaw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "opening_time: " + err.Error()})
		return 0, 0, false
	}
	closing, err := service.ParseClock(closingRaw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "closing_time: " + err.Error()})
		return 0, 0, false
	}
	if opening >= closing {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": service.ErrInvalidScheduleTimes.Error()})
		return 0, 0, false
	}
	return opening, closing, true
}
