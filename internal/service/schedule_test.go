package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vold333/kitchen-order-ticket/internal/database"
)

type mockScheduleStore struct {
	getOverrideFn func(ctx context.Context, date pgtype.Date) (database.ScheduleOverride, error)
	getDefaultFn  func(ctx context.Context) (database.DefaultSchedule, error)
}

func (m *mockScheduleStore) GetScheduleOverrideByDate(ctx context.Context, date pgtype.Date) (database.ScheduleOverride, error) {
	if m.getOverrideFn == nil {
		return database.ScheduleOverride{}, pgx.ErrNoRows
	}
	return m.getOverrideFn(ctx, date)
}

func (m *mockScheduleStore) GetDefaultSchedule(ctx context.Context) (database.DefaultSchedule, error) {
	if m.getDefaultFn == nil {
		return database.DefaultSchedule{}, pgx.ErrNoRows
	}
	return m.getDefaultFn(ctx)
}

var singapore = time.FixedZone("SGT", 8*60*60)

func clock(h, m int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
}

func at(h, m int) func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 14, h, m, 0, 0, singapore)
	}
}

func defaultElevenToHalfEleven() *mockScheduleStore {
	return &mockScheduleStore{
		getDefaultFn: func(ctx context.Context) (database.DefaultSchedule, error) {
			return database.DefaultSchedule{
				OpeningTime: ClockTime(clock(11, 0)),
				ClosingTime: ClockTime(clock(23, 30)),
			}, nil
		},
	}
}

func TestCanTakeOrders_DefaultSchedule(t *testing.T) {
	tests := []struct {
		name    string
		h, m    int
		allowed bool
		reason  string
	}{
		{"before opening", 10, 59, false, ReasonBeforeOpening},
		{"at opening", 11, 0, false, ReasonOpeningBuffer},
		{"opening buffer", 11, 15, false, ReasonOpeningBuffer},
		{"buffer ends at 11:30", 11, 30, true, ""},
		{"after opening buffer", 11, 31, true, ""},
		{"before closing buffer", 22, 59, true, ""},
		{"closing buffer starts inclusive", 23, 0, false, ReasonClosingBuffer},
		{"closing buffer", 23, 5, false, ReasonClosingBuffer},
		{"at closing", 23, 30, false, ReasonClosingBuffer},
		{"after closing", 23, 31, false, ReasonAfterClosing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewScheduleGate(defaultElevenToHalfEleven(), singapore, at(tt.h, tt.m))
			got, err := gate.CanTakeOrders(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Allowed != tt.allowed {
				t.Errorf("allowed: got %v, want %v (reason %q)", got.Allowed, tt.allowed, got.Reason)
			}
			if tt.reason != "" && got.Reason != tt.reason {
				t.Errorf("reason: got %q, want %q", got.Reason, tt.reason)
			}
		})
	}
}

func TestCanTakeOrders_HolidayOverride(t *testing.T) {
	store := defaultElevenToHalfEleven()
	store.getOverrideFn = func(ctx context.Context, date pgtype.Date) (database.ScheduleOverride, error) {
		return database.ScheduleOverride{Date: date, IsHoliday: true}, nil
	}

	for _, h := range []int{9, 12, 18, 23} {
		gate := NewScheduleGate(store, singapore, at(h, 0))
		got, err := gate.CanTakeOrders(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Allowed || got.Reason != ReasonClosedToday {
			t.Errorf("%02d:00: expected closed today, got %+v", h, got)
		}
	}
}

func TestCanTakeOrders_OverrideWinsOverDefault(t *testing.T) {
	store := defaultElevenToHalfEleven()
	var queried pgtype.Date
	store.getOverrideFn = func(ctx context.Context, date pgtype.Date) (database.ScheduleOverride, error) {
		queried = date
		return database.ScheduleOverride{
			Date:        date,
			OpeningTime: ClockTime(clock(8, 0)),
			ClosingTime: ClockTime(clock(12, 0)),
		}, nil
	}

	gate := NewScheduleGate(store, singapore, at(9, 0))
	got, err := gate.CanTakeOrders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Allowed {
		t.Errorf("expected allowed under override, got %+v", got)
	}
	if y, m, d := queried.Time.Date(); y != 2026 || m != time.March || d != 14 {
		t.Errorf("override queried for %v, want 2026-03-14", queried.Time)
	}
}

func TestCanTakeOrders_UsesRestaurantLocalDate(t *testing.T) {
	store := defaultElevenToHalfEleven()
	var queried pgtype.Date
	store.getOverrideFn = func(ctx context.Context, date pgtype.Date) (database.ScheduleOverride, error) {
		queried = date
		return database.ScheduleOverride{}, pgx.ErrNoRows
	}

	// 17:00 UTC on the 13th is 01:00 on the 14th in Singapore.
	now := func() time.Time { return time.Date(2026, 3, 13, 17, 0, 0, 0, time.UTC) }
	gate := NewScheduleGate(store, singapore, now)
	if _, err := gate.CanTakeOrders(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := queried.Time.Day(); d != 14 {
		t.Errorf("expected local date 14, got %d", d)
	}
}

func TestCanTakeOrders_NoScheduleConfigured(t *testing.T) {
	gate := NewScheduleGate(&mockScheduleStore{}, singapore, at(12, 0))
	got, err := gate.CanTakeOrders(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Allowed || got.Reason != ReasonClosedToday {
		t.Errorf("expected closed today, got %+v", got)
	}
}

func TestCanTakeOrders_StoreFailure(t *testing.T) {
	store := &mockScheduleStore{
		getOverrideFn: func(ctx context.Context, date pgtype.Date) (database.ScheduleOverride, error) {
			return database.ScheduleOverride{}, errors.New("connection refused")
		},
	}
	gate := NewScheduleGate(store, singapore, at(12, 0))
	if _, err := gate.CanTakeOrders(context.Background()); err == nil {
		t.Fatal("expected store failure to surface as an error")
	}
}

func TestParseAndFormatClock(t *testing.T) {
	d, err := ParseClock("11:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != clock(11, 30) {
		t.Errorf("got %v, want 11h30m", d)
	}
	if got := FormatClock(d); got != "11:30:00" {
		t.Errorf("FormatClock = %q", got)
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Error("expected error for invalid hour")
	}
}
