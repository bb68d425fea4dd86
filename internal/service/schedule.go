package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/vold333/kitchen-order-ticket/internal/database"
)

// OrderBuffer is the dead zone after opening and before closing during which
// new orders are refused.
const OrderBuffer = 30 * time.Minute

// Gate denial reasons.
const (
	ReasonClosedToday   = "Restaurant is closed today."
	ReasonBeforeOpening = "Cannot take orders before the restaurant opens."
	ReasonOpeningBuffer = "Orders can only be placed 30 minutes after opening."
	ReasonAfterClosing  = "Cannot take orders after the restaurant closed."
	ReasonClosingBuffer = "Cannot take orders in the last 30 minutes before closing."
	reasonTakingOrders  = "Restaurant is taking orders."
)

const (
	ScheduleFromOverride = "override"
	ScheduleFromDefault  = "default"
)

// ScheduleStore defines the DB methods needed to resolve today's schedule.
// Satisfied by *database.Queries; narrow interface for testability.
type ScheduleStore interface {
	GetScheduleOverrideByDate(ctx context.Context, date pgtype.Date) (database.ScheduleOverride, error)
	GetDefaultSchedule(ctx context.Context) (database.DefaultSchedule, error)
}

// EffectiveSchedule is the schedule that applies to one calendar date.
// Opening and Closing are offsets from local midnight.
type EffectiveSchedule struct {
	Date      time.Time
	Source    string // override, default, or empty when nothing is configured
	IsHoliday bool
	Opening   time.Duration
	Closing   time.Duration
}

// Configured reports whether any schedule row was found for the date.
func (s EffectiveSchedule) Configured() bool { return s.Source != "" }

// Decision is the gate's answer. Denial is a normal outcome, not an error.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason"`
}

// ScheduleGate decides whether new orders may be accepted right now.
type ScheduleGate struct {
	store ScheduleStore
	loc   *time.Location
	now   func() time.Time
}

// NewScheduleGate creates a gate evaluating times in loc. A nil now uses time.Now.
func NewScheduleGate(store ScheduleStore, loc *time.Location, now func() time.Time) *ScheduleGate {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &ScheduleGate{store: store, loc: loc, now: now}
}

// Now returns the current instant in the restaurant timezone.
func (g *ScheduleGate) Now() time.Time {
	return g.now().In(g.loc)
}

// Location returns the restaurant timezone.
func (g *ScheduleGate) Location() *time.Location {
	return g.loc
}

// Today resolves the schedule for the current local date: an override for the
// date wins, otherwise the default schedule applies.
func (g *ScheduleGate) Today(ctx context.Context) (EffectiveSchedule, error) {
	return g.ForDate(ctx, g.Now())
}

// ForDate resolves the schedule for the local calendar date of day.
func (g *ScheduleGate) ForDate(ctx context.Context, day time.Time) (EffectiveSchedule, error) {
	day = day.In(g.loc)
	y, m, d := day.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, g.loc)
	sched := EffectiveSchedule{Date: date}

	override, err := g.store.GetScheduleOverrideByDate(ctx, pgtype.Date{
		Time:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Valid: true,
	})
	switch {
	case err == nil:
		sched.Source = ScheduleFromOverride
		sched.IsHoliday = override.IsHoliday
		if !override.IsHoliday {
			sched.Opening = timeOfDay(override.OpeningTime)
			sched.Closing = timeOfDay(override.ClosingTime)
		}
		return sched, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return sched, fmt.Errorf("get schedule override: %w", err)
	}

	def, err := g.store.GetDefaultSchedule(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sched, nil
		}
		return sched, fmt.Errorf("get default schedule: %w", err)
	}
	sched.Source = ScheduleFromDefault
	sched.Opening = timeOfDay(def.OpeningTime)
	sched.Closing = timeOfDay(def.ClosingTime)
	return sched, nil
}

// CanTakeOrders evaluates today's schedule against the current time.
// Only store failures are returned as errors.
func (g *ScheduleGate) CanTakeOrders(ctx context.Context) (Decision, error) {
	now := g.Now()
	sched, err := g.ForDate(ctx, now)
	if err != nil {
		return Decision{}, err
	}
	return Evaluate(sched, now), nil
}

// Evaluate applies the opening and closing buffers to sched at instant now.
// The four checks run in order: now < open, now < open+30m, now > close,
// now >= close-30m.
func Evaluate(sched EffectiveSchedule, now time.Time) Decision {
	if !sched.Configured() || sched.IsHoliday {
		return Decision{Allowed: false, Reason: ReasonClosedToday}
	}

	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	open := midnight.Add(sched.Opening)
	openPlusBuffer := open.Add(OrderBuffer)
	closing := midnight.Add(sched.Closing)
	closeMinusBuffer := closing.Add(-OrderBuffer)

	if now.Before(open) {
		return Decision{Allowed: false, Reason: ReasonBeforeOpening}
	}
	if now.Before(openPlusBuffer) {
		return Decision{Allowed: false, Reason: ReasonOpeningBuffer}
	}
	if now.After(closing) {
		return Decision{Allowed: false, Reason: ReasonAfterClosing}
	}
	if !now.Before(closeMinusBuffer) {
		return Decision{Allowed: false, Reason: ReasonClosingBuffer}
	}
	return Decision{Allowed: true, Reason: reasonTakingOrders}
}

// ClockTime converts an offset from midnight to the pgtype.Time wire form.
func ClockTime(d time.Duration) pgtype.Time {
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}

// ParseClock parses "15:04" or "15:04:05" into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, nil
		}
	}
	return 0, fmt.Errorf("invalid time %q, use HH:MM", s)
}

// FormatClock renders an offset from midnight as "15:04:05".
func FormatClock(d time.Duration) string {
	return time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format("15:04:05")
}

func timeOfDay(t pgtype.Time) time.Duration {
	if !t.Valid {
		return 0
	}
	return time.Duration(t.Microseconds) * time.Microsecond
}
