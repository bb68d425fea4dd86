package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const scheduleOverrideColumns = `id, date, opening_time, closing_time, is_holiday`

func scanScheduleOverride(row rowScanner) (ScheduleOverride, error) {
	var i ScheduleOverride
	err := row.Scan(
		&i.ID,
		&i.Date,
		&i.OpeningTime,
		&i.ClosingTime,
		&i.IsHoliday,
	)
	return i, err
}

const getDefaultSchedule = `SELECT opening_time, closing_time FROM default_schedule WHERE id = 1
`

func (q *Queries) GetDefaultSchedule(ctx context.Context) (DefaultSchedule, error) {
	row := q.db.QueryRow(ctx, getDefaultSchedule)
	var i DefaultSchedule
	err := row.Scan(&i.OpeningTime, &i.ClosingTime)
	return i, err
}

const getScheduleOverrideByDate = `SELECT ` + scheduleOverrideColumns + ` FROM schedule_overrides WHERE date = $1
`

func (q *Queries) GetScheduleOverrideByDate(ctx context.Context, date pgtype.Date) (ScheduleOverride, error) {
	return scanScheduleOverride(q.db.QueryRow(ctx, getScheduleOverrideByDate, date))
}

const listScheduleOverrides = `SELECT ` + scheduleOverrideColumns + ` FROM schedule_overrides
WHERE ($1::date IS NULL OR date >= $1::date)
ORDER BY date ASC
`

func (q *Queries) ListScheduleOverrides(ctx context.Context, from pgtype.Date) ([]ScheduleOverride, error) {
	rows, err := q.db.Query(ctx, listScheduleOverrides, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ScheduleOverride{}
	for rows.Next() {
		i, err := scanScheduleOverride(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertDefaultSchedule = `INSERT INTO default_schedule (id, opening_time, closing_time)
VALUES (1, $1, $2)
ON CONFLICT (id) DO UPDATE SET opening_time = EXCLUDED.opening_time, closing_time = EXCLUDED.closing_time
RETURNING opening_time, closing_time
`

type UpsertDefaultScheduleParams struct {
	OpeningTime pgtype.Time `json:"opening_time"`
	ClosingTime pgtype.Time `json:"closing_time"`
}

func (q *Queries) UpsertDefaultSchedule(ctx context.Context, arg UpsertDefaultScheduleParams) (DefaultSchedule, error) {
	row := q.db.QueryRow(ctx, upsertDefaultSchedule, arg.OpeningTime, arg.ClosingTime)
	var i DefaultSchedule
	err := row.Scan(&i.OpeningTime, &i.ClosingTime)
	return i, err
}

const upsertScheduleOverride = `INSERT INTO schedule_overrides (date, opening_time, closing_time, is_holiday)
VALUES ($1, $2, $3, $4)
ON CONFLICT (date) DO UPDATE SET
    opening_time = EXCLUDED.opening_time,
    closing_time = EXCLUDED.closing_time,
    is_holiday = EXCLUDED.is_holiday
RETURNING ` + scheduleOverrideColumns

type UpsertScheduleOverrideParams struct {
	Date        pgtype.Date `json:"date"`
	OpeningTime pgtype.Time `json:"opening_time"`
	ClosingTime pgtype.Time `json:"closing_time"`
	IsHoliday   bool        `json:"is_holiday"`
}

func (q *Queries) UpsertScheduleOverride(ctx context.Context, arg UpsertScheduleOverrideParams) (ScheduleOverride, error) {
	row := q.db.QueryRow(ctx, upsertScheduleOverride,
		arg.Date,
		arg.OpeningTime,
		arg.ClosingTime,
		arg.IsHoliday,
	)
	return scanScheduleOverride(row)
}
