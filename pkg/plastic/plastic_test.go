package plastic_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/utilkit/pkg/plastic"
)

func fixedClock(t time.Time) plastic.Clock {
	return func() time.Time { return t }
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("date only", func(t *testing.T) {
		t.Parallel()
		p, err := plastic.Parse("2024-02-29")
		require.NoError(t, err)
		assert.Equal(t, "2024-02-29 00:00:00", p.ToDateTimeString())
		assert.Equal(t, time.UTC, p.Time().Location())
	})

	t.Run("date time", func(t *testing.T) {
		t.Parallel()
		p, err := plastic.Parse("2024-03-10 14:30:05")
		require.NoError(t, err)
		assert.Equal(t, 14, p.Hour())
		assert.Equal(t, 30, p.Minute())
		assert.Equal(t, 5, p.Second())
	})

	t.Run("rfc3339 keeps offset", func(t *testing.T) {
		t.Parallel()
		p, err := plastic.Parse("2024-03-10T14:30:00+02:00")
		require.NoError(t, err)
		assert.Equal(t, 12, p.UTC().Hour())
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		_, err := plastic.Parse("  ")
		assert.ErrorIs(t, err, plastic.ErrEmptyInput)
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()
		_, err := plastic.Parse("not a date")
		assert.ErrorIs(t, err, plastic.ErrInvalidFormat)
	})

	t.Run("in location", func(t *testing.T) {
		t.Parallel()
		loc := time.FixedZone("UTC+3", 3*3600)
		p, err := plastic.ParseInLocation("2024-01-01 03:00:00", loc)
		require.NoError(t, err)
		assert.Equal(t, 0, p.UTC().Hour())
	})
}

func TestBoundaries(t *testing.T) {
	t.Parallel()

	// Wednesday
	p := plastic.Create(2024, time.May, 15, 13, 45, 10, time.UTC)

	assert.Equal(t, "2024-05-15 00:00:00", p.StartOfDay().ToDateTimeString())
	assert.Equal(t, "2024-05-15 23:59:59", p.EndOfDay().ToDateTimeString())
	assert.Equal(t, "2024-05-13 00:00:00", p.StartOfWeek().ToDateTimeString())
	assert.Equal(t, "2024-05-19 23:59:59", p.EndOfWeek().ToDateTimeString())
	assert.Equal(t, "2024-05-01 00:00:00", p.StartOfMonth().ToDateTimeString())
	assert.Equal(t, "2024-05-31 23:59:59", p.EndOfMonth().ToDateTimeString())
	assert.Equal(t, "2024-04-01 00:00:00", p.StartOfQuarter().ToDateTimeString())
	assert.Equal(t, "2024-01-01 00:00:00", p.StartOfYear().ToDateTimeString())
	assert.Equal(t, 2, p.Quarter())
	assert.Equal(t, 31, p.DaysInMonth())

	t.Run("sunday week start", func(t *testing.T) {
		t.Parallel()
		s := plastic.FromTime(p.Time(), plastic.WithWeekStart(time.Sunday))
		assert.Equal(t, "2024-05-12", s.StartOfWeek().ToDateString())
	})

	t.Run("immutability", func(t *testing.T) {
		t.Parallel()
		_ = p.AddDays(10).StartOfMonth()
		assert.Equal(t, "2024-05-15 13:45:10", p.ToDateTimeString())
	})
}

func TestArithmetic(t *testing.T) {
	t.Parallel()

	p := plastic.Create(2024, time.January, 31, 10, 0, 0, time.UTC)

	assert.Equal(t, "2024-02-29", p.AddMonthsNoOverflow(1).ToDateString())
	assert.Equal(t, "2024-03-02", p.AddMonths(1).ToDateString())
	assert.Equal(t, "2023-12-31", p.SubMonths(1).ToDateString())
	assert.Equal(t, "2024-02-07", p.AddWeeks(1).ToDateString())
	assert.Equal(t, "2024-01-31 12:30:00", p.AddHours(2).AddMinutes(30).ToDateTimeString())
	assert.Equal(t, "2025-01-31", p.AddYears(1).ToDateString())
	assert.Equal(t, "2024-01-31 08:15:00", p.SetTime(8, 15, 0).ToDateTimeString())
	assert.Equal(t, "2020-06-01 10:00:00", p.SetDate(2020, time.June, 1).ToDateTimeString())
}

func TestDiff(t *testing.T) {
	t.Parallel()

	a := plastic.Create(2024, time.January, 15, 0, 0, 0, time.UTC)
	b := plastic.Create(2024, time.March, 14, 12, 0, 0, time.UTC)

	assert.Equal(t, int64(59), a.DiffInDays(b))
	assert.Equal(t, int64(59), b.DiffInDays(a))
	assert.Equal(t, int64(1), a.DiffInMonths(b))
	assert.Equal(t, int64(2), a.DiffInMonths(b.AddDays(1)))
	assert.Equal(t, int64(8), a.DiffInWeeks(b))
	assert.Equal(t, int64(0), a.DiffInYears(b))
	assert.Equal(t, b.Time().Sub(a.Time()), a.Diff(b))
	assert.True(t, plastic.Create(2024, time.February, 1, 0, 0, 0, nil).Between(b, a))
}

func TestRelative(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)
	clock := plastic.WithClock(fixedClock(now))

	t.Run("diff for humans", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "3 days ago", plastic.FromTime(now.AddDate(0, 0, -3), clock).DiffForHumans())
		assert.Equal(t, "2 hours from now", plastic.FromTime(now.Add(2*time.Hour), clock).DiffForHumans())
		assert.Equal(t, "now", plastic.FromTime(now, clock).DiffForHumans())
	})

	t.Run("day predicates", func(t *testing.T) {
		t.Parallel()
		assert.True(t, plastic.FromTime(now.Add(-time.Hour), clock).IsToday())
		assert.True(t, plastic.FromTime(now.AddDate(0, 0, -1), clock).IsYesterday())
		assert.True(t, plastic.FromTime(now.AddDate(0, 0, 1), clock).IsTomorrow())
		assert.True(t, plastic.FromTime(now.Add(-time.Second), clock).IsPast())
		assert.True(t, plastic.FromTime(now.Add(time.Second), clock).IsFuture())
	})

	t.Run("now and today", func(t *testing.T) {
		t.Parallel()
		assert.True(t, plastic.Now(clock).Time().Equal(now))
		assert.Equal(t, "2026-10-18 00:00:00", plastic.Today(clock).ToDateTimeString())
	})

	t.Run("age", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 30, plastic.Create(1996, time.October, 18, 0, 0, 0, time.UTC, clock).Age())
		assert.Equal(t, 29, plastic.Create(1996, time.October, 19, 0, 0, 0, time.UTC, clock).Age())
		assert.Equal(t, 0, plastic.FromTime(now.AddDate(1, 0, 0), clock).Age())
	})
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	sat := plastic.Create(2024, time.May, 18, 0, 0, 0, time.UTC)
	assert.True(t, sat.IsWeekend())
	assert.False(t, sat.IsWeekday())
	assert.True(t, sat.IsLeapYear())
	assert.False(t, plastic.Create(1900, time.May, 1, 0, 0, 0, time.UTC).IsLeapYear())
	assert.True(t, sat.IsSameMonth(sat.StartOfMonth()))
	assert.True(t, sat.IsSameDay(sat.EndOfDay()))
}

func TestJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		At plastic.Plastic `json:"at"`
	}

	in := payload{At: plastic.Create(2024, time.May, 18, 9, 30, 0, time.UTC)}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2024-05-18T09:30:00Z"}`, string(b))

	var out payload
	require.NoError(t, json.Unmarshal(b, &out))
	assert.True(t, in.At.Equal(out.At))

	require.NoError(t, json.Unmarshal([]byte(`{"at":null}`), &out))
	assert.True(t, out.At.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"at":12}`), &out))
}

func TestFromUnix(t *testing.T) {
	t.Parallel()

	p := plastic.FromUnix(0)
	assert.Equal(t, "1970-01-01T00:00:00Z", p.ToISO8601String())
	assert.Equal(t, int64(0), p.Unix())
}
