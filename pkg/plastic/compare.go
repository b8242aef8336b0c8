package plastic

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

func (p Plastic) Equal(o Plastic) bool  { return p.t.Equal(o.t) }
func (p Plastic) Before(o Plastic) bool { return p.t.Before(o.t) }
func (p Plastic) After(o Plastic) bool  { return p.t.After(o.t) }

// Between reports whether p lies within [a, b], in either order.
func (p Plastic) Between(a, b Plastic) bool {
	if a.After(b) {
		a, b = b, a
	}
	return !p.Before(a) && !p.After(b)
}

func (p Plastic) IsPast() bool   { return p.t.Before(p.now()) }
func (p Plastic) IsFuture() bool { return p.t.After(p.now()) }

func (p Plastic) IsToday() bool     { return sameDay(p.t, p.now()) }
func (p Plastic) IsYesterday() bool { return sameDay(p.t, p.now().AddDate(0, 0, -1)) }
func (p Plastic) IsTomorrow() bool  { return sameDay(p.t, p.now().AddDate(0, 0, 1)) }

func (p Plastic) IsWeekend() bool {
	d := p.t.Weekday()
	return d == time.Saturday || d == time.Sunday
}

func (p Plastic) IsWeekday() bool { return !p.IsWeekend() }

func (p Plastic) IsLeapYear() bool {
	y := p.t.Year()
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

// IsSameDay compares calendar dates in p's location.
func (p Plastic) IsSameDay(o Plastic) bool { return sameDay(p.t, o.t.In(p.location())) }

func (p Plastic) IsSameMonth(o Plastic) bool {
	ot := o.t.In(p.location())
	return p.t.Year() == ot.Year() && p.t.Month() == ot.Month()
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Diff returns o minus p.
func (p Plastic) Diff(o Plastic) time.Duration { return o.t.Sub(p.t) }

// DiffInSeconds and the other DiffIn helpers return absolute whole units.
func (p Plastic) DiffInSeconds(o Plastic) int64 { return absTrunc(p.Diff(o).Seconds()) }
func (p Plastic) DiffInMinutes(o Plastic) int64 { return absTrunc(p.Diff(o).Minutes()) }
func (p Plastic) DiffInHours(o Plastic) int64   { return absTrunc(p.Diff(o).Hours()) }
func (p Plastic) DiffInDays(o Plastic) int64    { return absTrunc(p.Diff(o).Hours() / 24) }
func (p Plastic) DiffInWeeks(o Plastic) int64   { return p.DiffInDays(o) / 7 }

// DiffInMonths counts whole calendar months between p and o.
func (p Plastic) DiffInMonths(o Plastic) int64 {
	return int64(monthsBetween(p.t, o.t.In(p.location())))
}

func (p Plastic) DiffInYears(o Plastic) int64 { return p.DiffInMonths(o) / 12 }

// DiffForHumans describes p relative to the clock's now: "3 days ago",
// "2 hours from now".
func (p Plastic) DiffForHumans() string {
	return humanize.RelTime(p.t, p.now(), "ago", "from now")
}

// DiffForHumansFrom describes p relative to o: "3 days before".
func (p Plastic) DiffForHumansFrom(o Plastic) string {
	return humanize.RelTime(p.t, o.t, "before", "after")
}

// Age is the number of full years from p to now.
func (p Plastic) Age() int {
	if p.IsFuture() {
		return 0
	}
	return monthsBetween(p.t, p.now()) / 12
}

func monthsBetween(a, b time.Time) int {
	if a.After(b) {
		a, b = b, a
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()-a.Month())
	if months > 0 && FromTime(a).AddMonthsNoOverflow(months).t.After(b) {
		months--
	}
	return months
}

func absTrunc(f float64) int64 {
	return int64(math.Abs(math.Trunc(f)))
}
