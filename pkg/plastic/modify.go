package plastic

import "time"

func (p Plastic) Add(d time.Duration) Plastic { return p.with(p.t.Add(d)) }
func (p Plastic) Sub(d time.Duration) Plastic { return p.with(p.t.Add(-d)) }

func (p Plastic) AddSeconds(n int) Plastic { return p.Add(time.Duration(n) * time.Second) }
func (p Plastic) AddMinutes(n int) Plastic { return p.Add(time.Duration(n) * time.Minute) }
func (p Plastic) AddHours(n int) Plastic   { return p.Add(time.Duration(n) * time.Hour) }

// AddDays moves by calendar days, keeping the wall clock across DST changes.
func (p Plastic) AddDays(n int) Plastic  { return p.with(p.t.AddDate(0, 0, n)) }
func (p Plastic) AddWeeks(n int) Plastic { return p.AddDays(7 * n) }

// AddMonths follows time.AddDate normalisation: January 31 plus one month is
// March 2 or 3. Use AddMonthsNoOverflow to clamp to the end of the month.
func (p Plastic) AddMonths(n int) Plastic { return p.with(p.t.AddDate(0, n, 0)) }
func (p Plastic) AddYears(n int) Plastic  { return p.with(p.t.AddDate(n, 0, 0)) }

// AddMonthsNoOverflow adds n months and clamps the day to the target month.
func (p Plastic) AddMonthsNoOverflow(n int) Plastic {
	y, m, d := p.t.Date()
	first := time.Date(y, m+time.Month(n), 1, p.t.Hour(), p.t.Minute(), p.t.Second(), p.t.Nanosecond(), p.t.Location())
	last := first.AddDate(0, 1, -1).Day()
	return p.with(first.AddDate(0, 0, min(d, last)-1))
}

func (p Plastic) SubSeconds(n int) Plastic { return p.AddSeconds(-n) }
func (p Plastic) SubMinutes(n int) Plastic { return p.AddMinutes(-n) }
func (p Plastic) SubHours(n int) Plastic   { return p.AddHours(-n) }
func (p Plastic) SubDays(n int) Plastic    { return p.AddDays(-n) }
func (p Plastic) SubWeeks(n int) Plastic   { return p.AddWeeks(-n) }
func (p Plastic) SubMonths(n int) Plastic  { return p.AddMonths(-n) }
func (p Plastic) SubYears(n int) Plastic   { return p.AddYears(-n) }

// SetDate replaces the calendar date, keeping the time of day.
func (p Plastic) SetDate(year int, month time.Month, day int) Plastic {
	return p.with(time.Date(year, month, day, p.t.Hour(), p.t.Minute(), p.t.Second(), p.t.Nanosecond(), p.t.Location()))
}

// SetTime replaces the time of day.
func (p Plastic) SetTime(hour, minute, second int) Plastic {
	y, m, d := p.t.Date()
	return p.with(time.Date(y, m, d, hour, minute, second, 0, p.t.Location()))
}

func (p Plastic) StartOfMinute() Plastic  { return p.with(p.cal().BeginningOfMinute()) }
func (p Plastic) StartOfHour() Plastic    { return p.with(p.cal().BeginningOfHour()) }
func (p Plastic) StartOfDay() Plastic     { return p.with(p.cal().BeginningOfDay()) }
func (p Plastic) StartOfWeek() Plastic    { return p.with(p.cal().BeginningOfWeek()) }
func (p Plastic) StartOfMonth() Plastic   { return p.with(p.cal().BeginningOfMonth()) }
func (p Plastic) StartOfQuarter() Plastic { return p.with(p.cal().BeginningOfQuarter()) }
func (p Plastic) StartOfYear() Plastic    { return p.with(p.cal().BeginningOfYear()) }

// End of period values are the last nanosecond of the period.
func (p Plastic) EndOfMinute() Plastic  { return p.with(p.cal().EndOfMinute()) }
func (p Plastic) EndOfHour() Plastic    { return p.with(p.cal().EndOfHour()) }
func (p Plastic) EndOfDay() Plastic     { return p.with(p.cal().EndOfDay()) }
func (p Plastic) EndOfWeek() Plastic    { return p.with(p.cal().EndOfWeek()) }
func (p Plastic) EndOfMonth() Plastic   { return p.with(p.cal().EndOfMonth()) }
func (p Plastic) EndOfQuarter() Plastic { return p.with(p.cal().EndOfQuarter()) }
func (p Plastic) EndOfYear() Plastic    { return p.with(p.cal().EndOfYear()) }
