package plastic

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// Common layouts.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Clock returns the current time.
type Clock func() time.Time

// Option configures a Plastic.
type Option func(*Plastic)

// WithClock sets the source of "now".
func WithClock(c Clock) Option {
	return func(p *Plastic) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithWeekStart sets the first day of the week. Defaults to Monday.
func WithWeekStart(d time.Weekday) Option {
	return func(p *Plastic) { p.weekStart = d }
}

// WithLocation converts the wrapped time into loc.
func WithLocation(loc *time.Location) Option {
	return func(p *Plastic) { p.loc = loc }
}

// Plastic is an immutable point in time.
type Plastic struct {
	t         time.Time
	clock     Clock
	weekStart time.Weekday
	loc       *time.Location
}

func build(t time.Time, opts []Option) Plastic {
	p := Plastic{t: t, clock: time.Now, weekStart: time.Monday}
	for _, opt := range opts {
		opt(&p)
	}
	if p.loc != nil {
		p.t = p.t.In(p.loc)
	}
	return p
}

// FromTime wraps t.
func FromTime(t time.Time, opts ...Option) Plastic {
	return build(t, opts)
}

// Now returns the current time of the configured clock.
func Now(opts ...Option) Plastic {
	p := build(time.Time{}, opts)
	p.t = p.clock()
	if p.loc != nil {
		p.t = p.t.In(p.loc)
	}
	return p
}

// Today returns the start of the current day.
func Today(opts ...Option) Plastic {
	return Now(opts...).StartOfDay()
}

// FromUnix wraps a Unix timestamp in seconds, in UTC.
func FromUnix(sec int64, opts ...Option) Plastic {
	return build(time.Unix(sec, 0).UTC(), opts)
}

// Create builds a time from its parts in loc (UTC when nil).
func Create(year int, month time.Month, day, hour, minute, second int, loc *time.Location, opts ...Option) Plastic {
	if loc == nil {
		loc = time.UTC
	}
	return build(time.Date(year, month, day, hour, minute, second, 0, loc), opts)
}

// Parse reads RFC 3339 and the common date and date-time layouts, in UTC.
func Parse(value string, opts ...Option) (Plastic, error) {
	return ParseInLocation(value, time.UTC, opts...)
}

// ParseInLocation is Parse for inputs without an explicit offset.
func ParseInLocation(value string, loc *time.Location, opts ...Option) (Plastic, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Plastic{}, ErrEmptyInput
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return build(t, opts), nil
	}
	cfg := &now.Config{WeekStartDay: time.Monday, TimeLocation: loc, TimeFormats: now.TimeFormats}
	t, err := cfg.Parse(value)
	if err != nil {
		return Plastic{}, fmt.Errorf("%w: %q", ErrInvalidFormat, value)
	}
	return build(t, opts), nil
}

// MustParse is Parse that panics on error.
func MustParse(value string, opts ...Option) Plastic {
	p, err := Parse(value, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Plastic) with(t time.Time) Plastic {
	p.t = t
	return p
}

func (p Plastic) now() time.Time {
	if p.clock == nil {
		return time.Now().In(p.location())
	}
	return p.clock().In(p.location())
}

func (p Plastic) location() *time.Location {
	if loc := p.t.Location(); loc != nil {
		return loc
	}
	return time.UTC
}

func (p Plastic) cal() *now.Now {
	return (&now.Config{WeekStartDay: p.weekStart}).With(p.t)
}

// Time returns the wrapped time.
func (p Plastic) Time() time.Time { return p.t }

// Unix returns the Unix timestamp in seconds.
func (p Plastic) Unix() int64 { return p.t.Unix() }

// In returns the same instant in loc.
func (p Plastic) In(loc *time.Location) Plastic { return p.with(p.t.In(loc)) }

// UTC returns the same instant in UTC.
func (p Plastic) UTC() Plastic { return p.with(p.t.UTC()) }

func (p Plastic) Year() int         { return p.t.Year() }
func (p Plastic) Month() time.Month { return p.t.Month() }
func (p Plastic) Day() int          { return p.t.Day() }
func (p Plastic) Hour() int         { return p.t.Hour() }
func (p Plastic) Minute() int       { return p.t.Minute() }
func (p Plastic) Second() int       { return p.t.Second() }

func (p Plastic) Weekday() time.Weekday { return p.t.Weekday() }

// Quarter returns 1 to 4.
func (p Plastic) Quarter() int { return int(p.cal().Quarter()) }

// DaysInMonth returns the number of days of the wrapped month.
func (p Plastic) DaysInMonth() int { return p.EndOfMonth().Day() }

func (p Plastic) IsZero() bool { return p.t.IsZero() }
