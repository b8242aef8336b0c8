package plastic

import (
	"bytes"
	"time"
)

// Format uses Go reference layouts.
func (p Plastic) Format(layout string) string { return p.t.Format(layout) }

func (p Plastic) ToDateString() string     { return p.t.Format(DateLayout) }
func (p Plastic) ToTimeString() string     { return p.t.Format(TimeLayout) }
func (p Plastic) ToDateTimeString() string { return p.t.Format(DateTimeLayout) }
func (p Plastic) ToISO8601String() string  { return p.t.Format(time.RFC3339) }
func (p Plastic) ToRFC1123String() string  { return p.t.Format(time.RFC1123Z) }

func (p Plastic) String() string { return p.ToDateTimeString() }

// MarshalJSON encodes RFC 3339 with nanoseconds, or null for the zero time.
func (p Plastic) MarshalJSON() ([]byte, error) {
	if p.t.IsZero() {
		return []byte("null"), nil
	}
	return p.t.MarshalJSON()
}

// UnmarshalJSON accepts anything Parse does.
func (p *Plastic) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*p = Plastic{}
		return nil
	}
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return ErrInvalidFormat
	}
	parsed, err := Parse(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
