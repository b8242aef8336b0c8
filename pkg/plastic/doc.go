// Package plastic wraps time.Time with the calendar conveniences applications
// keep rewriting: start and end of periods, calendar differences, human
// readable offsets and a few fixed string formats.
//
// A Plastic is an immutable value; every modifier returns a new one.
//
//	p := plastic.Now()
//	deadline := p.AddDays(3).EndOfDay()
//	fmt.Println(deadline.ToDateTimeString()) // 2026-10-21 23:59:59
//	fmt.Println(deadline.DiffForHumans())    // 3 days from now
//
// The notion of "now" comes from a Clock, time.Now unless WithClock is given,
// which keeps code that asks IsToday or IsPast testable without global state.
//
// Week boundaries start on Monday unless WithWeekStart says otherwise. Period
// boundaries are computed with github.com/jinzhu/now and relative strings with
// github.com/dustin/go-humanize.
package plastic
