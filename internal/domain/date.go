package domain

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar day as sent by the remote API.
type Date string

// NewDate formats t as a Date.
func NewDate(t time.Time) Date { return Date(t.Format(DateLayout)) }

// Time parses the date. A full RFC 3339 timestamp is accepted as well,
// some older records were stored that way.
func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(DateLayout, string(d))
	if err == nil {
		return t, nil
	}
	if ts, tsErr := time.Parse(time.RFC3339, string(d)); tsErr == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, err
}

// After reports whether d is a later day than other. Unparseable dates
// compare as the zero time.
func (d Date) After(other Date) bool {
	a, _ := d.Time()
	b, _ := other.Time()
	return a.After(b)
}
