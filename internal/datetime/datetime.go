package datetime

import "time"

// DateLayout is the storage format for calendar dates. Date comparisons are
// done on these local-calendar strings, so the user's midnight is whatever
// their device clock says.
const DateLayout = "2006-01-02"

// Clock answers calendar-day questions against an injectable time source.
// The zero value is not usable; call New or NewFixed.
type Clock struct {
	now func() time.Time
}

// New creates a Clock backed by the system wall clock.
func New() Clock {
	return Clock{now: time.Now}
}

// NewFixed creates a Clock frozen at t. Used in tests.
func NewFixed(t time.Time) Clock {
	return Clock{now: func() time.Time { return t }}
}

// Now returns the current time from the underlying source.
func (c Clock) Now() time.Time {
	return c.now()
}

// Today returns the current local calendar date as a storage string.
func (c Clock) Today() string {
	return c.now().Format(DateLayout)
}

// IsToday reports whether the stored date string equals the current local
// calendar date. Empty input is never today.
func (c Clock) IsToday(date string) bool {
	if date == "" {
		return false
	}
	return date == c.Today()
}

// WasYesterday reports whether the stored date string equals the local
// calendar date exactly one day ago. Empty input is never yesterday.
func (c Clock) WasYesterday(date string) bool {
	if date == "" {
		return false
	}
	yesterday := c.now().AddDate(0, 0, -1)
	return date == yesterday.Format(DateLayout)
}

// UntilMidnight returns the time remaining until the next local midnight,
// floor-truncated to whole hours and minutes.
func (c Clock) UntilMidnight() (hours, minutes int) {
	now := c.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	diff := midnight.Sub(now)
	hours = int(diff / time.Hour)
	minutes = int((diff % time.Hour) / time.Minute)
	return hours, minutes
}
