package scheduling

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// TimeOfDay is a wall-clock hour and minute without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" (24h).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// TimeOfDayOf takes the hour and minute of t.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On combines the calendar date of d with t in loc.
func (t TimeOfDay) On(d time.Time, loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, t.Hour, t.Minute, 0, 0, loc)
}

// Date truncates t to its calendar date at UTC midnight. All range
// arithmetic in this package runs on such values.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// FormatDate renders a date as "YYYY-MM-DD".
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// Screening recurs once a day at TimeOfDay for every date in
// [StartDate, EndDate], each occurrence lasting DurationMinutes.
type Screening struct {
	ID              uuid.UUID
	Title           string
	DurationMinutes int
	TimeOfDay       TimeOfDay
	StartDate       time.Time
	EndDate         time.Time
}

// Covers reports whether d falls inside the screening's date range.
func (s Screening) Covers(d time.Time) bool {
	d = Date(d)
	return !d.Before(Date(s.StartDate)) && !d.After(Date(s.EndDate))
}

// Intersects reports whether the two date ranges share at least one day.
func (s Screening) Intersects(o Screening) bool {
	return !Date(s.StartDate).After(Date(o.EndDate)) && !Date(o.StartDate).After(Date(s.EndDate))
}

// OccurrenceOn is the absolute window of the occurrence anchored on d.
// The end is start + duration, so it may fall on the next calendar day.
func (s Screening) OccurrenceOn(d time.Time, loc *time.Location) Window {
	start := s.TimeOfDay.On(d, loc)
	return Window{
		Start: start,
		End:   start.Add(time.Duration(s.DurationMinutes) * time.Minute),
	}
}

// Window is a half-open [Start, End) interval.
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps is true unless one window ends at or before the other starts.
func (w Window) Overlaps(o Window) bool {
	return !(!w.End.After(o.Start) || !w.Start.Before(o.End))
}

// Contains reports whether t lies in [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s,%s)", w.Start.Format("15:04"), w.End.Format("15:04"))
}
