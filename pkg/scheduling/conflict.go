// Package scheduling decides whether a daily-recurring screening can be
// admitted into a hall without overlapping the hall's other screenings.
//
// The checker is pure: it reads the candidate and a caller-supplied
// snapshot of existing screenings and never touches storage. Callers
// must serialize admissions per hall around the snapshot read and the
// write that follows.
package scheduling

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRange = errors.New("start date cannot be after end date")

// ConflictError is returned when the candidate overlaps an existing
// screening. Date is the first conflicting calendar date of the candidate.
type ConflictError struct {
	Existing        Screening
	Date            time.Time
	CandidateWindow Window
	ExistingWindow  Window
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("show conflicts with '%s' on %s from %s to %s",
		e.Existing.Title,
		FormatDate(e.Date),
		e.ExistingWindow.Start.Format("03:04 PM"),
		e.ExistingWindow.End.Format("03:04 PM"),
	)
}

// Checker runs the per-day conflict scan.
type Checker struct {
	loc    *time.Location
	strict bool
}

type Option func(*Checker)

// WithLocation sets the zone occurrences are anchored in. Default UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *Checker) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithMidnightRollover also compares each candidate occurrence against
// existing occurrences anchored on the previous and next day, catching
// screenings that run past midnight into a neighbour's start.
func WithMidnightRollover(strict bool) Option {
	return func(c *Checker) {
		c.strict = strict
	}
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{loc: time.UTC}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check returns nil when candidate can be admitted, ErrInvalidRange when
// its dates are reversed, or a *ConflictError naming the first overlap
// by date ascending and then by the order of existing.
//
// Entries of existing sharing the candidate's non-nil ID are skipped so
// an edited screening never conflicts with its stored self.
func (c *Checker) Check(candidate Screening, existing []Screening) error {
	first, last := Date(candidate.StartDate), Date(candidate.EndDate)
	if first.After(last) {
		return ErrInvalidRange
	}

	offsets := []int{0}
	if c.strict {
		offsets = []int{0, -1, 1}
	}

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		window := candidate.OccurrenceOn(d, c.loc)

		for _, s := range existing {
			if candidate.ID != uuid.Nil && s.ID == candidate.ID {
				continue
			}
			for _, off := range offsets {
				anchor := d.AddDate(0, 0, off)
				if !s.Covers(anchor) {
					continue
				}
				other := s.OccurrenceOn(anchor, c.loc)
				if window.Overlaps(other) {
					return &ConflictError{
						Existing:        s,
						Date:            d,
						CandidateWindow: window,
						ExistingWindow:  other,
					}
				}
			}
		}
	}

	return nil
}

// CheckConflict runs the default checker: UTC, same-day anchors only.
func CheckConflict(candidate Screening, existing []Screening) error {
	return NewChecker().Check(candidate, existing)
}
