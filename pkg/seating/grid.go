// Package seating validates seat labels against the fixed hall layout:
// rows A..Z, at most MaxSeatsPerRow seats per row, numbered from 1.
// Seat n of a hall sits in row (n-1)/MaxSeatsPerRow, so the last row of
// a hall whose capacity is not a multiple of MaxSeatsPerRow is partial.
package seating

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxSeatsPerRow = 8
	RowLabels      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	MaxRowCount    = len(RowLabels)
)

var labelPattern = regexp.MustCompile(`^[A-Z][1-9][0-9]*$`)

var (
	ErrInvalidCapacity     = errors.New("hall capacity must be positive")
	ErrEmptyLabels         = errors.New("seat numbers cannot be empty")
	ErrMalformedLabel      = errors.New("malformed seat label")
	ErrBadColumn           = errors.New("seat column is not an integer")
	ErrRowExceedsCapacity  = errors.New("seat row exceeds hall capacity")
	ErrColumnOutOfRange    = errors.New("seat column out of range")
	ErrSeatExceedsCapacity = errors.New("seat exceeds hall capacity")
)

// LabelError reports the first rejected label. Kind is one of the
// Err* sentinels above and is what errors.Is matches against.
type LabelError struct {
	Label    string
	Kind     error
	Capacity int
	MaxRows  int
	Column   int
}

func (e *LabelError) Error() string {
	switch e.Kind {
	case ErrMalformedLabel:
		return fmt.Sprintf("seat '%s' is not in a valid format (e.g., A1, B12)", e.Label)
	case ErrBadColumn:
		return fmt.Sprintf("seat '%s' column must be a valid integer", e.Label)
	case ErrRowExceedsCapacity:
		return fmt.Sprintf("seat '%s' row '%c' exceeds hall capacity (max %d rows)", e.Label, e.Label[0], e.MaxRows)
	case ErrColumnOutOfRange:
		return fmt.Sprintf("seat '%s' column %d is invalid (must be 1 to %d)", e.Label, e.Column, MaxSeatsPerRow)
	case ErrSeatExceedsCapacity:
		return fmt.Sprintf("seat '%s' exceeds hall capacity of %d", e.Label, e.Capacity)
	}
	return fmt.Sprintf("seat '%s': %v", e.Label, e.Kind)
}

func (e *LabelError) Unwrap() error {
	return e.Kind
}

// Seat is a parsed label. Row is zero based.
type Seat struct {
	Row    int
	Column int
}

// Label renders the seat back to "C4" form.
func (s Seat) Label() string {
	return fmt.Sprintf("%c%d", RowLabels[s.Row], s.Column)
}

// Index is the 1-based absolute position of the seat in the hall.
func (s Seat) Index() int {
	return s.Row*MaxSeatsPerRow + s.Column
}

// MaxRows is ceil(capacity / MaxSeatsPerRow).
func MaxRows(capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return (capacity + MaxSeatsPerRow - 1) / MaxSeatsPerRow
}

// ParseLabels splits the external comma-separated representation and
// trims each part. Empty input yields no labels; empty parts are kept
// so that "A1," is rejected as malformed rather than silently fixed.
func ParseLabels(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	labels := make([]string, len(parts))
	for i, p := range parts {
		labels[i] = strings.TrimSpace(p)
	}
	return labels
}

// ParseSeat checks a single label against a hall of the given capacity.
func ParseSeat(capacity int, label string) (Seat, error) {
	if capacity <= 0 {
		return Seat{}, ErrInvalidCapacity
	}
	if !labelPattern.MatchString(label) {
		return Seat{}, &LabelError{Label: label, Kind: ErrMalformedLabel}
	}

	col, err := strconv.Atoi(label[1:])
	if err != nil {
		return Seat{}, &LabelError{Label: label, Kind: ErrBadColumn}
	}

	maxRows := MaxRows(capacity)
	row := strings.IndexByte(RowLabels, label[0])
	if row >= maxRows {
		return Seat{}, &LabelError{Label: label, Kind: ErrRowExceedsCapacity, MaxRows: maxRows}
	}

	if col < 1 || col > MaxSeatsPerRow {
		return Seat{}, &LabelError{Label: label, Kind: ErrColumnOutOfRange, Column: col}
	}

	seat := Seat{Row: row, Column: col}
	if seat.Index() > capacity {
		return Seat{}, &LabelError{Label: label, Kind: ErrSeatExceedsCapacity, Capacity: capacity}
	}

	return seat, nil
}

// Validate checks every label in order and stops at the first failure.
// Repeated labels are not rejected here, nor are seats already taken.
func Validate(capacity int, labels []string) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	if len(labels) == 0 {
		return ErrEmptyLabels
	}
	for _, label := range labels {
		if _, err := ParseSeat(capacity, label); err != nil {
			return err
		}
	}
	return nil
}

// Layout lists every seat label of a hall in row-major order. Rows past
// Z are not addressable and are left out.
func Layout(capacity int) []string {
	if capacity <= 0 {
		return nil
	}
	rows := MaxRows(capacity)
	if rows > MaxRowCount {
		rows = MaxRowCount
	}

	labels := make([]string, 0, capacity)
	for r := 0; r < rows; r++ {
		for c := 1; c <= MaxSeatsPerRow; c++ {
			seat := Seat{Row: r, Column: c}
			if seat.Index() > capacity {
				break
			}
			labels = append(labels, seat.Label())
		}
	}
	return labels
}
