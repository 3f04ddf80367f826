package seating

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name     string
		capacity int
		labels   []string
		want     error
	}{
		{"valid C4 in 100", 100, []string{"C4"}, nil},
		{"lowercase", 100, []string{"a1"}, ErrMalformedLabel},
		{"column 9", 100, []string{"A9"}, ErrColumnOutOfRange},
		{"column 10 matches pattern", 100, []string{"A10"}, ErrColumnOutOfRange},
		{"row C in 10", 10, []string{"C1"}, ErrRowExceedsCapacity},
		{"partial last row", 10, []string{"B3"}, ErrSeatExceedsCapacity},
		{"last seat", 10, []string{"B2"}, nil},
		{"leading zero", 100, []string{"A01"}, ErrMalformedLabel},
		{"zero column", 100, []string{"A0"}, ErrMalformedLabel},
		{"column overflows int", 100, []string{"A99999999999999999999"}, ErrBadColumn},
		{"empty part", 100, []string{"A1", ""}, ErrMalformedLabel},
		{"no labels", 100, nil, ErrEmptyLabels},
		{"bad capacity", 0, []string{"A1"}, ErrInvalidCapacity},
		{"duplicates are allowed", 16, []string{"A1", "A1"}, nil},
		{"full hall", 16, []string{"A1", "A8", "B1", "B8"}, nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tc.capacity, tc.labels)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateStopsAtFirstBadLabel(t *testing.T) {
	t.Parallel()
	err := Validate(16, []string{"A1", "Z1", "a2"})

	var labelErr *LabelError
	require.True(t, errors.As(err, &labelErr))
	assert.Equal(t, "Z1", labelErr.Label)
	assert.ErrorIs(t, err, ErrRowExceedsCapacity)
	assert.Equal(t, "seat 'Z1' row 'Z' exceeds hall capacity (max 2 rows)", err.Error())
}

func TestLabelErrorMessages(t *testing.T) {
	t.Parallel()
	_, err := ParseSeat(10, "A9")
	assert.EqualError(t, err, "seat 'A9' column 9 is invalid (must be 1 to 8)")

	_, err = ParseSeat(10, "B3")
	assert.EqualError(t, err, "seat 'B3' exceeds hall capacity of 10")

	_, err = ParseSeat(10, "b3")
	assert.EqualError(t, err, "seat 'b3' is not in a valid format (e.g., A1, B12)")

	_, err = ParseSeat(10, "A99999999999999999999")
	assert.EqualError(t, err, "seat 'A99999999999999999999' column must be a valid integer")
}

func TestParseSeat(t *testing.T) {
	t.Parallel()
	seat, err := ParseSeat(100, "C4")
	require.NoError(t, err)
	assert.Equal(t, Seat{Row: 2, Column: 4}, seat)
	assert.Equal(t, 20, seat.Index())
	assert.Equal(t, "C4", seat.Label())
}

func TestParseLabels(t *testing.T) {
	t.Parallel()
	assert.Nil(t, ParseLabels(""))
	assert.Nil(t, ParseLabels("   "))
	assert.Equal(t, []string{"A1", "B2"}, ParseLabels(" A1 , B2"))
	assert.Equal(t, []string{"A1", ""}, ParseLabels("A1,"))
}

func TestMaxRows(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 13, MaxRows(100))
	assert.Equal(t, 2, MaxRows(10))
	assert.Equal(t, 2, MaxRows(16))
	assert.Equal(t, 0, MaxRows(0))
}

func TestLayout(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "B1", "B2"}, Layout(10))
	assert.Len(t, Layout(16), 16)
	assert.Len(t, Layout(1000), MaxRowCount*MaxSeatsPerRow)
	assert.Empty(t, Layout(0))

	for _, label := range Layout(37) {
		assert.NoError(t, Validate(37, []string{label}))
	}
}
