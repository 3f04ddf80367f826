package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(n int) time.Time {
	return time.Date(2025, time.March, n, 0, 0, 0, 0, time.UTC)
}

func screening(title string, hh, mm, minutes, from, to int) Screening {
	return Screening{
		ID:              uuid.New(),
		Title:           title,
		DurationMinutes: minutes,
		TimeOfDay:       TimeOfDay{Hour: hh, Minute: mm},
		StartDate:       day(from),
		EndDate:         day(to),
	}
}

func TestCheckInvalidRange(t *testing.T) {
	t.Parallel()
	c := screening("Y", 10, 0, 90, 5, 4)

	err := CheckConflict(c, nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCheckOverlapScenario(t *testing.T) {
	t.Parallel()
	x := screening("X", 14, 0, 120, 1, 5)
	y := screening("Y", 15, 30, 90, 3, 7)

	err := CheckConflict(y, []Screening{x})
	require.Error(t, err)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, x.ID, conflict.Existing.ID)
	assert.Equal(t, day(3), conflict.Date)
	assert.Equal(t, time.Date(2025, time.March, 3, 15, 30, 0, 0, time.UTC), conflict.CandidateWindow.Start)
	assert.Equal(t, time.Date(2025, time.March, 3, 17, 0, 0, 0, time.UTC), conflict.CandidateWindow.End)
	assert.Equal(t, time.Date(2025, time.March, 3, 14, 0, 0, 0, time.UTC), conflict.ExistingWindow.Start)
	assert.Equal(t, time.Date(2025, time.March, 3, 16, 0, 0, 0, time.UTC), conflict.ExistingWindow.End)
	assert.Equal(t, "show conflicts with 'X' on 2025-03-03 from 02:00 PM to 04:00 PM", conflict.Error())
}

func TestCheckTouchingWindowsDoNotConflict(t *testing.T) {
	t.Parallel()
	x := screening("X", 14, 0, 120, 1, 5)
	y := screening("Y", 16, 0, 90, 3, 7)

	assert.NoError(t, CheckConflict(y, []Screening{x}))

	before := screening("W", 12, 0, 120, 1, 5)
	assert.NoError(t, CheckConflict(before, []Screening{x}))
}

func TestCheckDisjointDateRanges(t *testing.T) {
	t.Parallel()
	x := screening("X", 14, 0, 120, 1, 5)
	y := screening("Y", 14, 0, 120, 6, 9)

	assert.NoError(t, CheckConflict(y, []Screening{x}))
	assert.NoError(t, CheckConflict(x, []Screening{y}))
}

func TestCheckSymmetric(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		a, b Screening
		want bool
	}{
		{"overlap", screening("A", 10, 0, 120, 1, 3), screening("B", 11, 0, 60, 1, 3), true},
		{"contained", screening("A", 10, 0, 240, 2, 2), screening("B", 11, 0, 60, 1, 3), true},
		{"touching", screening("A", 10, 0, 60, 1, 3), screening("B", 11, 0, 60, 1, 3), false},
		{"same start", screening("A", 18, 45, 60, 1, 1), screening("B", 18, 45, 95, 1, 1), true},
		{"apart", screening("A", 9, 0, 60, 1, 3), screening("B", 20, 0, 60, 1, 3), false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ab := CheckConflict(tc.a, []Screening{tc.b})
			ba := CheckConflict(tc.b, []Screening{tc.a})
			assert.Equal(t, tc.want, ab != nil)
			assert.Equal(t, tc.want, ba != nil)
		})
	}
}

func TestCheckSingleDay(t *testing.T) {
	t.Parallel()
	x := screening("X", 14, 0, 120, 4, 4)
	y := screening("Y", 15, 0, 60, 3, 3)
	z := screening("Z", 15, 0, 60, 4, 4)

	assert.NoError(t, CheckConflict(y, []Screening{x}))
	assert.Error(t, CheckConflict(z, []Screening{x}))
}

func TestCheckReportsFirstDateThenInputOrder(t *testing.T) {
	t.Parallel()
	late := screening("Late", 20, 0, 60, 2, 9)
	early := screening("Early", 20, 30, 60, 4, 9)
	second := screening("Second", 20, 15, 60, 2, 9)
	candidate := screening("Candidate", 20, 0, 90, 1, 9)

	err := CheckConflict(candidate, []Screening{early, late, second})
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, day(2), conflict.Date)
	assert.Equal(t, "Late", conflict.Existing.Title)
}

func TestCheckSkipsOwnID(t *testing.T) {
	t.Parallel()
	stored := screening("X", 14, 0, 120, 1, 5)
	edited := stored
	edited.TimeOfDay = TimeOfDay{Hour: 15, Minute: 0}

	assert.NoError(t, CheckConflict(edited, []Screening{stored}))
}

func TestCheckMidnightRollover(t *testing.T) {
	t.Parallel()
	// 23:00 + 180 minutes runs until 02:00 the next day.
	night := screening("Night", 23, 0, 180, 1, 1)
	morning := screening("Morning", 1, 0, 90, 2, 2)

	t.Run("default compares same-day anchors only", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, NewChecker().Check(morning, []Screening{night}))
		assert.NoError(t, NewChecker().Check(night, []Screening{morning}))
	})

	t.Run("strict mode catches the spill", func(t *testing.T) {
		t.Parallel()
		checker := NewChecker(WithMidnightRollover(true))

		err := checker.Check(morning, []Screening{night})
		var conflict *ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, day(2), conflict.Date)
		assert.Equal(t, day(1), Date(conflict.ExistingWindow.Start))

		err = checker.Check(night, []Screening{morning})
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, day(1), conflict.Date)
	})

	t.Run("strict mode keeps touching boundary exclusive", func(t *testing.T) {
		t.Parallel()
		dawn := screening("Dawn", 2, 0, 60, 2, 2)
		assert.NoError(t, NewChecker(WithMidnightRollover(true)).Check(dawn, []Screening{night}))
	})
}

func TestCheckWithLocation(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("WAT", 3600)
	x := screening("X", 14, 0, 120, 1, 1)
	y := screening("Y", 15, 0, 30, 1, 1)

	err := NewChecker(WithLocation(loc)).Check(y, []Screening{x})
	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, loc, conflict.CandidateWindow.Start.Location())
}

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()
	tod, err := ParseTimeOfDay("09:05")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay{Hour: 9, Minute: 5}, tod)
	assert.Equal(t, "09:05", tod.String())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
}

func TestWindowContains(t *testing.T) {
	t.Parallel()
	w := screening("X", 14, 0, 60, 1, 1).OccurrenceOn(day(1), time.UTC)

	assert.True(t, w.Contains(w.Start))
	assert.False(t, w.Contains(w.End))
	assert.Equal(t, "[14:00,15:00)", w.String())
}
