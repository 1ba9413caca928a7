package booking

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotAt(t *testing.T, startHour, endHour int) (time.Time, time.Time) {
	t.Helper()
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.Local)
	return day.Add(time.Duration(startHour) * time.Hour), day.Add(time.Duration(endHour) * time.Hour)
}

func TestOverlaps(t *testing.T) {
	start, end := slotAt(t, 10, 12)
	b := &Booking{StartAt: start, EndAt: end}

	tests := []struct {
		name      string
		startHour int
		endHour   int
		want      bool
	}{
		{"identical slot", 10, 12, true},
		{"contained inside", 10, 11, true},
		{"contains existing", 9, 13, true},
		{"overlaps start", 9, 11, true},
		{"overlaps end", 11, 13, true},
		{"ends exactly at start", 8, 10, false},
		{"starts exactly at end", 12, 14, false},
		{"well before", 6, 8, false},
		{"well after", 14, 16, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e := slotAt(t, tt.startHour, tt.endHour)
			assert.Equal(t, tt.want, b.Overlaps(s, e))
		})
	}
}

// Overlap must be symmetric: whatever order two bookings are compared
// in, the answer is the same.
func TestOverlapsSymmetry(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.Local)

	for i := 0; i < 500; i++ {
		s1 := rng.Intn(22)
		e1 := s1 + 1 + rng.Intn(23-s1)
		s2 := rng.Intn(22)
		e2 := s2 + 1 + rng.Intn(23-s2)

		a := &Booking{StartAt: day.Add(time.Duration(s1) * time.Hour), EndAt: day.Add(time.Duration(e1) * time.Hour)}
		b := &Booking{StartAt: day.Add(time.Duration(s2) * time.Hour), EndAt: day.Add(time.Duration(e2) * time.Hour)}

		got := a.Overlaps(b.StartAt, b.EndAt)
		require.Equal(t, got, b.Overlaps(a.StartAt, a.EndAt),
			"asymmetric overlap for [%d,%d) vs [%d,%d)", s1, e1, s2, e2)

		// Cross-check against the arithmetic definition.
		want := s2 < e1 && s1 < e2
		require.Equal(t, want, got, "wrong overlap for [%d,%d) vs [%d,%d)", s1, e1, s2, e2)
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		b := &Booking{Status: tt.from}
		assert.Equal(t, tt.want, b.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestIsActive(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsActive())
	assert.True(t, (&Booking{Status: StatusConfirmed}).IsActive())
	assert.False(t, (&Booking{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Booking{Status: StatusCompleted}).IsActive())
}

func TestParseSlot(t *testing.T) {
	fieldID := "6ba7b810-9dad-41d1-80b4-00c04fd430c8"

	t.Run("valid slot", func(t *testing.T) {
		slot, err := ParseSlot(fieldID, "2026-09-07", "18:00", "20:00")
		require.NoError(t, err)
		assert.Equal(t, 18, slot.StartAt.Hour())
		assert.Equal(t, 20, slot.EndAt.Hour())
		assert.Equal(t, slot.StartAt.YearDay(), slot.EndAt.YearDay())
	})

	t.Run("midnight end rolls to next day", func(t *testing.T) {
		slot, err := ParseSlot(fieldID, "2026-09-07", "22:00", "00:00")
		require.NoError(t, err)
		assert.True(t, slot.StartAt.Before(slot.EndAt))
		assert.Equal(t, 8, slot.EndAt.Day())
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := ParseSlot(fieldID, "2026-09-07", "20:00", "18:00")
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("zero length slot", func(t *testing.T) {
		_, err := ParseSlot(fieldID, "2026-09-07", "18:00", "18:00")
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("bad field id", func(t *testing.T) {
		_, err := ParseSlot("not-a-uuid", "2026-09-07", "18:00", "20:00")
		assert.Error(t, err)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := ParseSlot(fieldID, "07-09-2026", "18:00", "20:00")
		assert.Error(t, err)
	})
}
