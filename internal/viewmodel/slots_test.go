package viewmodel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reservacitas/frontdesk/internal/backend"
	"github.com/reservacitas/frontdesk/internal/viewmodel"
)

// noon on Monday 2025-10-06
var now = time.Date(2025, 10, 6, 12, 0, 0, 0, time.UTC)

func TestIsPastTime(t *testing.T) {
	cases := []struct {
		name string
		date string
		hhmm string
		want bool
	}{
		{"earlier day", "2025-10-05", "18:00", true},
		{"later day", "2025-10-07", "09:00", false},
		{"same day earlier", "2025-10-06", "11:59", true},
		{"same day later", "2025-10-06", "12:01", false},
		{"exactly now counts as past", "2025-10-06", "12:00", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, viewmodel.IsPastTime(tc.date, tc.hhmm, now))
		})
	}
}

func slot(id int64, date, start string, available bool) backend.TimeSlot {
	return backend.TimeSlot{
		ID:          id,
		AdvisorID:   1,
		Date:        date,
		StartTime:   start,
		EndTime:     start,
		IsAvailable: available,
	}
}

func TestAvailableDates_DistinctAndSorted(t *testing.T) {
	slots := []backend.TimeSlot{
		slot(1, "2025-10-08", "09:00", true),
		slot(2, "2025-10-07", "09:00", true),
		slot(3, "2025-10-08", "10:00", true),
		slot(4, "2025-10-07", "11:00", false),
	}

	assert.Equal(t, []string{"2025-10-07", "2025-10-08"}, viewmodel.AvailableDates(slots))
}

func TestGroupSlots_GroupsByStartTimeInClockOrder(t *testing.T) {
	slots := []backend.TimeSlot{
		slot(1, "2025-10-07", "14:00", true),
		slot(2, "2025-10-07", "09:00", true),
		slot(3, "2025-10-07", "09:00", false),
		slot(4, "2025-10-08", "10:00", true), // other day, excluded
	}

	options := viewmodel.GroupSlots(slots, "2025-10-07", now)
	require.Len(t, options, 2)

	assert.Equal(t, "09:00", options[0].Time)
	assert.Equal(t, "9:00 AM", options[0].Display)
	assert.Equal(t, int64(2), options[0].Slot.ID)
	assert.False(t, options[0].Disabled)

	assert.Equal(t, "14:00", options[1].Time)
	assert.Equal(t, "2:00 PM", options[1].Display)
}

func TestGroupSlots_DisablesWhenNoSlotAvailable(t *testing.T) {
	slots := []backend.TimeSlot{
		slot(1, "2025-10-07", "09:00", false),
		slot(2, "2025-10-07", "09:00", false),
	}

	options := viewmodel.GroupSlots(slots, "2025-10-07", now)
	require.Len(t, options, 1)
	assert.False(t, options[0].Passed)
	assert.True(t, options[0].Disabled)
}

func TestGroupSlots_DisablesPastTimesOnCurrentDay(t *testing.T) {
	slots := []backend.TimeSlot{
		slot(1, "2025-10-06", "09:00", true),
		slot(2, "2025-10-06", "16:00", true),
	}

	options := viewmodel.GroupSlots(slots, "2025-10-06", now)
	require.Len(t, options, 2)

	assert.True(t, options[0].Passed)
	assert.True(t, options[0].Disabled)
	assert.False(t, options[1].Passed)
	assert.False(t, options[1].Disabled)
}
