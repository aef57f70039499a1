package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

func openDay(start, end string, interval int) DayWindow {
	return DayWindow{
		IsOpen:          true,
		StartTime:       start,
		EndTime:         end,
		IntervalMinutes: interval,
	}
}

func times(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Time
	}
	return out
}

func TestBuildSlots_Grid(t *testing.T) {
	early := testDate // nada no passado

	slots := BuildSlots(openDay("09:00", "18:00", 30), testDate, nil, early)

	require.Len(t, slots, 19)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "09:30", slots[1].Time)
	assert.Equal(t, "18:00", slots[18].Time)

	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestBuildSlots_SingleSlotWhenStartEqualsEnd(t *testing.T) {
	slots := BuildSlots(openDay("10:00", "10:00", 30), testDate, nil, testDate)

	require.Len(t, slots, 1)
	assert.Equal(t, "10:00", slots[0].Time)
	assert.True(t, slots[0].Available)
}

func TestBuildSlots_UnevenInterval(t *testing.T) {
	// 25min não divide a janela: o último slot que cabe é 09:50
	slots := BuildSlots(openDay("09:00", "10:10", 25), testDate, nil, testDate)

	assert.Equal(t, []string{"09:00", "09:25", "09:50"}, times(slots))
}

func TestBuildSlots_OccupiedAndPast(t *testing.T) {
	occupied := map[string]bool{"09:30": true}
	now := time.Date(2026, 9, 15, 9, 15, 0, 0, time.UTC)

	slots := BuildSlots(openDay("09:00", "10:00", 30), testDate, occupied, now)

	require.Len(t, slots, 3)
	assert.False(t, slots[0].Available, "09:00 ficou no passado")
	assert.False(t, slots[1].Available, "09:30 está ocupado")
	assert.True(t, slots[2].Available)
}

func TestBuildSlots_EmptyCases(t *testing.T) {
	cases := map[string]DayWindow{
		"fechado":               {IsOpen: false, StartTime: "09:00", EndTime: "18:00", IntervalMinutes: 30},
		"intervalo zero":        openDay("09:00", "18:00", 0),
		"intervalo negativo":    openDay("09:00", "18:00", -15),
		"abertura malformada":   openDay("9h00", "18:00", 30),
		"fechamento malformado": openDay("09:00", "", 30),
		"fecha antes de abrir":  openDay("18:00", "09:00", 30),
	}

	for name, day := range cases {
		t.Run(name, func(t *testing.T) {
			slots := BuildSlots(day, testDate, nil, testDate)
			assert.NotNil(t, slots)
			assert.Empty(t, slots)
		})
	}
}

func TestBuildSlots_UsesDateLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, loc)

	// now em UTC equivale a 09:10 BRT: o slot 09:00 já passou
	now := time.Date(2026, 9, 15, 12, 10, 0, 0, time.UTC)

	slots := BuildSlots(openDay("09:00", "10:00", 30), date, nil, now)

	require.Len(t, slots, 3)
	assert.False(t, slots[0].Available)
	assert.True(t, slots[1].Available)
}
