package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in   string
		want Weekday
	}{
		{"monday", Monday},
		{"Lunes", Monday},
		{"  TUESDAY ", Tuesday},
		{"miércoles", Wednesday},
		{"miercoles", Wednesday},
		{"jueves", Thursday},
		{"fri", Friday},
		{"Sábado", Saturday},
		{"domingo", Sunday},
		{"Среда", Wednesday},
		{"пт", Friday},
	}
	for _, tt := range tests {
		got, err := ParseWeekday(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseWeekday("someday")
	assert.Error(t, err)
}

func TestWeekdayConversions(t *testing.T) {
	// 2024-05-06 понедельник
	monday := time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)
	for i, d := range Weekdays {
		date := monday.AddDate(0, 0, i)
		assert.Equal(t, d, WeekdayOf(date))
		assert.Equal(t, date.Weekday(), d.Time())
		assert.Equal(t, i, d.Index())
	}
	assert.Equal(t, "sunday", Sunday.String())
	assert.Equal(t, "Среда", Wednesday.Label())
	assert.False(t, Weekday(9).Valid())
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, Clock(8*60+30), c)
	assert.Equal(t, "08:30", c.String())
	assert.Equal(t, "08:30:00", c.WireString())

	c, err = ParseClock("21:05:00")
	require.NoError(t, err)
	assert.Equal(t, "21:05", c.String())

	c, err = ParseClock("24:00")
	require.NoError(t, err)
	assert.Equal(t, Clock(minutesPerDay), c)

	for _, bad := range []string{"", "8", "25:00", "10:60", "aa:bb", "10:00:61", "24:30"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestClockOrderingMatchesStrings(t *testing.T) {
	a, b := MustClock("09:00:00"), MustClock("10:30:00")
	assert.Less(t, a, b)
	assert.Less(t, a.WireString(), b.WireString())
	assert.Equal(t, MustClock("10:00"), a.Add(60))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-05-06T00:00:00.000Z", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-06", FormatDate(d))

	_, err = ParseDate("06/05/2024", time.UTC)
	assert.Error(t, err)

	assert.True(t, SameDate(d, d.Add(23*time.Hour)))
	assert.False(t, SameDate(d, d.Add(25*time.Hour)))
}

func TestTimeSlotHelpers(t *testing.T) {
	date := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	slot := TimeSlot{Date: date, Start: MustClock("08:00"), End: MustClock("09:00"), Status: SlotStatusAvailable}

	assert.False(t, slot.Persisted())
	assert.True(t, slot.Contains(MustClock("08:00")))
	assert.True(t, slot.Contains(MustClock("08:59")))
	assert.False(t, slot.Contains(MustClock("09:00")))
	assert.Equal(t, SlotKey{Date: "2024-05-06", Start: MustClock("08:00"), End: MustClock("09:00")}, slot.Key())

	slot.ID = Int64Ptr(3)
	assert.Equal(t, "#3 2024-05-06 08:00-09:00 available", slot.String())
}

func TestWeeklyTemplate(t *testing.T) {
	tpl := NewWeeklyTemplate()
	for _, d := range Weekdays {
		e := tpl.Entry(d)
		assert.Equal(t, d, e.Day)
		assert.False(t, e.Closed)
		assert.False(t, e.Complete())
	}

	tpl.Set(Monday, MustClock("08:00"), MustClock("10:00"))
	tpl.Close(Sunday)
	assert.True(t, tpl.Entry(Monday).Complete())
	assert.True(t, tpl.Entry(Sunday).Closed)
}

func TestParseSlotStatus(t *testing.T) {
	s, err := ParseSlotStatus("booked")
	require.NoError(t, err)
	assert.Equal(t, SlotStatusBooked, s)

	_, err = ParseSlotStatus("pending")
	assert.Error(t, err)
}
