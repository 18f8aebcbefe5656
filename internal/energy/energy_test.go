package energy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolar(t *testing.T) {
	tests := []struct {
		hour int
		want float64
	}{
		{0, 0},
		{5, 0},
		{6, 28},
		{10, 92},
		{12, 100},
		{14, 92},
		{18, 28},
		{19, 2},
		{20, 0},
		{21, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Solar(tt.hour), "stunde %d", tt.hour)
	}
}

func TestBattery_Begrenzt(t *testing.T) {
	// 12 Uhr: 100 - 40 = 60, begrenzt auf 50.
	assert.Equal(t, 50.0, Battery(12))
	// 19 Uhr: 2 - 65 = -63, begrenzt auf -50.
	assert.Equal(t, -50.0, Battery(19))
	// 8 Uhr: 68 - 50 = 18.
	assert.Equal(t, 18.0, Battery(8))
	assert.Equal(t, -30.0, Battery(0))
}

func TestPeriodOf(t *testing.T) {
	want := map[int]TimeOfDay{
		0: Night, 5: Night, 6: Morning, 11: Morning, 12: Day, 17: Day,
		18: Evening, 21: Evening, 22: Night, 23: Night,
	}
	for h, p := range want {
		assert.Equal(t, p, PeriodOf(h), "stunde %d", h)
	}
}

func TestIsDark(t *testing.T) {
	assert.True(t, IsDark(0))
	assert.True(t, IsDark(5))
	assert.False(t, IsDark(6))
	assert.False(t, IsDark(19))
	assert.True(t, IsDark(20))
	assert.True(t, IsDark(23))
}

func TestSeries(t *testing.T) {
	s := Series()

	require.Len(t, s, Hours)
	for h, p := range s {
		assert.Equal(t, h, p.Hour)
		assert.GreaterOrEqual(t, p.Solar, 0.0)
		assert.LessOrEqual(t, p.Battery, float64(BatteryLimit))
		assert.GreaterOrEqual(t, p.Battery, float64(-BatteryLimit))
	}
	assert.Equal(t, "07:00", s[7].Label)
	assert.Equal(t, 60.0, s[7].Consumption)
	assert.Equal(t, Evening, s[20].TimeOfDay)
	assert.True(t, s[20].Dark)
}
