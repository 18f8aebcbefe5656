// Package energy liefert den typischen Tagesverlauf von Solarproduktion,
// Verbrauch und Batteriefluss eines Haushalts mit Speicher.
package energy

import (
	"fmt"
	"math"
)

// Hours ist die Anzahl Stunden einer Tagesreihe.
const Hours = 24

// BatteryLimit begrenzt Lade- und Entladefluss.
const BatteryLimit = 50

const solarPeakHour = 12

// consumption ist das typische Verbrauchsprofil mit Spitzen am Morgen und Abend.
var consumption = [Hours]float64{
	30, 25, 20, 15, 15, 20, 45, 60, 50, 40, 35, 35,
	40, 35, 35, 40, 45, 60, 70, 65, 55, 45, 40, 35,
}

// TimeOfDay ist die Tageszeit einer Stunde.
type TimeOfDay string

const (
	Morning TimeOfDay = "Morgen"
	Day     TimeOfDay = "Tag"
	Evening TimeOfDay = "Abend"
	Night   TimeOfDay = "Nacht"
)

// Point ist der Energiefluss einer Stunde in Prozent der Spitzenleistung.
// Battery ist positiv beim Laden und negativ beim Entladen.
type Point struct {
	Hour        int       `json:"hour"`
	Label       string    `json:"label"`
	Solar       float64   `json:"solar"`
	Consumption float64   `json:"consumption"`
	Battery     float64   `json:"battery"`
	TimeOfDay   TimeOfDay `json:"time_of_day"`
	Dark        bool      `json:"dark"`
}

// Solar gibt die Produktion zur Stunde hour zurück, mit Spitze um 12 Uhr.
func Solar(hour int) float64 {
	if hour < 6 || hour > 20 {
		return 0
	}
	d := float64(hour - solarPeakHour)
	return math.Max(0, 100-2*d*d)
}

// Consumption gibt den Verbrauch zur Stunde hour zurück.
func Consumption(hour int) float64 {
	if hour < 0 || hour >= Hours {
		return 0
	}
	return consumption[hour]
}

// Battery ist der Überschuss bzw. das Defizit, begrenzt auf ±BatteryLimit.
func Battery(hour int) float64 {
	return math.Max(-BatteryLimit, math.Min(BatteryLimit, Solar(hour)-Consumption(hour)))
}

// PeriodOf ordnet eine Stunde einer Tageszeit zu.
func PeriodOf(hour int) TimeOfDay {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Day
	case hour >= 18 && hour < 22:
		return Evening
	default:
		return Night
	}
}

// IsDark meldet, ob es zur Stunde hour dunkel ist.
func IsDark(hour int) bool {
	return hour >= 20 || hour < 6
}

// Series gibt die 24 Stundenwerte ab Mitternacht zurück.
func Series() []Point {
	points := make([]Point, 0, Hours)
	for h := 0; h < Hours; h++ {
		points = append(points, Point{
			Hour:        h,
			Label:       fmt.Sprintf("%02d:00", h),
			Solar:       Solar(h),
			Consumption: Consumption(h),
			Battery:     Battery(h),
			TimeOfDay:   PeriodOf(h),
			Dark:        IsDark(h),
		})
	}
	return points
}
