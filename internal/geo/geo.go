package geo

import (
	"math"
	"strings"

	"modual-backend/internal/domain"
)

const (
	// EarthRadiusKm ist der mittlere Erdradius der Haversine-Formel.
	EarthRadiusKm = 6371.0
	// RadiusKm ist der feste Suchradius um den PLZ-Ursprung.
	RadiusKm = 30.0

	defaultZoom = 8
	originZoom  = 10
)

// SwitzerlandCenter ist der Kartenmittelpunkt ohne geografischen Filter.
var SwitzerlandCenter = domain.Coordinates{Lat: 46.8182, Lng: 8.2275}

// DistanceKm berechnet die Grosskreisdistanz zwischen a und b in Kilometern.
func DistanceKm(a, b domain.Coordinates) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// PostalCodes bildet Postleitzahlen auf Koordinaten ab. Die Tabelle deckt
// nicht jede PLZ ab.
type PostalCodes map[string]domain.Coordinates

// Resolve sucht den Ursprung zu code. Leere oder unbekannte PLZ liefern false.
func (p PostalCodes) Resolve(code string) (domain.Coordinates, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Coordinates{}, false
	}
	c, ok := p[code]
	return c, ok
}

// Filter ist der aktuelle Filterzustand der Installateursuche.
type Filter struct {
	PostalCode    string
	Search        string
	CertifiedOnly bool
}

// RadiusOverlay beschreibt den Umkreis, den die Karte um den Ursprung zeichnet.
type RadiusOverlay struct {
	Center domain.Coordinates `json:"center"`
	Meters float64            `json:"meters"`
}

// MapView ist der Kartenausschnitt, der zum Filterergebnis gehört.
type MapView struct {
	Center domain.Coordinates `json:"center"`
	Zoom   int                `json:"zoom"`
	Radius *RadiusOverlay     `json:"radius,omitempty"`
}

// Result ist die gefilterte, in Originalreihenfolge belassene Teilmenge.
type Result struct {
	Installers []domain.Installer  `json:"installers"`
	Origin     *domain.Coordinates `json:"origin,omitempty"`
	Map        MapView             `json:"map"`
}

// Apply wendet PLZ-Umkreis, Freitext und Zertifizierung UND-verknüpft an.
// Nicht auflösbare Eingaben heben das jeweilige Kriterium auf. Der Suchtext
// wird nur klein geschrieben, Leerzeichen bleiben Teil der Suche.
func Apply(installers []domain.Installer, postal PostalCodes, f Filter) Result {
	res := Result{
		Installers: make([]domain.Installer, 0, len(installers)),
		Map:        MapView{Center: SwitzerlandCenter, Zoom: defaultZoom},
	}

	origin, hasOrigin := postal.Resolve(f.PostalCode)
	if hasOrigin {
		res.Origin = &origin
		res.Map = MapView{
			Center: origin,
			Zoom:   originZoom,
			Radius: &RadiusOverlay{Center: origin, Meters: RadiusKm * 1000},
		}
	}

	search := strings.ToLower(f.Search)
	for _, inst := range installers {
		if hasOrigin && DistanceKm(origin, inst.Location()) > RadiusKm {
			continue
		}
		if search != "" && !matchesText(inst, search) {
			continue
		}
		if f.CertifiedOnly && !inst.Certified {
			continue
		}
		res.Installers = append(res.Installers, inst)
	}
	return res
}

func matchesText(inst domain.Installer, lowered string) bool {
	return strings.Contains(strings.ToLower(inst.Name), lowered) ||
		strings.Contains(strings.ToLower(inst.City), lowered) ||
		strings.Contains(strings.ToLower(inst.Contact), lowered)
}
