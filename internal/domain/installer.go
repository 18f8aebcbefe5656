package domain

// Coordinates ist ein Punkt in Grad (WGS84).
type Coordinates struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Installer repräsentiert einen Installationspartner aus dem Verzeichnis.
type Installer struct {
	ID            int     `json:"id" validate:"gt=0"`
	Name          string  `json:"name" validate:"required"`
	Contact       string  `json:"contact" validate:"required"`
	Address       string  `json:"address"`
	PostalCode    string  `json:"plz" validate:"required,numeric"`
	City          string  `json:"city" validate:"required"`
	Canton        string  `json:"kanton" validate:"len=2"`
	Phone         string  `json:"phone"`
	Email         string  `json:"email" validate:"omitempty,email"`
	Website       string  `json:"website"`
	Certified     bool    `json:"certified"`
	Installations int     `json:"installations" validate:"gte=0"`
	Rating        float64 `json:"rating" validate:"gte=0,lte=5"`
	Lat           float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng           float64 `json:"lng" validate:"gte=-180,lte=180"`
	Description   string  `json:"description"`
}

// Location gibt den Standort des Installateurs zurück.
func (i Installer) Location() Coordinates {
	return Coordinates{Lat: i.Lat, Lng: i.Lng}
}
