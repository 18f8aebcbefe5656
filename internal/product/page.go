package product

import (
	"fmt"
	"sort"

	"modual-backend/internal/domain"
)

const missing = "–"

// Standardwerte für leere Tabellenzellen.
const (
	DefaultWarrantyYears   = "10"
	DefaultEfficiency      = ">95%"
	DefaultCycles          = ">6000"
	DefaultCertifications  = "CE, Swiss Made"
	DefaultProtectionClass = "IP54"
	DefaultSuitableFor     = "Einfamilienhäuser"
)

// SpecItem ist eine Zeile der technischen Daten.
type SpecItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SpecGroup fasst technische Daten unter einer Überschrift zusammen.
type SpecGroup struct {
	Title string     `json:"title"`
	Items []SpecItem `json:"items"`
}

// ComparisonColumn ist eine Spalte der Vergleichstabelle.
type ComparisonColumn struct {
	Name        string `json:"name"`
	Capacity    string `json:"capacity"`
	SuitableFor string `json:"suitable_for"`
	MaxPower    string `json:"max_power"`
	Autonomy    string `json:"autonomy"`
	Price       string `json:"price"`
	Active      bool   `json:"active"`
}

// Stats sind die drei Kennzahlen im Kopf der Produktseite.
type Stats struct {
	Capacity string `json:"capacity"`
	Power    string `json:"power"`
	Warranty string `json:"warranty"`
}

// Page ist die aufbereitete Produktseite.
type Page struct {
	Name            string             `json:"name"`
	Type            string             `json:"type"`
	Badge           string             `json:"badge"`
	Title           string             `json:"title"`
	MetaDescription string             `json:"meta_description"`
	Tagline         string             `json:"tagline"`
	Intro           string             `json:"intro"`
	SuitableFor     string             `json:"suitable_for"`
	Stats           Stats              `json:"stats"`
	Specs           []SpecGroup        `json:"specs"`
	Comparison      []ComparisonColumn `json:"comparison"`
	Product         domain.Product     `json:"product"`
}

// NewPage wählt ein Produkt per identifier und baut seine Seite.
func NewPage(products []domain.Product, identifier string) (Page, error) {
	p, err := Select(products, identifier)
	if err != nil {
		return Page{}, err
	}
	dc := p.Type == "DC"

	page := Page{
		Name:            p.Name,
		Type:            p.Type,
		Badge:           p.Type + "-Speicher",
		Title:           p.Name + " - modual",
		MetaDescription: metaDescription(p, dc),
		Tagline:         Tagline(p),
		SuitableFor:     p.SuitableFor.Or(DefaultSuitableFor),
		Stats: Stats{
			Capacity: unit(p.CapacityKWh, " kWh"),
			Power:    unit(p.MaxChargePowerKW, " kW"),
			Warranty: warranty(p) + " Jahre",
		},
		Specs:      specs(p),
		Comparison: Comparison(products, p),
		Product:    p,
	}
	if dc {
		page.Intro = fmt.Sprintf("Der modual %s ist die ideale Lösung für Einfamilienhäuser mit Photovoltaik-Anlagen.", p.Name)
	} else {
		page.Intro = fmt.Sprintf("Der modual %s ist eine Plug & Play Komplettlösung mit integriertem Wechselrichter.", p.Name)
	}
	return page, nil
}

func metaDescription(p domain.Product, dc bool) string {
	kind := "AC-Batteriespeicher mit Wechselrichter"
	if dc {
		kind = "DC-Batteriespeicher ohne Wechselrichter"
	}
	return fmt.Sprintf("modual %s - %s - %s kWh Kapazität, %s kW Leistung. Swiss Made Qualität.",
		p.Name, kind, orMissing(p.CapacityKWh), orMissing(p.MaxChargePowerKW))
}

// Comparison listet die Produkte vom Typ des gewählten nach aufsteigender Kapazität.
func Comparison(products []domain.Product, selected domain.Product) []ComparisonColumn {
	same := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Type == selected.Type {
			same = append(same, p)
		}
	}
	sort.SliceStable(same, func(i, j int) bool {
		return same[i].CapacityKWh.Or(0) < same[j].CapacityKWh.Or(0)
	})

	cols := make([]ComparisonColumn, 0, len(same))
	for _, p := range same {
		cols = append(cols, ComparisonColumn{
			Name:        p.Name,
			Capacity:    unit(p.CapacityKWh, " kWh"),
			SuitableFor: SuitableFor(p),
			MaxPower:    unit(p.MaxChargePowerKW, " kW"),
			Autonomy:    Autonomy(p),
			Price:       FormatPrice(p.PriceCHF),
			Active:      p.Name == selected.Name,
		})
	}
	return cols
}

func specs(p domain.Product) []SpecGroup {
	efficiency := DefaultEfficiency
	if p.EfficiencyPercent.Valid && p.EfficiencyPercent.Value != 0 {
		efficiency = p.EfficiencyPercent.String() + "%"
	}
	cycles := DefaultCycles
	if p.Cycles.Valid && p.Cycles.Value != 0 {
		cycles = ">" + p.Cycles.String()
	}

	return []SpecGroup{
		{Title: "Allgemein", Items: []SpecItem{
			{"Typ", p.Type + "-Batteriespeicher"},
			{"Serie", p.Series.Or(missing)},
			{"Kapazität", unit(p.CapacityKWh, " kWh")},
			{"Nennspannung", unit(p.NominalVoltageV, " V DC")},
			{"Technologie", p.BatteryTechnology.Or(missing)},
		}},
		{Title: "Leistung", Items: []SpecItem{
			{"Max. Ladeleistung", unit(p.MaxChargePowerKW, " kW")},
			{"Max. Entladeleistung", unit(p.MaxDischargePowerKW, " kW")},
			{"Wirkungsgrad", efficiency},
			{"Betriebstemp.", fmt.Sprintf("%s°C bis +%s°C", orMissing(p.OperatingTempMin), orMissing(p.OperatingTempMax))},
		}},
		{Title: "Abmessungen", Items: []SpecItem{
			{"Höhe", unit(p.HeightMM, " mm")},
			{"Breite", unit(p.WidthMM, " mm")},
			{"Tiefe", unit(p.DepthMM, " mm")},
			{"Gewicht", "~" + unit(p.WeightKG, " kg")},
		}},
		{Title: "Garantie", Items: []SpecItem{
			{"Produktgarantie", warranty(p) + " Jahre"},
			{"Zyklen", cycles},
			{"Zertifizierung", p.Certifications.Or(DefaultCertifications)},
			{"Schutzklasse", p.ProtectionClass.Or(DefaultProtectionClass)},
		}},
	}
}

func warranty(p domain.Product) string {
	if p.WarrantyYears.Valid && p.WarrantyYears.Value != 0 {
		return p.WarrantyYears.String()
	}
	return DefaultWarrantyYears
}

func orMissing(n domain.Number) string {
	if !n.Valid {
		return missing
	}
	return n.String()
}

func unit(n domain.Number, suffix string) string {
	if !n.Valid {
		return missing
	}
	return n.String() + suffix
}
