package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Product ist ein Datensatz aus der tabellenbasierten Produkt-API.
type Product struct {
	Name                string `json:"product_name" validate:"required"`
	Type                string `json:"product_type" validate:"oneof=DC AC"`
	Series              Text   `json:"product_series"`
	CapacityKWh         Number `json:"capacity_kwh"`
	NominalVoltageV     Number `json:"nominal_voltage_v"`
	BatteryTechnology   Text   `json:"battery_technology"`
	MaxChargePowerKW    Number `json:"max_charge_power_kw"`
	MaxDischargePowerKW Number `json:"max_discharge_power_kw"`
	EfficiencyPercent   Number `json:"efficiency_percent"`
	OperatingTempMin    Number `json:"operating_temp_min"`
	OperatingTempMax    Number `json:"operating_temp_max"`
	HeightMM            Number `json:"height_mm"`
	WidthMM             Number `json:"width_mm"`
	DepthMM             Number `json:"depth_mm"`
	WeightKG            Number `json:"weight_kg"`
	WarrantyYears       Number `json:"warranty_years"`
	Cycles              Number `json:"cycles"`
	Certifications      Text   `json:"certifications"`
	ProtectionClass     Text   `json:"protection_class"`
	SuitableFor         Text   `json:"suitable_for"`
	AutonomyPercent     Number `json:"autonomy_percent"`
	PriceCHF            Number `json:"price_chf"`
}

// Number ist ein optionaler Zahlenwert. Die Tabelle liefert Zahlen mal als
// JSON-Zahl, mal als Zeichenkette ("11.5", "11,5") und leere Zellen als "".
type Number struct {
	Value float64
	Valid bool
}

// Num erzeugt eine gültige Number.
func Num(v float64) Number {
	return Number{Value: v, Valid: true}
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	*n = Number{}
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
		if s == "" {
			return nil
		}
		// Nicht numerische Zellen ("auf Anfrage") gelten als leer.
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			*n = Num(f)
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Num(f)
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// String formatiert die Zahl ohne überflüssige Nachkommastellen, leer wenn ungültig.
func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Value, 'f', -1, 64)
}

// Or liefert den Wert oder fallback, wenn die Zahl fehlt.
func (n Number) Or(fallback float64) float64 {
	if !n.Valid {
		return fallback
	}
	return n.Value
}

// Text ist ein Textfeld, das die Tabelle auch als Zahl liefern kann.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*t = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
	default:
		*t = Text(b)
	}
	return nil
}

// Or liefert den Text oder fallback, wenn er leer ist.
func (t Text) Or(fallback string) string {
	if t == "" {
		return fallback
	}
	return string(t)
}
