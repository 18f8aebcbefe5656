package product

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"modual-backend/internal/domain"
)

// Decoder prüft die Antwort der Produkt-API.
type Decoder struct {
	logger *zap.Logger
}

func NewDecoder(logger *zap.Logger) *Decoder {
	return &Decoder{logger: logger}
}

// Decode parst raw zu einer Produktliste. Die Antwort muss ein JSON-Array
// sein. Ungültige Datensätze werden übersprungen; bleibt aus einer nicht
// leeren Liste kein Produkt übrig, gilt die Antwort als ungültig.
func (d *Decoder) Decode(raw []byte) ([]domain.Product, error) {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("produkte: %v: %w", err, domain.ErrMalformedResponse)
		}
		return nil, fmt.Errorf("produkte: antwort ist keine liste: %w", domain.ErrInvalidShape)
	}
	if records == nil {
		return nil, fmt.Errorf("produkte: antwort ist null: %w", domain.ErrInvalidShape)
	}

	products := make([]domain.Product, 0, len(records))
	for i, rec := range records {
		var p domain.Product
		if err := json.Unmarshal(rec, &p); err != nil {
			d.logger.Warn("produkt übersprungen", zap.Int("index", i), zap.Error(err))
			continue
		}
		p.Name = strings.TrimSpace(p.Name)
		p.Type = strings.ToUpper(strings.TrimSpace(p.Type))
		if err := domain.Validate(p); err != nil {
			d.logger.Warn("produkt übersprungen", zap.Int("index", i), zap.String("name", p.Name), zap.Error(err))
			continue
		}
		products = append(products, p)
	}

	if len(records) > 0 && len(products) == 0 {
		return nil, fmt.Errorf("produkte: kein gültiger datensatz unter %d: %w", len(records), domain.ErrInvalidShape)
	}
	return products, nil
}

// Select wählt ein Produkt nach Name oder Listenindex. Ohne oder mit
// unbekanntem identifier wird das zweite Produkt gewählt, bei nur einem das erste.
func Select(products []domain.Product, identifier string) (domain.Product, error) {
	if len(products) == 0 {
		return domain.Product{}, fmt.Errorf("keine produkte geladen: %w", domain.ErrNotFound)
	}
	if identifier = strings.TrimSpace(identifier); identifier != "" {
		for _, p := range products {
			if p.Name == identifier {
				return p, nil
			}
		}
		if i, err := strconv.Atoi(identifier); err == nil && i >= 0 && i < len(products) {
			return products[i], nil
		}
	}
	if len(products) > 1 {
		return products[1], nil
	}
	return products[0], nil
}

// capacityBand ordnet eine Kapazität in kWh einer von vier Grössenklassen zu.
func capacityBand(kwh float64) int {
	switch {
	case kwh <= 11.5:
		return 0
	case kwh <= 23:
		return 1
	case kwh <= 34.5:
		return 2
	default:
		return 3
	}
}

var (
	taglines = [...]string{
		"Kompakt und effizient",
		"Optimale Größe für neue PV-Anlagen",
		"Erweiterte Kapazität für höheren Bedarf",
		"Maximale Kapazität für große Haushalte",
	}
	suitableFor = [...]string{"1-2 Pers.", "3-4 Pers.", "4-5 Pers.", "5+ Pers."}
	autonomy    = [...]string{"~50%", "~70%", "~80%", "~85%"}
)

// Tagline gibt den Werbeslogan zur Kapazität zurück.
func Tagline(p domain.Product) string {
	return taglines[capacityBand(p.CapacityKWh.Or(0))]
}

// SuitableFor gibt die Haushaltsgrösse zurück, aus den Daten oder aus der Kapazität geschätzt.
func SuitableFor(p domain.Product) string {
	return p.SuitableFor.Or(suitableFor[capacityBand(p.CapacityKWh.Or(0))])
}

// Autonomy gibt den Autarkiegrad zurück, aus den Daten oder aus der Kapazität geschätzt.
func Autonomy(p domain.Product) string {
	if p.AutonomyPercent.Valid && p.AutonomyPercent.Value != 0 {
		return "~" + p.AutonomyPercent.String() + "%"
	}
	return autonomy[capacityBand(p.CapacityKWh.Or(0))]
}

// FormatPrice formatiert einen Preis im Schweizer Format, z. B. "CHF 12’900".
func FormatPrice(n domain.Number) string {
	if !n.Valid || n.Value == 0 {
		return "Auf Anfrage"
	}
	return "CHF " + groupThousands(n.Value)
}

func groupThousands(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteRune('’')
		}
		sb.WriteRune(r)
	}
	out := sign + sb.String()
	if hasFrac {
		out += "." + frac
	}
	return out
}
