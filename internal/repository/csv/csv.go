package csv

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"go.uber.org/zap"

	"modual-backend/internal/domain"
	"modual-backend/internal/geo"
)

const (
	embeddedInstallers  = "data/installateure.csv"
	embeddedPostalCodes = "data/plz.csv"
)

//go:embed data/installateure.csv data/plz.csv
var embedded embed.FS

// installerDTO bildet eine Zeile der Installateur-CSV ab. Alle Felder kommen
// als Text und werden in toInstaller umgewandelt.
type installerDTO struct {
	ID            string `csv:"id"`
	Name          string `csv:"name"`
	Contact       string `csv:"contact"`
	Address       string `csv:"address"`
	PostalCode    string `csv:"plz"`
	City          string `csv:"city"`
	Canton        string `csv:"kanton"`
	Phone         string `csv:"phone"`
	Email         string `csv:"email"`
	Website       string `csv:"website"`
	Certified     string `csv:"certified"`
	Installations string `csv:"installations"`
	Rating        string `csv:"rating"`
	Lat           string `csv:"lat"`
	Lng           string `csv:"lng"`
	Description   string `csv:"description"`
}

type postalCodeDTO struct {
	PostalCode string `csv:"plz"`
	Lat        string `csv:"lat"`
	Lng        string `csv:"lng"`
}

// InstallerRepository implementiert repository.InstallerRepository und hält
// das Verzeichnis unveränderlich im Arbeitsspeicher.
type InstallerRepository struct {
	installers []domain.Installer
	byID       map[int]int
}

// NewInstallerRepository lädt das Verzeichnis aus filePath. Ein leerer Pfad
// verwendet die eingebetteten Daten.
func NewInstallerRepository(filePath string, logger *zap.Logger) (*InstallerRepository, error) {
	data, source, err := readSource(filePath, embeddedInstallers)
	if err != nil {
		return nil, fmt.Errorf("csv-repository: %w", err)
	}

	var rows []*installerDTO
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("csv-repository: %s parsen: %w", source, err)
	}

	r := &InstallerRepository{
		installers: make([]domain.Installer, 0, len(rows)),
		byID:       make(map[int]int, len(rows)),
	}
	for i, row := range rows {
		inst, err := toInstaller(row)
		if err != nil {
			logger.Warn("ungültiger Datensatz wird übersprungen",
				zap.Int("zeile", i+2),
				zap.Error(err),
			)
			continue
		}
		if _, dup := r.byID[inst.ID]; dup {
			logger.Warn("doppelte id wird übersprungen",
				zap.Int("zeile", i+2),
				zap.Int("id", inst.ID),
			)
			continue
		}
		r.byID[inst.ID] = len(r.installers)
		r.installers = append(r.installers, inst)
	}

	logger.Info("installateure aus CSV geladen",
		zap.Int("anzahl", len(r.installers)),
		zap.String("quelle", source),
	)
	return r, nil
}

// toInstaller wandelt eine CSV-Zeile in einen validierten Installateur um.
func toInstaller(dto *installerDTO) (domain.Installer, error) {
	id, err := strconv.Atoi(strings.TrimSpace(dto.ID))
	if err != nil {
		return domain.Installer{}, fmt.Errorf("ungültige id %q: %w", dto.ID, err)
	}
	certified, err := parseBool(dto.Certified)
	if err != nil {
		return domain.Installer{}, fmt.Errorf("id %d: certified %q: %w", id, dto.Certified, err)
	}
	installations, err := parseIntOr(dto.Installations, 0)
	if err != nil {
		return domain.Installer{}, fmt.Errorf("id %d: installations %q: %w", id, dto.Installations, err)
	}
	rating, err := parseFloatOr(dto.Rating, 0)
	if err != nil {
		return domain.Installer{}, fmt.Errorf("id %d: rating %q: %w", id, dto.Rating, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(dto.Lat), 64)
	if err != nil {
		return domain.Installer{}, fmt.Errorf("id %d: lat %q: %w", id, dto.Lat, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(dto.Lng), 64)
	if err != nil {
		return domain.Installer{}, fmt.Errorf("id %d: lng %q: %w", id, dto.Lng, err)
	}

	inst := domain.Installer{
		ID:            id,
		Name:          strings.TrimSpace(dto.Name),
		Contact:       strings.TrimSpace(dto.Contact),
		Address:       strings.TrimSpace(dto.Address),
		PostalCode:    strings.TrimSpace(dto.PostalCode),
		City:          strings.TrimSpace(dto.City),
		Canton:        strings.ToUpper(strings.TrimSpace(dto.Canton)),
		Phone:         strings.TrimSpace(dto.Phone),
		Email:         strings.TrimSpace(dto.Email),
		Website:       strings.TrimSpace(dto.Website),
		Certified:     certified,
		Installations: installations,
		Rating:        rating,
		Lat:           lat,
		Lng:           lng,
		Description:   strings.TrimSpace(dto.Description),
	}
	if err := domain.Validate(inst); err != nil {
		return domain.Installer{}, fmt.Errorf("id %d: %w", id, err)
	}
	return inst, nil
}

// LoadPostalCodes lädt die Zuordnung PLZ → Koordinaten aus filePath. Ein
// leerer Pfad verwendet die eingebetteten Daten.
func LoadPostalCodes(filePath string, logger *zap.Logger) (geo.PostalCodes, error) {
	data, source, err := readSource(filePath, embeddedPostalCodes)
	if err != nil {
		return nil, fmt.Errorf("plz-tabelle: %w", err)
	}

	var rows []*postalCodeDTO
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("plz-tabelle: %s parsen: %w", source, err)
	}

	codes := make(geo.PostalCodes, len(rows))
	for i, row := range rows {
		code := strings.TrimSpace(row.PostalCode)
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(row.Lat), 64)
		lng, errLng := strconv.ParseFloat(strings.TrimSpace(row.Lng), 64)
		c := domain.Coordinates{Lat: lat, Lng: lng}
		if code == "" || errLat != nil || errLng != nil || domain.Validate(c) != nil {
			logger.Warn("ungültige plz-zeile wird übersprungen", zap.Int("zeile", i+2), zap.String("plz", code))
			continue
		}
		codes[code] = c
	}

	logger.Info("plz-tabelle geladen", zap.Int("anzahl", len(codes)), zap.String("quelle", source))
	return codes, nil
}

// readSource liest filePath oder, wenn leer, die eingebettete Datei name.
func readSource(filePath, name string) ([]byte, string, error) {
	if filePath == "" {
		data, err := embedded.ReadFile(name)
		if err != nil {
			return nil, "", fmt.Errorf("eingebettete datei %s: %w", name, err)
		}
		return data, "eingebettet:" + name, nil
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("datei öffnen %s: %w", filePath, err)
	}
	return data, filePath, nil
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "ja", "1":
		return true, nil
	case "false", "nein", "0", "":
		return false, nil
	}
	return false, errors.New("kein wahrheitswert")
}

func parseIntOr(s string, fallback int) (int, error) {
	if s = strings.TrimSpace(s); s == "" {
		return fallback, nil
	}
	return strconv.Atoi(s)
}

func parseFloatOr(s string, fallback float64) (float64, error) {
	if s = strings.TrimSpace(s); s == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(s, 64)
}

// GetAll gibt alle Installateure in Dateireihenfolge zurück.
func (r *InstallerRepository) GetAll(_ context.Context) ([]domain.Installer, error) {
	out := make([]domain.Installer, len(r.installers))
	copy(out, r.installers)
	return out, nil
}

// GetByID sucht einen Installateur anhand seiner ID.
func (r *InstallerRepository) GetByID(_ context.Context, id int) (domain.Installer, error) {
	idx, ok := r.byID[id]
	if !ok {
		return domain.Installer{}, fmt.Errorf("installateur mit id %d: %w", id, domain.ErrNotFound)
	}
	return r.installers[idx], nil
}
