package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"modual-backend/internal/domain"
	"modual-backend/internal/geo"
	"modual-backend/internal/repository"
)

// InstallerService kapselt die Suche im Installateurverzeichnis.
type InstallerService struct {
	repo   repository.InstallerRepository
	postal geo.PostalCodes
	logger *zap.Logger
}

// NewInstallerService gibt einen einsatzbereiten InstallerService zurück.
func NewInstallerService(repo repository.InstallerRepository, postal geo.PostalCodes, logger *zap.Logger) *InstallerService {
	return &InstallerService{repo: repo, postal: postal, logger: logger}
}

// Filter wendet PLZ-Umkreis, Freitext und Zertifizierung an. Eine unbekannte
// PLZ schränkt nicht ein und ist kein Fehler.
func (s *InstallerService) Filter(ctx context.Context, f geo.Filter) (geo.Result, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return geo.Result{}, fmt.Errorf("installateure laden: %w", err)
	}
	res := geo.Apply(all, s.postal, f)
	if f.PostalCode != "" && res.Origin == nil {
		s.logger.Debug("plz unbekannt, umkreis wird ignoriert", zap.String("plz", f.PostalCode))
	}
	return res, nil
}

// GetByID sucht einen einzelnen Installateur anhand seiner ID.
func (s *InstallerService) GetByID(ctx context.Context, id int) (domain.Installer, error) {
	if id <= 0 {
		return domain.Installer{}, fmt.Errorf("id muss positiv sein: %w", domain.ErrInvalidInput)
	}
	return s.repo.GetByID(ctx, id)
}
