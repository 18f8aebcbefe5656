package repository

import (
	"context"

	"modual-backend/internal/domain"
)

// InstallerRepository abstrahiert den Datenzugriff auf das Installateurverzeichnis.
type InstallerRepository interface {
	GetAll(ctx context.Context) ([]domain.Installer, error)
	GetByID(ctx context.Context, id int) (domain.Installer, error)
}
