package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"modual-backend/internal/domain"
	"modual-backend/internal/geo"
	csvrepo "modual-backend/internal/repository/csv"
)

func testLogger() *zap.Logger {
	l, _ := zap.NewDevelopment()
	return l
}

// mockRepo ist ein Test-Double, das repository.InstallerRepository implementiert.
type mockRepo struct {
	installers []domain.Installer
	err        error
}

func (m *mockRepo) GetAll(_ context.Context) ([]domain.Installer, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Installer, len(m.installers))
	copy(out, m.installers)
	return out, nil
}

func (m *mockRepo) GetByID(_ context.Context, id int) (domain.Installer, error) {
	for _, i := range m.installers {
		if i.ID == id {
			return i, nil
		}
	}
	return domain.Installer{}, fmt.Errorf("installateur mit id %d: %w", id, domain.ErrNotFound)
}

// embeddedService arbeitet auf dem ausgelieferten Verzeichnis und der PLZ-Tabelle.
func embeddedService(t *testing.T) *InstallerService {
	t.Helper()
	repo, err := csvrepo.NewInstallerRepository("", testLogger())
	require.NoError(t, err)
	postal, err := csvrepo.LoadPostalCodes("", testLogger())
	require.NoError(t, err)
	return NewInstallerService(repo, postal, testLogger())
}

func ids(installers []domain.Installer) []int {
	out := make([]int, 0, len(installers))
	for _, i := range installers {
		out = append(out, i.ID)
	}
	return out
}

func TestFilter_PLZZuerich(t *testing.T) {
	svc := embeddedService(t)

	res, err := svc.Filter(context.Background(), geo.Filter{PostalCode: "8001"})
	require.NoError(t, err)

	require.NotNil(t, res.Origin)
	got := ids(res.Installers)
	assert.Contains(t, got, 1)
	assert.NotContains(t, got, 8, "genève liegt weit ausserhalb")
	for _, inst := range res.Installers {
		assert.LessOrEqual(t, geo.DistanceKm(*res.Origin, inst.Location()), geo.RadiusKm, inst.Name)
	}
	require.NotNil(t, res.Map.Radius)
	assert.Equal(t, 30000.0, res.Map.Radius.Meters)
}

func TestFilter_PLZGeneve(t *testing.T) {
	svc := embeddedService(t)

	res, err := svc.Filter(context.Background(), geo.Filter{PostalCode: "1204"})
	require.NoError(t, err)

	assert.Equal(t, []int{8}, ids(res.Installers))
}

func TestFilter_UnbekanntePLZSchraenktNichtEin(t *testing.T) {
	svc := embeddedService(t)

	withUnknown, err := svc.Filter(context.Background(), geo.Filter{PostalCode: "0000"})
	require.NoError(t, err)
	without, err := svc.Filter(context.Background(), geo.Filter{})
	require.NoError(t, err)

	assert.Len(t, withUnknown.Installers, 27)
	assert.Equal(t, ids(without.Installers), ids(withUnknown.Installers))
	assert.Nil(t, withUnknown.Origin)
	assert.Nil(t, withUnknown.Map.Radius)
}

func TestFilter_TextUndZertifizierung(t *testing.T) {
	svc := embeddedService(t)

	all, err := svc.Filter(context.Background(), geo.Filter{Search: "ZÜRICH"})
	require.NoError(t, err)
	certified, err := svc.Filter(context.Background(), geo.Filter{Search: "zürich", CertifiedOnly: true})
	require.NoError(t, err)

	assert.Contains(t, ids(all.Installers), 25)
	assert.NotContains(t, ids(certified.Installers), 25)
	for _, inst := range certified.Installers {
		assert.True(t, inst.Certified)
	}
}

func TestFilter_RepositoryFehler(t *testing.T) {
	svc := NewInstallerService(&mockRepo{err: domain.ErrStorage}, geo.PostalCodes{}, testLogger())

	_, err := svc.Filter(context.Background(), geo.Filter{})
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestGetByID(t *testing.T) {
	svc := NewInstallerService(&mockRepo{installers: []domain.Installer{{ID: 3, Name: "Weber"}}}, nil, testLogger())

	inst, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Weber", inst.Name)

	_, err = svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
