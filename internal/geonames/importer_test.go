package geonames_test

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localplate/localplate/internal/geonames"
	"github.com/localplate/localplate/internal/repository"
)

const (
	seattleDowntown = "US\t98101\tSeattle\tWashington\tWA\tKing\t033\t\t\t47.6114\t-122.3305\t4"
	seattleCapHill  = "US\t98102\tSeattle\tWashington\tWA\tKing\t033\t\t\t47.6323\t-122.3218\t4"
	vancouver       = "CA\tV6B 1A1\tVancouver\tBritish Columbia\tBC\tMetro Vancouver\t\t\t\t49.2774\t-123.1163\t4"
	chiyoda         = "JP\t1000001\tChiyoda\tTokyo\t13\t\t\t\t\t35.6850\t139.7514\t4"
)

// importerMock wires a MockQuerier so area upserts hand back stable ids
// and every postal code upsert is captured for assertions.
type importerMock struct {
	*repository.MockQuerier
	areas   []repository.UpsertAdministrativeAreaParams
	areaIDs map[string]uuid.UUID
	codes   []repository.UpsertPostalCodeParams
}

func newImporterMock() *importerMock {
	m := &importerMock{
		MockQuerier: &repository.MockQuerier{},
		areaIDs:     make(map[string]uuid.UUID),
	}
	m.UpsertAdministrativeAreaFunc = func(ctx context.Context, arg repository.UpsertAdministrativeAreaParams) (repository.AdministrativeArea, error) {
		m.areas = append(m.areas, arg)
		id, ok := m.areaIDs[arg.Name]
		if !ok {
			id = uuid.New()
			m.areaIDs[arg.Name] = id
		}
		return repository.AdministrativeArea{
			ID:       repository.UUID(id),
			Name:     arg.Name,
			AreaType: arg.AreaType,
			Country:  arg.Country,
			ParentID: arg.ParentID,
		}, nil
	}
	m.UpsertPostalCodeFunc = func(ctx context.Context, arg repository.UpsertPostalCodeParams) (repository.PostalCode, error) {
		m.codes = append(m.codes, arg)
		return repository.PostalCode{ID: repository.UUID(uuid.New()), Code: arg.Code, Country: arg.Country}, nil
	}
	m.RefreshAreaPostalCodeCountsFunc = func(ctx context.Context) error { return nil }
	return m
}

func TestImporter_BuildsAreaHierarchyOnce(t *testing.T) {
	mock := newImporterMock()
	im := geonames.NewImporter(mock, nil)

	input := seattleDowntown + "\n" + seattleCapHill + "\n"
	stats, err := im.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, mock.areas, 2, "Washington and King each upserted once")
	assert.Equal(t, "Washington", mock.areas[0].Name)
	assert.Equal(t, "state", mock.areas[0].AreaType)
	assert.False(t, mock.areas[0].ParentID.Valid, "top level has no parent")
	assert.Equal(t, "King", mock.areas[1].Name)
	assert.Equal(t, "county", mock.areas[1].AreaType)
	assert.Equal(t, repository.UUID(mock.areaIDs["Washington"]), mock.areas[1].ParentID)

	require.Len(t, mock.codes, 2)
	king := repository.UUID(mock.areaIDs["King"])
	for _, code := range mock.codes {
		assert.Equal(t, king, code.AreaID, "postal codes link to the deepest area")
		assert.Equal(t, "US", code.Country)
	}
	assert.Equal(t, "98101", mock.codes[0].Code)
	assert.Equal(t, "Seattle", mock.codes[0].PlaceName.String)
	require.True(t, mock.codes[0].Latitude.Valid)
	assert.InDelta(t, 47.6114, mock.codes[0].Latitude.Float64, 0.0001)

	assert.Equal(t, 2, stats.Lines)
	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, 2, stats.AreasCreated)
	assert.Equal(t, 0, stats.Skipped)
}

func TestImporter_LabelsAreasPerCountry(t *testing.T) {
	mock := newImporterMock()
	im := geonames.NewImporter(mock, nil)

	input := chiyoda + "\n" + "FR\t75001\tParis\tIle-de-France\t11\tParis\t75\t\t\t48.8634\t2.3388\t4\n"
	_, err := im.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	types := make(map[string]string)
	for _, area := range mock.areas {
		types[area.Name] = area.AreaType
	}
	assert.Equal(t, "prefecture", types["Tokyo"])
	assert.Equal(t, "admin1", types["Ile-de-France"], "unknown countries fall back to generic labels")
	assert.Equal(t, "admin2", types["Paris"])
}

func TestImporter_CountryFilter(t *testing.T) {
	mock := newImporterMock()
	im := geonames.NewImporter(mock, nil, geonames.WithCountryFilter("us"))

	input := seattleDowntown + "\n" + vancouver + "\n"
	stats, err := im.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, mock.codes, 1)
	assert.Equal(t, "US", mock.codes[0].Country)
	assert.Equal(t, 1, stats.Imported)
	assert.Equal(t, 1, stats.Skipped)
}

func TestImporter_DryRunTouchesNothing(t *testing.T) {
	mock := newImporterMock()
	im := geonames.NewImporter(mock, nil, geonames.WithDryRun(true))

	input := seattleDowntown + "\n" + seattleCapHill + "\n"
	stats, err := im.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Empty(t, mock.CallLog, "dry run must not hit the database")
	assert.Equal(t, 2, stats.Imported)
	assert.Equal(t, 2, stats.AreasCreated)
}

func TestImporter_FlushesInBatches(t *testing.T) {
	mock := newImporterMock()
	var batches []int
	im := geonames.NewImporter(mock, nil,
		geonames.WithBatchSize(2),
		geonames.WithProgress(func(added int) { batches = append(batches, added) }),
	)

	input := seattleDowntown + "\n" + seattleCapHill + "\n" + vancouver + "\n"
	stats, err := im.Import(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []int{2, 1}, batches)
	assert.Equal(t, 3, stats.Imported)
}

func TestImporter_RefreshesAreaCountsAfterImport(t *testing.T) {
	mock := newImporterMock()
	refreshed := 0
	mock.RefreshAreaPostalCodeCountsFunc = func(ctx context.Context) error {
		refreshed++
		return nil
	}
	im := geonames.NewImporter(mock, nil)

	_, err := im.Import(context.Background(), strings.NewReader(seattleDowntown+"\n"))
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed)
}

func TestImporter_SkipsRefreshWhenNothingImported(t *testing.T) {
	mock := newImporterMock()
	mock.RefreshAreaPostalCodeCountsFunc = func(ctx context.Context) error {
		t.Fatal("refresh should not run for an empty import")
		return nil
	}
	im := geonames.NewImporter(mock, nil, geonames.WithCountryFilter("JP"))

	stats, err := im.Import(context.Background(), strings.NewReader(seattleDowntown+"\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Imported)
}

func TestImporter_UpsertErrorStopsImport(t *testing.T) {
	mock := newImporterMock()
	mock.UpsertPostalCodeFunc = func(ctx context.Context, arg repository.UpsertPostalCodeParams) (repository.PostalCode, error) {
		return repository.PostalCode{}, assert.AnError
	}
	im := geonames.NewImporter(mock, nil)

	_, err := im.Import(context.Background(), strings.NewReader(seattleDowntown+"\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "98101")
}

func TestImportFile_ReadsPlainExport(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "US.txt")
	require.NoError(t, os.WriteFile(file, []byte(seattleDowntown+"\n"), 0o644))

	mock := newImporterMock()
	im := geonames.NewImporter(mock, nil)

	stats, err := im.ImportFile(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Imported)
	require.Len(t, mock.codes, 1)
	assert.Equal(t, "98101", mock.codes[0].Code)
}

func TestImportFile_ReadsZipArchiveSkippingReadme(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "US.zip")

	archive, err := os.Create(file)
	require.NoError(t, err)
	zw := zip.NewWriter(archive)
	entry, err := zw.Create("US.txt")
	require.NoError(t, err)
	_, err = entry.Write([]byte(seattleDowntown + "\n" + seattleCapHill + "\n"))
	require.NoError(t, err)
	entry, err = zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = entry.Write([]byte("GeoNames postal code files, see https://download.geonames.org\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, archive.Close())

	mock := newImporterMock()
	im := geonames.NewImporter(mock, nil)

	stats, err := im.ImportFile(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Imported, "readme must not be parsed as data")
	assert.Len(t, mock.codes, 2)
}

func TestImportFile_MissingFile(t *testing.T) {
	im := geonames.NewImporter(newImporterMock(), nil)

	_, err := im.ImportFile(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.txt")
}
