package geonames

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/localplate/localplate/internal/repository"
)

// Area labels per admin level for the countries we curate. Everything
// else falls back to the generic admin1/admin2/admin3.
var areaTypeLabels = map[string][3]string{
	"US": {"state", "county", "city"},
	"CA": {"province", "county", "city"},
	"JP": {"prefecture", "city", "ward"},
	"GB": {"country", "county", "district"},
}

var defaultAreaTypes = [3]string{"admin1", "admin2", "admin3"}

func areaTypes(country string) [3]string {
	if labels, ok := areaTypeLabels[country]; ok {
		return labels
	}
	return defaultAreaTypes
}

// hierarchy caches upserted administrative areas by their full path, so
// each distinct node hits the database once per run. Two counties with
// the same name under different states stay distinct because the path
// includes every ancestor.
type hierarchy struct {
	repo    repository.Querier
	dryRun  bool
	areas   map[string]pgtype.UUID
	created int
}

func newHierarchy(repo repository.Querier, dryRun bool) *hierarchy {
	return &hierarchy{repo: repo, dryRun: dryRun, areas: make(map[string]pgtype.UUID)}
}

// ensure upserts the record's admin chain top-down and returns the
// deepest area id. A gap in the chain ends it; records with no admin
// names return an invalid UUID and link to no area.
func (h *hierarchy) ensure(ctx context.Context, rec Record) (pgtype.UUID, error) {
	labels := areaTypes(rec.Country)
	names := [3]string{rec.Admin1Name, rec.Admin2Name, rec.Admin3Name}

	var parent, deepest pgtype.UUID
	path := rec.Country
	for level, name := range names {
		if name == "" {
			break
		}
		path += "\x1f" + labels[level] + "\x1f" + name

		id, ok := h.areas[path]
		if !ok {
			var err error
			id, err = h.upsert(ctx, name, labels[level], rec.Country, parent)
			if err != nil {
				return pgtype.UUID{}, err
			}
			h.areas[path] = id
			h.created++
		}
		parent = id
		deepest = id
	}
	return deepest, nil
}

func (h *hierarchy) upsert(ctx context.Context, name, areaType, country string, parent pgtype.UUID) (pgtype.UUID, error) {
	if h.dryRun {
		return repository.UUID(uuid.New()), nil
	}
	area, err := h.repo.UpsertAdministrativeArea(ctx, repository.UpsertAdministrativeAreaParams{
		Name:     name,
		AreaType: areaType,
		Country:  country,
		ParentID: parent,
	})
	if err != nil {
		return pgtype.UUID{}, fmt.Errorf("geonames: upsert %s %q: %w", areaType, name, err)
	}
	return area.ID, nil
}
